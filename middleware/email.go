package middleware

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/envelope"
)

// FilterMail passes envelopes on only when include reports true for the
// parsed message. Messages that fail to parse are dropped.
func FilterMail(include func(m *mailparse.Part) bool) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			m, err := e.Mail()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFiltered, err)
			}
			if !include(m) {
				return fmt.Errorf("%w: excluded", ErrFiltered)
			}
			return next(e)
		}
	}
}

// FilterRecipient Check if any To or Cc address should be included.
func FilterRecipient(include func(address *mail.Address) bool) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			for _, r := range recipients(e) {
				if include(r) {
					return next(e)
				}
			}
			return fmt.Errorf("%w: filtered recipient", ErrFiltered)
		}
	}
}

// SkipDeleted drops messages a mail client marked deleted in the mbox
// Status or X-Status field.
func SkipDeleted(next HandlerFunc) HandlerFunc {
	return FilterMail(func(m *mailparse.Part) bool {
		for _, k := range []string{"Status", "X-Status"} {
			for _, v := range m.Headers.Values(k) {
				if strings.ContainsRune(v, 'D') {
					return false
				}
			}
		}
		return true
	})(next)
}
