package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/envelope"
	"github.com/modfin/mailparse/utils"
)

// ErrFiltered is returned by middleware that drops an envelope on purpose.
// Callers treat it as a skip rather than a failure.
var ErrFiltered = errors.New("filtered")

type HandlerFunc func(*envelope.Envelope) error

type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps h so that middleware[0] runs first.
func Chain(h HandlerFunc, middleware ...Middleware) HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		if middleware[i] == nil {
			continue
		}
		h = middleware[i](h)
	}
	return h
}

// AddMessageID adds a Message-ID derived from the Date header and the
// message content to envelopes that lack one. The same message always
// receives the same id.
func AddMessageID(hostname string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			h, err := e.Headers()
			if err != nil {
				return next(e)
			}
			if h.Has(mailparse.HeaderMessageID) {
				return next(e)
			}
			date, _ := e.Date()
			_ = e.AddHeader(mailparse.HeaderMessageID, utils.MessageID(date, e.Data.Bytes(), hostname))
			return next(e)
		}
	}
}

// AddReceivedHeaders records the import in a Received trace field.
func AddReceivedHeaders(hostname string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			id := fmt.Sprintf("%s-%d@%s", e.EnvelopeId(), e.Index, hostname)

			received := fmt.Sprintf("from %s\r\n", e.Source)
			received += fmt.Sprintf("  by %s with %s id %s;\r\n", hostname, mailparse.Name, id)
			received += fmt.Sprintf("  %s", time.Now().In(time.UTC).Format(time.RFC1123Z))

			_ = e.AddHeader("Received", received)

			return next(e)
		}
	}
}
