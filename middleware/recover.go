package middleware

import (
	"fmt"

	"github.com/modfin/mailparse/envelope"
)

func Recover(next HandlerFunc) HandlerFunc {
	return func(envelope *envelope.Envelope) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("recovered: %v", r)
				envelope.SetError(err)
			}
		}()
		return next(envelope)
	}
}
