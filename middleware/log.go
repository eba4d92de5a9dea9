package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/envelope"
)

type Skipper func(*envelope.Envelope) bool

type LoggerSettings struct {
	Skip       Skipper
	PreFields  []func(*envelope.Envelope) (string, any)
	PostFields []func(*envelope.Envelope, error) (string, any)
}

type Option func(*LoggerSettings)

func WithSkipper(s Skipper) Option {
	return func(settings *LoggerSettings) {
		settings.Skip = s
	}
}

// WithPreFields appends fields logged before the envelope is handled.
func WithPreFields(f ...func(*envelope.Envelope) (string, any)) Option {
	return func(settings *LoggerSettings) {
		settings.PreFields = append(settings.PreFields, f...)
	}
}

func WithPostFields(f ...func(*envelope.Envelope, error) (string, any)) Option {
	return func(settings *LoggerSettings) {
		settings.PostFields = append(settings.PostFields, f...)
	}
}

func Logger(logger *slog.Logger, opts ...Option) Middleware {
	var settings = &LoggerSettings{}

	settings.PreFields = []func(*envelope.Envelope) (string, any){
		func(e *envelope.Envelope) (string, any) { return "source", e.Source },
		func(e *envelope.Envelope) (string, any) { return "index", e.Index },
		func(e *envelope.Envelope) (string, any) {
			var from string
			if m, _ := e.Mail(); m != nil {
				if a, err := m.From(); err == nil {
					from = a.Address
				}
			}
			return "from", from
		},
		func(e *envelope.Envelope) (string, any) { return "size", e.Data.Len() },
	}

	settings.PostFields = []func(*envelope.Envelope, error) (string, any){
		func(e *envelope.Envelope, err error) (string, any) {
			return "filtered", errors.Is(err, ErrFiltered)
		},
		func(e *envelope.Envelope, err error) (string, any) {
			return "size", e.Data.Len()
		},
	}

	for _, o := range opts {
		if o == nil {
			continue
		}
		o(settings)
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(envelope *envelope.Envelope) error {
			if logger == nil {
				return next(envelope)
			}

			if settings.Skip != nil && settings.Skip(envelope) {
				return next(envelope)
			}

			start := time.Now()
			lvl := slog.LevelInfo

			l := logger.With("envelope-id", envelope.EnvelopeId())
			if m, _ := envelope.Mail(); m != nil {
				if id, ok := m.Headers.FirstValue(mailparse.HeaderMessageID); ok {
					l = l.With("message-id", id)
				}
			}

			var args []any
			for _, f := range settings.PreFields {
				k, v := f(envelope)
				args = append(args, k, v)
			}
			l.Log(envelope.Context(), lvl, "Mail request", args...)

			err := next(envelope)

			elapsed := time.Since(start)
			args = append([]any{}, "duration", elapsed)
			for _, f := range settings.PostFields {
				k, v := f(envelope, err)
				args = append(args, k, v)
			}

			if err != nil && !errors.Is(err, ErrFiltered) {
				args = append(args, "err", err)
				lvl = slog.LevelError
			}
			if eerr := envelope.GetError(); eerr != nil {
				args = append(args, "envelope-err", eerr)
				lvl = slog.LevelError
			}
			l.Log(envelope.Context(), lvl, "Mail response", args...)
			return err
		}
	}
}
