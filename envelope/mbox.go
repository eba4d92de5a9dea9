package envelope

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-mbox"
)

// ReadMbox calls fn with one envelope per message in the mbox stream r.
// Reading stops at the first error returned by fn or when ctx is done.
func ReadMbox(ctx context.Context, r io.Reader, source string, fn func(*Envelope) error, opts ...ReadOption) error {
	settings := &readSettings{}
	for _, o := range opts {
		if o != nil {
			o(settings)
		}
	}

	reader := mbox.NewReader(r)
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: message %d: %w", source, i, err)
		}

		e := NewEnvelope(source, i)
		e.WithContext(context.WithValue(ctx, envelopeIDKey, e.EnvelopeId()))
		if err := settings.readInto(e, msg); err != nil {
			return fmt.Errorf("%s: message %d: %w", source, i, err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}

// ReadMboxFile is ReadMbox on a named file, "-" reads stdin.
func ReadMboxFile(ctx context.Context, path string, fn func(*Envelope) error, opts ...ReadOption) error {
	if path == "-" {
		return ReadMbox(ctx, os.Stdin, path, fn, opts...)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReadMbox(ctx, f, path, fn, opts...)
}

// MboxWriter appends envelopes to an mbox stream.
type MboxWriter struct {
	w *mbox.Writer
}

func NewMboxWriter(w io.Writer) *MboxWriter {
	return &MboxWriter{w: mbox.NewWriter(w)}
}

// Write adds e using its From address and Date for the separator line.
func (m *MboxWriter) Write(e *Envelope) error {
	from := "MAILER-DAEMON"
	if p, err := e.Mail(); err == nil {
		if addr, err := p.From(); err == nil && addr.Address != "" {
			from = addr.Address
		}
	}
	date, err := e.Date()
	if err != nil {
		date = time.Unix(0, 0).UTC()
	}

	w, err := m.w.CreateMessage(from, date)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, e.Data.Reader())
	return err
}

func (m *MboxWriter) Close() error {
	return m.w.Close()
}
