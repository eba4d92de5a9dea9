package envelope

import (
	"errors"
	"io"
)

var ErrMessageTooLarge = errors.New("maximum message size exceeded")

// limitedReader is io.LimitReader that tells a full stop apart from EOF.
type limitedReader struct {
	R io.Reader // underlying reader
	N int64     // max bytes remaining
}

func (l *limitedReader) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		// probe one byte so a message of exactly the limit passes
		var b [1]byte
		if n, _ := l.R.Read(b[:]); n > 0 {
			return 0, ErrMessageTooLarge
		}
		return 0, io.EOF
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.R.Read(p)
	l.N -= int64(n)
	return
}

type readSettings struct {
	maxSize int64
}

type ReadOption func(*readSettings)

// WithMaxMessageSize truncates messages larger than n bytes and marks their
// envelope with ErrMessageTooLarge. Zero means no limit.
func WithMaxMessageSize(n int64) ReadOption {
	return func(s *readSettings) {
		s.maxSize = n
	}
}

// readInto fills e.Data from r honouring the size limit. Only read errors
// are returned, an oversized message is recorded on the envelope.
func (s *readSettings) readInto(e *Envelope, r io.Reader) error {
	if s.maxSize <= 0 {
		_, err := e.Data.ReadFrom(r)
		return err
	}
	_, err := e.Data.ReadFrom(&limitedReader{R: r, N: s.maxSize})
	if errors.Is(err, ErrMessageTooLarge) {
		e.SetError(err)
		return nil
	}
	return err
}
