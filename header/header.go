// Package header splits a raw RFC 5322 header block into ordered fields and
// decodes their values.
//
// Fields borrow their bytes from the parsed buffer. Unfolding and RFC 2047
// decoding happen in the accessors, never in place.
package header

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modfin/mailparse/charset"
)

var (
	ErrMalformedHeader   = errors.New("malformed header")
	ErrLeadingWhitespace = fmt.Errorf("%w: leading whitespace", ErrMalformedHeader)
	ErrInvalidText       = errors.New("header is not valid utf-8")
)

// Error is returned by ParseField and ParseFields. Offset is relative to the
// slice that was handed to the parser.
type Error struct {
	Offset int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Field is a single header as found in the input.
type Field struct {
	RawKey   []byte
	RawValue []byte // still folded, trailing line break removed
}

// Key returns the unfolded field name. It fails if the name is not valid UTF-8.
func (f Field) Key() (string, error) {
	if !utf8.Valid(f.RawKey) {
		return "", fmt.Errorf("%w: key %q", ErrInvalidText, f.RawKey)
	}
	return Unfold(string(f.RawKey)), nil
}

// Value returns the unfolded value with encoded words decoded. Bytes that are
// not valid UTF-8 are read as Latin-1.
func (f Field) Value() string {
	return DecodeWords(f.Unfolded())
}

// Unfolded returns the value unfolded but with encoded words left alone. A
// value that starts on a continuation line loses the fold in front of it.
func (f Field) Unfolded() string {
	return strings.TrimLeft(Unfold(charset.UTF8OrLatin1(f.RawValue)), " \t")
}

// Is reports whether the field name equals name, ignoring case.
func (f Field) Is(name string) bool {
	return bytes.EqualFold(f.RawKey, []byte(name))
}

func (f Field) String() string {
	return string(f.RawKey) + ": " + f.Value()
}

// Unfold replaces every line break and the run of blanks after it with one space.
func Unfold(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
			c = '\n'
		}
		if c != '\n' {
			sb.WriteByte(c)
			continue
		}
		for i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t') {
			i++
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}

const (
	stateKey = iota
	statePreValue
	stateValue
	stateValueNewline
)

// ParseField reads one header from the start of raw. It returns the field and
// the offset just past it, where the next field or the blank line begins.
func ParseField(raw []byte) (Field, int, error) {
	if len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t') {
		return Field{}, 0, &Error{Offset: 0, Reason: "header begins with whitespace", Err: ErrLeadingWhitespace}
	}

	var (
		f          Field
		state      = stateKey
		valueStart int
		valueEnd   int
	)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch state {
		case stateKey:
			switch c {
			case ':':
				f.RawKey = raw[:i]
				state = statePreValue
			case '\n':
				return Field{}, 0, &Error{Offset: i, Reason: "line break in header name", Err: ErrMalformedHeader}
			}
		case statePreValue:
			switch c {
			case ' ', '\t':
			case '\r':
				valueStart = i
				valueEnd = i
				state = stateValue
			case '\n':
				f.RawValue = raw[i:i]
				state = stateValueNewline
				valueStart, valueEnd = i, i
			default:
				valueStart = i
				valueEnd = i + 1
				state = stateValue
			}
		case stateValue:
			switch c {
			case '\n':
				state = stateValueNewline
			case '\r':
			default:
				valueEnd = i + 1
			}
		case stateValueNewline:
			if c != ' ' && c != '\t' {
				f.RawValue = raw[valueStart:valueEnd]
				return f, i, nil
			}
			state = stateValue
		}
	}

	switch state {
	case stateKey:
		return Field{}, 0, &Error{Offset: len(raw), Reason: "header name without colon", Err: ErrMalformedHeader}
	case statePreValue:
		f.RawValue = raw[len(raw):]
	default:
		f.RawValue = raw[valueStart:valueEnd]
	}
	return f, len(raw), nil
}

// ParseFields reads headers until the first empty line. The returned offset is
// the start of the body. A lone carriage return where a header should begin is
// malformed.
func ParseFields(raw []byte) (List, int, error) {
	var (
		fields List
		ix     int
	)
	for ix < len(raw) {
		switch raw[ix] {
		case '\n':
			return fields, ix + 1, nil
		case '\r':
			if ix+1 < len(raw) && raw[ix+1] == '\n' {
				return fields, ix + 2, nil
			}
			return nil, 0, &Error{Offset: ix, Reason: "carriage return without line feed", Err: ErrMalformedHeader}
		}

		f, n, err := ParseField(raw[ix:])
		if err != nil {
			var herr *Error
			if errors.As(err, &herr) {
				herr.Offset += ix
			}
			return nil, 0, err
		}
		fields = append(fields, f)
		ix += n
	}
	return fields, ix, nil
}
