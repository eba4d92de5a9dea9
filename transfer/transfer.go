// Package transfer decodes Content-Transfer-Encoding.
package transfer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrBase64 = errors.New("invalid base64 body")

// Encoding is a Content-Transfer-Encoding mechanism.
type Encoding int

const (
	SevenBit Encoding = iota
	EightBit
	Binary
	Base64
	QuotedPrintable
)

func (e Encoding) String() string {
	switch e {
	case EightBit:
		return "8bit"
	case Binary:
		return "binary"
	case Base64:
		return "base64"
	case QuotedPrintable:
		return "quoted-printable"
	}
	return "7bit"
}

// Parse maps a header value to an Encoding. Unknown and empty values are SevenBit.
func Parse(s string) Encoding {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "8bit":
		return EightBit
	case "binary":
		return Binary
	case "base64":
		return Base64
	case "quoted-printable":
		return QuotedPrintable
	}
	return SevenBit
}

// Decode undoes e. Identity encodings return b itself.
func Decode(e Encoding, b []byte) ([]byte, error) {
	switch e {
	case Base64:
		return DecodeBase64(b)
	case QuotedPrintable:
		return DecodeQuotedPrintable(b)
	}
	return b, nil
}

// DecodeBase64 decodes with the standard alphabet after dropping all whitespace,
// including whitespace in the middle of a line.
func DecodeBase64(b []byte) ([]byte, error) {
	clean := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n', '\f', '\v':
		default:
			clean = append(clean, c)
		}
	}
	out := make([]byte, base64.StdEncoding.DecodedLen(len(clean)))
	n, err := base64.StdEncoding.Decode(out, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64, err)
	}
	return out[:n], nil
}

// DecodeQuotedPrintable removes soft line breaks and applies =XX escapes.
// Trailing blanks on a line are dropped. Malformed escapes and bytes that
// should have been escaped, such as control characters, pass through. The
// line break ending the last line is dropped, it belongs to the following
// boundary. The error is always nil.
func DecodeQuotedPrintable(b []byte) ([]byte, error) {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		line, rest, found := bytes.Cut(b, []byte("\n"))
		b = rest

		brk := ""
		if found {
			brk = "\n"
			if bytes.HasSuffix(line, []byte("\r")) {
				line = line[:len(line)-1]
				brk = "\r\n"
			}
		}
		line = bytes.TrimRight(line, " \t")
		if bytes.HasSuffix(line, []byte("=")) {
			line = line[:len(line)-1]
			brk = ""
		}

		for i := 0; i < len(line); i++ {
			c := line[i]
			if c == '=' && i+2 < len(line) && isHex(line[i+1]) && isHex(line[i+2]) {
				c = unhex(line[i+1])<<4 | unhex(line[i+2])
				i += 2
			}
			out = append(out, c)
		}
		out = append(out, brk...)
	}
	out = bytes.TrimSuffix(out, []byte("\n"))
	out = bytes.TrimSuffix(out, []byte("\r"))
	return out, nil
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}
