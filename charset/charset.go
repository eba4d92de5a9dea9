// Package charset decodes text in the character sets found in mail headers and
// bodies. Decoding is total: unknown names and broken input degrade to Latin-1.
package charset

import (
	"strings"
	"sync"
	"unicode/utf8"

	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Decoder turns bytes in some charset into a UTF-8 string.
type Decoder interface {
	Decode(b []byte) (string, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(b []byte) (string, error)

func (f DecoderFunc) Decode(b []byte) (string, error) {
	return f(b)
}

// FromEncoding wraps an x/text encoding.
func FromEncoding(e encoding.Encoding) Decoder {
	return DecoderFunc(func(b []byte) (string, error) {
		out, err := e.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	})
}

// Fallback is consulted for names the registry does not know.
type Fallback func(name string) (Decoder, bool)

var (
	// Latin1 maps every byte to the code point of the same value.
	Latin1 Decoder = DecoderFunc(func(b []byte) (string, error) {
		return decodeLatin1(b), nil
	})

	// UTF8 replaces each maximal invalid subsequence with U+FFFD.
	UTF8 Decoder = DecoderFunc(func(b []byte) (string, error) {
		return decodeUTF8(b), nil
	})
)

var (
	mu        sync.RWMutex
	registry  = map[string]Decoder{}
	fallbacks []Fallback
)

func init() {
	for name, enc := range builtin {
		registry[name] = FromEncoding(enc)
	}
	registry["utf-8"] = UTF8
	registry["us-ascii"] = Latin1
}

// Normalize lowercases a charset label and strips surrounding quotes and space.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)
	return strings.ToLower(strings.TrimSpace(name))
}

// Register makes d available under name, replacing any previous decoder.
func Register(name string, d Decoder) {
	mu.Lock()
	defer mu.Unlock()
	registry[Normalize(name)] = d
}

// RegisterEncoding is Register for an x/text encoding.
func RegisterEncoding(name string, e encoding.Encoding) {
	Register(name, FromEncoding(e))
}

// RegisterFallback adds a resolver that is tried after every built-in lookup.
func RegisterFallback(f Fallback) {
	mu.Lock()
	defer mu.Unlock()
	fallbacks = append(fallbacks, f)
}

// Lookup resolves a charset label. The boolean is false if no decoder exists.
func Lookup(name string) (Decoder, bool) {
	n := Normalize(name)
	if n == "" {
		return nil, false
	}

	mu.RLock()
	d, ok := registry[n]
	if !ok {
		if alias, found := aliases[n]; found {
			d, ok = registry[alias]
		}
	}
	fbs := fallbacks
	mu.RUnlock()
	if ok {
		return d, true
	}

	if enc, err := ianaindex.MIME.Encoding(n); err == nil && enc != nil {
		return FromEncoding(enc), true
	}
	if enc, _ := htmlcharset.Lookup(n); enc != nil && enc != encoding.Replacement {
		return FromEncoding(enc), true
	}
	for _, fb := range fbs {
		if d, ok := fb(n); ok {
			return d, true
		}
	}
	return nil, false
}

// Known reports whether Lookup would succeed for name.
func Known(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Decode converts b from the named charset. Unknown charsets and decoder
// failures fall back to Latin-1, so the result is always defined.
func Decode(name string, b []byte) string {
	d, ok := Lookup(name)
	if !ok {
		return decodeLatin1(b)
	}
	s, err := d.Decode(b)
	if err != nil {
		return decodeLatin1(b)
	}
	return s
}

// UTF8OrLatin1 returns b as a string if it is valid UTF-8 and as Latin-1 otherwise.
func UTF8OrLatin1(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return decodeLatin1(b)
}

func decodeLatin1(b []byte) string {
	// every byte has a code point, the decoder cannot fail
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}
