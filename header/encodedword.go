package header

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/modfin/mailparse/charset"
)

// DecodeWords replaces each well-formed RFC 2047 encoded word in s with its
// decoded text. Anything that does not decode is copied through unchanged.
//
// A word must be delimited on both sides by the edge of s, whitespace or one of
// the characters "()<>. Whitespace between two decoded words is dropped, and
// adjacent words in the same charset are joined before decoding so a character
// split across them survives.
func DecodeWords(s string) string {
	if !strings.Contains(s, "=?") {
		return s
	}

	var (
		out   strings.Builder
		run   wordRun
		plain int // start of text not yet written
	)
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '=' || i+1 >= len(s) || s[i+1] != '?' || !isBoundary(s, i-1) {
			continue
		}
		w, end, ok := parseWord(s, i)
		if !ok {
			continue
		}
		between := s[plain:i]
		if !run.active || !isBlank(between) {
			run.flush(&out)
			out.WriteString(between)
		}
		run.add(&out, w)
		plain = end
		i = end - 1
	}
	run.flush(&out)
	out.WriteString(s[plain:])
	return out.String()
}

type word struct {
	charset string
	data    []byte
}

// wordRun collects the decoded bytes of consecutive encoded words.
type wordRun struct {
	active  bool
	charset string
	data    []byte
}

func (r *wordRun) add(out *strings.Builder, w word) {
	if r.active && r.charset == w.charset {
		r.data = append(r.data, w.data...)
		return
	}
	r.flush(out)
	r.active = true
	r.charset = w.charset
	r.data = append(r.data[:0], w.data...)
}

func (r *wordRun) flush(out *strings.Builder) {
	if !r.active {
		return
	}
	out.WriteString(charset.Decode(r.charset, r.data))
	r.active = false
	r.data = r.data[:0]
}

// parseWord decodes the encoded word starting at s[i:], which begins with "=?".
// end is the offset just past the closing "?=".
func parseWord(s string, i int) (w word, end int, ok bool) {
	j := i + 2
	k := strings.IndexByte(s[j:], '?')
	if k <= 0 {
		return word{}, 0, false
	}
	name := s[j : j+k]
	if strings.ContainsAny(name, " \t\r\n") {
		return word{}, 0, false
	}
	// RFC 2231 language suffix, "utf-8*en"
	if star := strings.IndexByte(name, '*'); star >= 0 {
		name = name[:star]
	}
	j += k + 1
	if j+1 >= len(s) || s[j+1] != '?' {
		return word{}, 0, false
	}
	enc := s[j]
	j += 2

	start := j
	for {
		k = strings.Index(s[j:], "?=")
		if k < 0 {
			return word{}, 0, false
		}
		end = j + k + 2
		if isBoundary(s, end) {
			break
		}
		j += k + 1
	}
	text := s[start : end-2]
	if strings.ContainsAny(text, " \t\r\n") {
		return word{}, 0, false
	}
	if !charset.Known(name) {
		return word{}, 0, false
	}

	var data []byte
	switch enc {
	case 'B', 'b':
		var err error
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(text, "="))
		if err != nil {
			return word{}, 0, false
		}
	case 'Q', 'q':
		data = decodeQ(text)
	default:
		return word{}, 0, false
	}
	return word{charset: charset.Normalize(name), data: data}, end, true
}

// decodeQ undoes the Q encoding. Malformed escapes are kept as they are.
func decodeQ(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_':
			out = append(out, ' ')
		case c == '=' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			out = append(out, c)
		}
	}
	return out
}

// isBoundary reports whether position i may delimit an encoded word. Offsets
// outside s and offsets inside a multi-byte character count as boundaries.
func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) || !utf8.RuneStart(s[i]) {
		return true
	}
	switch s[i] {
	case ' ', '\t', '\r', '\n', '"', '(', ')', '<', '>':
		return true
	}
	return false
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
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
