package header

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/modfin/mailparse/charset"
)

// Params holds the parameters of a structured header value. Keys are lowercase.
type Params map[string]string

// ParseParams splits "primary; k1=v1; k2=\"v2\"" into the trimmed primary value
// and its parameters. A value wrapped in double quotes loses the quotes, nothing
// else is unescaped. Semicolons inside quotes are not special, so a quoted value
// containing one is cut short. The last duplicate key wins.
func ParseParams(s string) (string, Params) {
	tokens := strings.Split(s, ";")
	primary := strings.TrimSpace(tokens[0])
	params := Params{}
	for _, kv := range tokens[1:] {
		idx := strings.IndexByte(kv, '=')
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[:idx]))
		value := strings.TrimSpace(kv[idx+1:])
		if len(value) > 1 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		params[key] = value
	}
	return primary, params
}

// Get returns the parameter, resolving RFC 2231 extended forms. "name*" and
// "name*0", "name*1*" continuations take precedence over a plain "name".
func (p Params) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	if v, ok := p[name+"*"]; ok {
		return decodeExtended(v), true
	}
	if v, ok := p.continued(name); ok {
		return v, true
	}
	v, ok := p[name]
	return v, ok
}

func (p Params) continued(name string) (string, bool) {
	type section struct {
		n       int
		value   string
		encoded bool
	}
	var sections []section
	prefix := name + "*"
	for k, v := range p {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := k[len(prefix):]
		encoded := strings.HasSuffix(rest, "*")
		n, err := strconv.Atoi(strings.TrimSuffix(rest, "*"))
		if err != nil || n < 0 {
			continue
		}
		sections = append(sections, section{n: n, value: v, encoded: encoded})
	}
	if len(sections) == 0 {
		return "", false
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].n < sections[j].n })

	var (
		cs  string
		raw []byte
	)
	for i, s := range sections {
		if s.n != i {
			break
		}
		v := s.value
		if s.encoded {
			if i == 0 {
				cs, v = splitExtended(v)
			}
			if u, err := url.PathUnescape(v); err == nil {
				v = u
			}
		}
		raw = append(raw, v...)
	}
	if cs == "" {
		return charset.UTF8OrLatin1(raw), true
	}
	return charset.Decode(cs, raw), true
}

// decodeExtended decodes charset'language'percent-encoded text.
func decodeExtended(v string) string {
	cs, text := splitExtended(v)
	u, err := url.PathUnescape(text)
	if err != nil {
		return v
	}
	if cs == "" {
		return charset.UTF8OrLatin1([]byte(u))
	}
	return charset.Decode(cs, []byte(u))
}

func splitExtended(v string) (cs, text string) {
	parts := strings.SplitN(v, "'", 3)
	if len(parts) != 3 {
		return "", v
	}
	return parts[0], parts[2]
}

// ContentType is the parsed form of a Content-Type value.
type ContentType struct {
	MediaType string // lowercase type/subtype
	Charset   string // never empty
	Params    Params // charset is present only when it was in the input
}

const (
	DefaultMediaType = "text/plain"
	DefaultCharset   = "us-ascii"
)

// DefaultContentType is what a part without a Content-Type header gets.
func DefaultContentType() ContentType {
	return ContentType{MediaType: DefaultMediaType, Charset: DefaultCharset, Params: Params{}}
}

// ParseContentType parses an already decoded Content-Type value.
func ParseContentType(s string) ContentType {
	primary, params := ParseParams(s)
	ct := ContentType{
		MediaType: strings.ToLower(primary),
		Charset:   DefaultCharset,
		Params:    params,
	}
	if cs, ok := params["charset"]; ok && cs != "" {
		ct.Charset = cs
	}
	return ct
}

func (ct ContentType) IsMultipart() bool {
	return strings.HasPrefix(ct.MediaType, "multipart/")
}

// Boundary returns the multipart boundary parameter.
func (ct ContentType) Boundary() (string, bool) {
	b, ok := ct.Params["boundary"]
	return b, ok
}

// Type returns the part before the slash, "text" for "text/plain".
func (ct ContentType) Type() string {
	t, _, _ := strings.Cut(ct.MediaType, "/")
	return t
}

// Subtype returns the part after the slash.
func (ct ContentType) Subtype() string {
	_, s, _ := strings.Cut(ct.MediaType, "/")
	return s
}

// DispositionKind enumerates the Content-Disposition types.
type DispositionKind int

const (
	Inline DispositionKind = iota
	Attachment
	FormData
	Extension
)

func (k DispositionKind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Attachment:
		return "attachment"
	case FormData:
		return "form-data"
	}
	return "extension"
}

// Disposition is a disposition type. Name carries the lowercased token and is
// the only way to tell Extension values apart.
type Disposition struct {
	Kind DispositionKind
	Name string
}

func (d Disposition) String() string {
	return d.Name
}

// ParseDisposition classifies a disposition token.
func ParseDisposition(s string) Disposition {
	name := strings.ToLower(s)
	switch name {
	case "inline":
		return Disposition{Kind: Inline, Name: name}
	case "attachment":
		return Disposition{Kind: Attachment, Name: name}
	case "form-data":
		return Disposition{Kind: FormData, Name: name}
	}
	return Disposition{Kind: Extension, Name: name}
}

// ContentDisposition is the parsed form of a Content-Disposition value.
type ContentDisposition struct {
	Disposition
	Params Params
}

// DefaultContentDisposition is inline without parameters.
func DefaultContentDisposition() ContentDisposition {
	return ContentDisposition{Disposition: Disposition{Kind: Inline, Name: "inline"}, Params: Params{}}
}

// ParseContentDisposition parses an already decoded Content-Disposition value.
func ParseContentDisposition(s string) ContentDisposition {
	primary, params := ParseParams(s)
	return ContentDisposition{Disposition: ParseDisposition(primary), Params: params}
}
