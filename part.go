package mailparse

import (
	"errors"
	"net/url"
	"strings"

	"github.com/modfin/mailparse/header"
	"github.com/modfin/mailparse/transfer"
)

// Part is a message or one MIME entity within it.
type Part struct {
	Headers     header.List
	ContentType header.ContentType

	// Subparts is non-empty only for multipart content whose boundary was found.
	Subparts []*Part

	// Path names the part by position, "1.2" is the second child of the first
	// child of the message. The message itself has the empty path.
	Path  string
	Depth int

	raw    []byte
	header []byte
	body   []byte
}

// Raw returns the bytes this part was parsed from, headers included.
func (p *Part) Raw() []byte {
	return p.raw
}

// HeaderBytes returns the header block including the blank line ending it.
func (p *Part) HeaderBytes() []byte {
	return p.header
}

// RawBody returns the body as found in the input. For multipart content
// this is the preamble before the first boundary.
func (p *Part) RawBody() []byte {
	return p.body
}

func (p *Part) IsMultipart() bool {
	return p.ContentType.IsMultipart()
}

// Body returns the body tagged with its transfer encoding and charset.
func (p *Part) Body() Body {
	enc := transfer.SevenBit
	if v, ok := p.Headers.FirstValue(HeaderContentTransferEncoding); ok {
		enc = transfer.Parse(v)
	}
	return Body{Encoding: enc, Charset: p.ContentType.Charset, raw: p.body}
}

// Bytes returns the body with its transfer encoding undone.
func (p *Part) Bytes() ([]byte, error) {
	return p.Body().Decoded()
}

// Text returns the body decoded to a string using the part's charset.
func (p *Part) Text() (string, error) {
	return p.Body().Text()
}

// ContentDisposition returns the parsed Content-Disposition, or inline without
// parameters when the header is absent.
func (p *Part) ContentDisposition() header.ContentDisposition {
	v, ok := p.Headers.FirstValue(HeaderContentDisposition)
	if !ok {
		return header.DefaultContentDisposition()
	}
	return header.ParseContentDisposition(v)
}

// IsAttachment reports whether the part is explicitly marked as an attachment.
func (p *Part) IsAttachment() bool {
	if !p.Headers.Has(HeaderContentDisposition) {
		return false
	}
	return p.ContentDisposition().Kind == header.Attachment
}

// IsInline reports whether the part is explicitly marked inline.
func (p *Part) IsInline() bool {
	if !p.Headers.Has(HeaderContentDisposition) {
		return false
	}
	return p.ContentDisposition().Kind == header.Inline
}

// Filename returns the name a client would save the part as. It looks at the
// Content-Disposition filename, RFC 2231 forms included, then the Content-Type
// name parameter.
func (p *Part) Filename() (string, error) {
	if name, ok := p.ContentDisposition().Params.Get("filename"); ok && name != "" {
		return unescapeName(name), nil
	}
	if name, ok := p.ContentType.Params.Get("name"); ok && name != "" {
		return unescapeName(name), nil
	}
	return "", ErrNoFilename
}

// FormName returns the field name of a form-data part.
func (p *Part) FormName() (string, error) {
	cd := p.ContentDisposition()
	if cd.Kind != header.FormData {
		return "", ErrNotFormData
	}
	name, ok := cd.Params.Get("name")
	if !ok {
		return "", errors.Join(ErrNotFormData, errors.New("no name parameter"))
	}
	return name, nil
}

// ContentID returns the Content-ID without angle brackets.
func (p *Part) ContentID() string {
	v, _ := p.Headers.FirstValue(HeaderContentID)
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(v), "<"), ">")
}

// Message parses the body of a message/rfc822 part as a message of its own.
func (p *Part) Message(opts ...Option) (*Part, error) {
	if p.ContentType.MediaType != MimeMessageEmail {
		return nil, ErrNotMessage
	}
	b, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	return Parse(b, opts...)
}

// Walk calls fn for p and every descendant, depth first in document order.
// Returning false from fn skips the children of that part.
func (p *Part) Walk(fn func(*Part) bool) {
	if !fn(p) {
		return
	}
	for _, c := range p.Subparts {
		c.Walk(fn)
	}
}

// Find returns the part with the given path.
func (p *Part) Find(path string) (*Part, bool) {
	var found *Part
	p.Walk(func(c *Part) bool {
		if c.Path == path {
			found = c
			return false
		}
		return found == nil && (c.Path == "" || strings.HasPrefix(path, c.Path+"."))
	})
	return found, found != nil
}

// Attachments returns every leaf part marked as an attachment.
func (p *Part) Attachments() []*Part {
	var out []*Part
	p.Walk(func(c *Part) bool {
		if len(c.Subparts) == 0 && c.IsAttachment() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// TextPart returns the first leaf of the given media type that is not an
// attachment, "text/plain" or "text/html" typically.
func (p *Part) TextPart(mediaType string) (*Part, bool) {
	var found *Part
	p.Walk(func(c *Part) bool {
		if found != nil {
			return false
		}
		if len(c.Subparts) == 0 && c.ContentType.MediaType == mediaType && !c.IsAttachment() {
			found = c
		}
		return found == nil
	})
	return found, found != nil
}

func unescapeName(name string) string {
	if !strings.Contains(name, "%") {
		return name
	}
	if u, err := url.PathUnescape(name); err == nil {
		return u
	}
	return name
}
