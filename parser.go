// Package mailparse parses raw RFC 5322 messages into a tree of MIME parts.
//
// Parsing never copies the input. Every Part refers to slices of the buffer
// handed to Parse, which must not be modified while the tree is in use.
// Headers and bodies are decoded lazily by the accessors on Part and Body.
package mailparse

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/modfin/mailparse/header"
)

// Parse splits raw into headers, body and, for multipart content, subparts.
//
// The only structural error is a malformed header block, in the message or in
// any subpart. Broken multipart framing is recovered from: a missing opening
// boundary leaves the part as a leaf, a missing closing boundary extends the
// last subpart to the end of the input.
func Parse(raw []byte, opts ...Option) (*Part, error) {
	cfg := Config{}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	p := parser{log: cfg.Log, maxDepth: cfg.MaxDepth}
	return p.parse(raw, 0, "")
}

type parser struct {
	log      *slog.Logger
	maxDepth int
}

func (p *parser) parse(raw []byte, depth int, path string) (*Part, error) {
	headers, bodyStart, err := header.ParseFields(raw)
	if err != nil {
		if path == "" {
			return nil, err
		}
		return nil, fmt.Errorf("part %s: %w", path, err)
	}

	part := &Part{
		Headers:     headers,
		ContentType: header.DefaultContentType(),
		Path:        path,
		Depth:       depth,
		raw:         raw,
		header:      raw[:bodyStart],
		body:        raw[bodyStart:],
	}
	if v, ok := headers.FirstValue(HeaderContentType); ok {
		part.ContentType = header.ParseContentType(v)
	}

	if !part.ContentType.IsMultipart() || bodyStart >= len(raw) {
		return part, nil
	}
	boundary, ok := part.ContentType.Boundary()
	if !ok {
		p.recovered(reasonNoBoundaryParam, path, part.ContentType.MediaType)
		return part, nil
	}
	if depth >= p.maxDepth {
		p.recovered(reasonMaxDepth, path, part.ContentType.MediaType)
		return part, nil
	}

	marker := []byte("--" + boundary)
	preambleEnd := indexFrom(raw, bodyStart, marker)
	if preambleEnd < 0 {
		p.recovered(reasonNoOpeningBoundary, path, part.ContentType.MediaType)
		return part, nil
	}
	part.body = raw[bodyStart:preambleEnd]

	markerEnd := preambleEnd + len(marker)
	for {
		nl := indexFrom(raw, markerEnd, []byte{'\n'})
		if nl < 0 {
			p.recovered(reasonNoNewlineAfterMarker, path, part.ContentType.MediaType)
			break
		}
		start := nl + 1
		end := indexFrom(raw, start, marker)
		if end < 0 {
			p.recovered(reasonNoTerminatingBoundary, path, part.ContentType.MediaType)
			end = len(raw)
		}

		child, err := p.parse(raw[start:end], depth+1, childPath(path, len(part.Subparts)+1))
		if err != nil {
			return nil, err
		}
		part.Subparts = append(part.Subparts, child)

		markerEnd = end + len(marker)
		if markerEnd+2 > len(raw) || (raw[markerEnd] == '-' && raw[markerEnd+1] == '-') {
			break
		}
	}
	return part, nil
}

func (p *parser) recovered(reason, path, mediaType string) {
	p.log.Debug("lenient multipart recovery",
		"reason", reason,
		"part", pathOrRoot(path),
		"content-type", mediaType)
}

// indexFrom returns the offset of the first sep in b at or after from, or -1.
func indexFrom(b []byte, from int, sep []byte) int {
	if from > len(b) {
		return -1
	}
	i := bytes.Index(b[from:], sep)
	if i < 0 {
		return -1
	}
	return from + i
}

func childPath(parent string, n int) string {
	if parent == "" {
		return strconv.Itoa(n)
	}
	return parent + "." + strconv.Itoa(n)
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
