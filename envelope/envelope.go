package envelope

import (
	"context"
	"fmt"
	"net/textproto"
	"time"

	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/header"
	"github.com/modfin/mailparse/utils"
)

type ctxKey string

const envelopeIDKey ctxKey = "envelopeID"

// Envelope is one message travelling through a processing pipeline, usually
// read from a mailbox file.
type Envelope struct {
	ctx context.Context

	// Source names where the message was read from, a file path or "-"
	Source string

	// Index is the zero based position of the message within Source
	Index int

	// Data stores the header and message body
	Data *Data

	err error

	part    *mailparse.Part
	partLen int
}

func NewEnvelope(source string, index int) *Envelope {
	return &Envelope{
		ctx:    context.WithValue(context.Background(), envelopeIDKey, utils.XID()),
		Source: source,
		Index:  index,
		Data:   &Data{},
	}
}

func (e *Envelope) Context() context.Context {
	if e.ctx == nil {
		e.ctx = context.Background()
	}
	return e.ctx
}
func (e *Envelope) WithContext(ctx context.Context) {
	e.ctx = ctx
}

// EnvelopeId is unique per process and sortable by creation time.
func (e *Envelope) EnvelopeId() string {
	id, _ := e.Context().Value(envelopeIDKey).(string)
	return id
}

// SetError records a processing failure. The first error wins.
func (e *Envelope) SetError(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Envelope) GetError() error {
	return e.err
}

// AddHeader prepends a header field to the message, operates on the Data buffer
func (e *Envelope) AddHeader(key, value string) error {
	_, err := e.Data.PrependString(fmt.Sprintf("%s: %s\r\n", textproto.CanonicalMIMEHeaderKey(key), value))
	e.part = nil
	return err
}

// Mail parses the message. The result is cached until the data changes.
func (e *Envelope) Mail(opts ...mailparse.Option) (*mailparse.Part, error) {
	if e.part != nil && e.partLen == e.Data.Len() && len(opts) == 0 {
		return e.part, nil
	}
	p, err := mailparse.Parse(e.Data.Bytes(), opts...)
	if err != nil {
		return nil, err
	}
	e.part, e.partLen = p, e.Data.Len()
	return p, nil
}

// Headers returns the top level header fields of the message.
func (e *Envelope) Headers() (header.List, error) {
	p, err := e.Mail()
	if err != nil {
		return nil, err
	}
	return p.Headers, nil
}

// Date returns the parsed Date header.
func (e *Envelope) Date() (time.Time, error) {
	h, err := e.Headers()
	if err != nil {
		return time.Time{}, err
	}
	v, ok := h.FirstValue(mailparse.HeaderDate)
	if !ok {
		return time.Time{}, utils.ErrNoDate
	}
	return utils.ParseDate(v)
}
