package mailparse

import (
	"github.com/modfin/mailparse/charset"
	"github.com/modfin/mailparse/transfer"
)

// Body is a part's body tagged with how it was encoded for transport.
type Body struct {
	Encoding transfer.Encoding
	Charset  string
	raw      []byte
}

// Raw returns the body exactly as it appears in the message.
func (b Body) Raw() []byte {
	return b.raw
}

// Decoded undoes base64 and quoted-printable. Other encodings return Raw.
func (b Body) Decoded() ([]byte, error) {
	return transfer.Decode(b.Encoding, b.raw)
}

// Text decodes the body and converts it from the charset. Binary bodies have
// no text form and return ErrBinaryText.
func (b Body) Text() (string, error) {
	if b.Encoding == transfer.Binary {
		return "", ErrBinaryText
	}
	d, err := b.Decoded()
	if err != nil {
		return "", err
	}
	return charset.Decode(b.Charset, d), nil
}
