package mailparse

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"strings"

	"github.com/modfin/mailparse/charset"
)

var addressParser = &mail.AddressParser{
	WordDecoder: &mime.WordDecoder{CharsetReader: charsetReader},
}

func charsetReader(name string, input io.Reader) (io.Reader, error) {
	d, ok := charset.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unhandled charset %q", name)
	}
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	s, err := d.Decode(b)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader([]byte(s)), nil
}

// Address parses the first field named name as a single mailbox. Encoded
// words in display names are decoded.
func (p *Part) Address(name string) (*mail.Address, error) {
	f, ok := p.Headers.Get(name)
	if !ok {
		return nil, mail.ErrHeaderNotPresent
	}
	return addressParser.Parse(f.Unfolded())
}

// AddressList parses the first field named name as a list of mailboxes.
func (p *Part) AddressList(name string) ([]*mail.Address, error) {
	f, ok := p.Headers.Get(name)
	if !ok {
		return nil, mail.ErrHeaderNotPresent
	}
	return addressParser.ParseList(f.Unfolded())
}

func (p *Part) From() (*mail.Address, error) {
	return p.Address("From")
}

func (p *Part) To() ([]*mail.Address, error) {
	return p.AddressList("To")
}

func (p *Part) Cc() ([]*mail.Address, error) {
	return p.AddressList("Cc")
}

// Subject returns the decoded subject, or "" if there is none.
func (p *Part) Subject() string {
	v, _ := p.Headers.FirstValue(HeaderSubject)
	return v
}

// MessageID returns the Message-ID without angle brackets.
func (p *Part) MessageID() string {
	v, _ := p.Headers.FirstValue(HeaderMessageID)
	v = strings.TrimSpace(v)
	if len(v) > 1 && v[0] == '<' && v[len(v)-1] == '>' {
		v = v[1 : len(v)-1]
	}
	return v
}
