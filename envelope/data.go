package envelope

import (
	"bytes"
	"io"
)

// Data holds a raw message. Header fields added while processing are kept
// apart from the message as read, so prepending never moves the body.
type Data struct {
	head [][]byte // most recent first
	body bytes.Buffer
}

func (d *Data) Len() int {
	length := d.body.Len()
	for _, h := range d.head {
		length += len(h)
	}
	return length
}

// Bytes returns the whole message. When nothing was prepended the result
// aliases the buffer and is valid until the next write.
func (d *Data) Bytes() []byte {
	if len(d.head) == 0 {
		return d.body.Bytes()
	}
	result := make([]byte, 0, d.Len())
	for _, h := range d.head {
		result = append(result, h...)
	}
	return append(result, d.body.Bytes()...)
}

func (d *Data) String() string {
	return string(d.Bytes())
}

func (d *Data) WriteString(s string) (n int, err error) {
	return d.body.WriteString(s)
}

func (d *Data) Write(p []byte) (n int, err error) {
	return d.body.Write(p)
}

func (d *Data) Prepend(p []byte) (n int, err error) {
	d.head = append([][]byte{bytes.Clone(p)}, d.head...)
	return len(p), nil
}
func (d *Data) PrependString(s string) (n int, err error) {
	return d.Prepend([]byte(s))
}

func (d *Data) ReadFrom(r io.Reader) (n int64, err error) {
	return d.body.ReadFrom(r)
}

// Reset empties the buffer, keeping its storage.
func (d *Data) Reset() {
	d.head = nil
	d.body.Reset()
}

func (d *Data) Reader() io.Reader {
	readers := make([]io.Reader, 0, len(d.head)+1)
	for _, h := range d.head {
		readers = append(readers, bytes.NewReader(h))
	}
	readers = append(readers, bytes.NewReader(d.body.Bytes()))
	return io.MultiReader(readers...)
}
