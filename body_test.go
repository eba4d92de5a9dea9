package mailparse

import (
	"testing"

	"github.com/modfin/mailparse/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyTransferEncodings(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		encoding transfer.Encoding
		rawBody  string
		decoded  string
		text     string
	}{
		{
			name:     "default",
			raw:      "Content-Type: text/plain; charset=UTF-7\r\n\r\n+JgM-",
			encoding: transfer.SevenBit,
			rawBody:  "+JgM-",
			decoded:  "+JgM-",
			text:     "☃",
		},
		{
			name:     "7bit",
			raw:      "Content-Type: text/plain; charset=UTF-7\r\nContent-Transfer-Encoding: 7bit\r\n\r\n+JgM-",
			encoding: transfer.SevenBit,
			rawBody:  "+JgM-",
			decoded:  "+JgM-",
			text:     "☃",
		},
		{
			name:     "8bit",
			raw:      "Content-Type: text/plain; charset=UTF-7\r\nContent-Transfer-Encoding: 8bit\r\n\r\n+JgM-",
			encoding: transfer.EightBit,
			rawBody:  "+JgM-",
			decoded:  "+JgM-",
			text:     "☃",
		},
		{
			name:     "quoted-printable",
			raw:      "Content-Type: text/plain; charset=UTF-7\r\nContent-Transfer-Encoding: quoted-printable\r\n\r\n+JgM-",
			encoding: transfer.QuotedPrintable,
			rawBody:  "+JgM-",
			decoded:  "+JgM-",
			text:     "☃",
		},
		{
			name:     "base64",
			raw:      "Content-Transfer-Encoding: base64\r\n\r\naGVsbG 8gd\r\n29ybGQ=",
			encoding: transfer.Base64,
			rawBody:  "aGVsbG 8gd\r\n29ybGQ=",
			decoded:  "hello world",
			text:     "hello world",
		},
		{
			name:     "unknown encoding is 7bit",
			raw:      "Content-Transfer-Encoding: x-token\r\n\r\nhello",
			encoding: transfer.SevenBit,
			rawBody:  "hello",
			decoded:  "hello",
			text:     "hello",
		},
		{
			name:     "encoding value is case insensitive",
			raw:      "content-transfer-encoding:  BASE64 \r\n\r\naGk=",
			encoding: transfer.Base64,
			rawBody:  "aGk=",
			decoded:  "hi",
			text:     "hi",
		},
		{
			name:     "unknown charset keeps ascii",
			raw:      "Content-Type: text/plain; charset=x-unknown\r\n\r\nhello world",
			encoding: transfer.SevenBit,
			rawBody:  "hello world",
			decoded:  "hello world",
			text:     "hello world",
		},
		{
			name:     "latin1 body",
			raw:      "Content-Type: text/plain; charset=iso-8859-1\r\nContent-Transfer-Encoding: 8bit\r\n\r\ncaf\xe9",
			encoding: transfer.EightBit,
			rawBody:  "caf\xe9",
			decoded:  "caf\xe9",
			text:     "café",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail, err := Parse([]byte(tt.raw))
			require.NoError(t, err)

			body := mail.Body()
			assert.Equal(t, tt.encoding, body.Encoding)
			assert.Equal(t, tt.rawBody, string(body.Raw()))

			decoded, err := body.Decoded()
			require.NoError(t, err)
			assert.Equal(t, tt.decoded, string(decoded))

			text, err := body.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestBodyBinary(t *testing.T) {
	mail, err := Parse([]byte("Content-Transfer-Encoding: binary\r\n\r\n######"))
	require.NoError(t, err)

	body := mail.Body()
	assert.Equal(t, transfer.Binary, body.Encoding)
	assert.Equal(t, "######", string(body.Raw()))

	_, err = body.Text()
	assert.ErrorIs(t, err, ErrBinaryText)
	_, err = mail.Text()
	assert.ErrorIs(t, err, ErrBinaryText)

	b, err := mail.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "######", string(b))
}

func TestBodyBadBase64(t *testing.T) {
	mail, err := Parse([]byte("Content-Transfer-Encoding: base64\r\n\r\n!!!!"))
	require.NoError(t, err)

	assert.Equal(t, "!!!!", string(mail.Body().Raw()))
	_, err = mail.Bytes()
	assert.ErrorIs(t, err, transfer.ErrBase64)
	_, err = mail.Text()
	assert.ErrorIs(t, err, transfer.ErrBase64)
}

func TestBodyDecodeErrorIsLocal(t *testing.T) {
	mail, err := Parse([]byte("Content-Type: multipart/mixed; boundary=b\r\n\r\n" +
		"--b\r\nContent-Transfer-Encoding: base64\r\n\r\n!!!!\r\n" +
		"--b\r\nContent-Type: text/plain\r\n\r\nfine\r\n" +
		"--b--\r\n"))
	require.NoError(t, err)
	require.Len(t, mail.Subparts, 2)

	_, err = mail.Subparts[0].Text()
	assert.Error(t, err)
	text, err := mail.Subparts[1].Text()
	require.NoError(t, err)
	assert.Equal(t, "fine\r\n", text)
}
