package middleware

import (
	"errors"
	"strings"
	"testing"

	"github.com/modfin/mailparse/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnvelope(data string) *envelope.Envelope {
	e := envelope.NewEnvelope("test.mbox", 0)
	e.Data.WriteString(data)
	return e
}

func ok(e *envelope.Envelope) error { return nil }

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(e *envelope.Envelope) error {
				order = append(order, name)
				return next(e)
			}
		}
	}
	h := Chain(func(e *envelope.Envelope) error {
		order = append(order, "handler")
		return nil
	}, mw("a"), nil, mw("b"))

	require.NoError(t, h(newEnvelope("Subject: x\r\n\r\n")))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAddMessageID(t *testing.T) {
	const msg = "Date: Mon, 2 Jan 2006 15:04:05 +0000\r\nSubject: x\r\n\r\nbody"

	var ids []string
	h := Chain(func(e *envelope.Envelope) error {
		m, err := e.Mail()
		require.NoError(t, err)
		ids = append(ids, m.MessageID())
		return nil
	}, AddMessageID("mx.example.com"))

	require.NoError(t, h(newEnvelope(msg)))
	require.NoError(t, h(newEnvelope(msg)))
	require.Len(t, ids, 2)
	assert.True(t, strings.HasSuffix(ids[0], "@mx.example.com"))
	assert.Equal(t, ids[0], ids[1])

	e := newEnvelope("Message-ID: <kept@example.com>\r\n\r\nbody")
	require.NoError(t, h(e))
	assert.Equal(t, "kept@example.com", ids[2])
}

func TestAddReceivedHeaders(t *testing.T) {
	e := newEnvelope("Subject: x\r\n\r\nbody")
	require.NoError(t, Chain(ok, AddReceivedHeaders("mx.example.com"))(e))

	m, err := e.Mail()
	require.NoError(t, err)
	v, found := m.Headers.FirstValue("Received")
	require.True(t, found)
	assert.Contains(t, v, "from test.mbox")
	assert.Contains(t, v, "by mx.example.com with mailparse id "+e.EnvelopeId()+"-0@mx.example.com;")
}

func TestRecover(t *testing.T) {
	t.Run("No panic", func(t *testing.T) {
		e := newEnvelope("")
		assert.NoError(t, Recover(ok)(e))
		assert.NoError(t, e.GetError())
	})

	t.Run("With panic", func(t *testing.T) {
		e := newEnvelope("")
		err := Recover(func(e *envelope.Envelope) error {
			panic("test panic")
		})(e)

		require.Error(t, err)
		assert.Equal(t, "recovered: test panic", err.Error())
		assert.Equal(t, err, e.GetError())
	})

	t.Run("Error passes through", func(t *testing.T) {
		boom := errors.New("boom")
		err := Recover(func(e *envelope.Envelope) error { return boom })(newEnvelope(""))
		assert.Equal(t, boom, err)
	})
}
