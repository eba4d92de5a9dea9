package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-imap/utf7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDump(t *testing.T) {
	out, err := run(t, "", "dump", "testdata/mixed.eml")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "- multipart/mixed (2 parts)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  1 text/plain charset=iso-8859-1"), lines[1])
	assert.Contains(t, lines[2], `2 application/octet-stream`)
	assert.Contains(t, lines[2], `attachment filename="data.bin" digest=`)
}

func TestHeaders(t *testing.T) {
	out, err := run(t, "", "headers", "testdata/mixed.eml")
	require.NoError(t, err)
	assert.Contains(t, out, "From: André <andre@example.com>\n")
	assert.Contains(t, out, "Subject: Hello world\n")
	assert.Contains(t, out, "# date: 2006-01-02T15:04:05Z\n")

	out, err = run(t, "", "headers", "--raw", "testdata/mixed.eml")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: =?utf-8?B?SGVsbG8gd29ybGQ=?=\n")
	assert.NotContains(t, out, "# date")
}

func TestBody(t *testing.T) {
	out, err := run(t, "", "body", "testdata/mixed.eml")
	require.NoError(t, err)
	assert.Equal(t, "Café", out)

	out, err = run(t, "", "body", "--part", "2", "--binary", "testdata/mixed.eml")
	require.NoError(t, err)
	assert.Equal(t, "\x00\x01\x02", out)

	_, err = run(t, "", "body", "--part", "9", "testdata/mixed.eml")
	assert.Error(t, err)
}

func TestBodyStdin(t *testing.T) {
	out, err := run(t, "Subject: x\n\nplain body", "body")
	require.NoError(t, err)
	assert.Equal(t, "plain body", out)

	out, err = run(t, "Subject: x\n\nf\xc3\xb6\xc3\xb6 b\xc3\xa4r", "body", "--detect", "-")
	require.NoError(t, err)
	assert.Equal(t, "föö bär", out)
}

const testMbox = "From alice@example.com Mon Jan  2 15:04:05 2006\n" +
	"From: Alice <alice@example.com>\n" +
	"Subject: one\n" +
	"Date: Mon, 2 Jan 2006 15:04:05 +0000\n" +
	"\n" +
	"first body\n" +
	"\n" +
	"From bob@other.com Tue Jan  3 15:04:05 2006\n" +
	"From: Bob <bob@other.com>\n" +
	"Subject: two\n" +
	"Status: RO\n" +
	"\n" +
	"second body\n" +
	"\n" +
	"From carol@example.com Wed Jan  4 15:04:05 2006\n" +
	"From: Carol <carol@mail.example.com>\n" +
	"Subject: three\n" +
	"Status: D\n" +
	"\n" +
	"third body\n"

func TestMbox(t *testing.T) {
	out, err := run(t, testMbox, "mbox")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0\t2006-01-02 15:04\talice@example.com\tone\t0", lines[0])
	assert.Equal(t, "1\t-\tbob@other.com\ttwo\t0", lines[1])

	out, err = run(t, testMbox, "mbox", "--skip-deleted", "--sender-domain", "example.com")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "0\t"))

	out, err = run(t, testMbox, "mbox", "-")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	out, err = run(t, testMbox, "mbox", "--max-size", "10")
	assert.EqualError(t, err, "3 messages failed")
	assert.Empty(t, out)
}

func TestMboxOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mbox")

	_, err := run(t, testMbox, "mbox", "--sender-domain", "other.com", "--message-id", "mx.example.net", "-o", path)
	require.NoError(t, err)

	out, err := run(t, "", "mbox", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "bob@other.com\ttwo")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Message-Id: <")
	assert.Contains(t, string(b), "@mx.example.net>")
}

func TestMailboxes(t *testing.T) {
	dir := t.TempDir()
	name := "Skickat & Sparat"
	encoded, err := utf7.Encoding.NewEncoder().String(name)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, encoded), []byte(testMbox), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	out, err := run(t, "", "mailboxes", dir)
	require.NoError(t, err)
	assert.Equal(t, name+"\t3\n", out)

	out, err = run(t, "", "mailboxes", dir, name)
	require.NoError(t, err)
	assert.Equal(t, name+"\t3\n", out)

	_, err = run(t, "", "mailboxes", dir, "missing")
	assert.Error(t, err)
}
