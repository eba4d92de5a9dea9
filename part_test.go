package mailparse

import (
	"testing"

	"github.com/modfin/mailparse/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partWith(t *testing.T, headers string) *Part {
	t.Helper()
	p, err := Parse([]byte(headers + "\r\n\r\nbody"))
	require.NoError(t, err)
	return p
}

func TestPartIsAttachment(t *testing.T) {
	testCases := []struct {
		name     string
		headers  string
		expected bool
	}{
		{"Attachment", "Content-Disposition: attachment", true},
		{"Attachment with filename", `Content-Disposition: attachment; filename="document.pdf"`, true},
		{"Attachment with bad headers", "Content-Disposition: attachment; file", true},
		{"Inline", "Content-Disposition: inline", false},
		{"No Content-Disposition", "Content-Type: text/plain", false},
		{"Mixed case", "Content-Disposition: AttAchMent", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, partWith(t, tc.headers).IsAttachment())
		})
	}
}

func TestPartIsInline(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		want        bool
	}{
		{"Inline disposition", "inline", true},
		{"Inline disposition with parameters", `inline; filename="test.pdf"`, true},
		{"Inline disposition uppercase", "INLINE", true},
		{"Attachment disposition", "attachment", false},
		{"Attachment disposition with parameters", `attachment; filename="test.pdf"`, false},
		{"Empty disposition", "", false},
		{"Invalid disposition", "invalid-type", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, partWith(t, "Content-Disposition: "+tt.disposition).IsInline())
		})
	}

	assert.False(t, partWith(t, "Subject: none").IsInline())
}

func TestPartContentDisposition(t *testing.T) {
	cd := partWith(t, "Subject: none").ContentDisposition()
	assert.Equal(t, header.Inline, cd.Kind)
	assert.Empty(t, cd.Params)

	cd = partWith(t, `Content-Disposition: attachment; filename="King Joffrey.death"`).ContentDisposition()
	assert.Equal(t, header.Attachment, cd.Kind)
	assert.Equal(t, "King Joffrey.death", cd.Params["filename"])

	cd = partWith(t, "Content-Disposition: x-custom").ContentDisposition()
	assert.Equal(t, header.Extension, cd.Kind)
	assert.Equal(t, "x-custom", cd.Name)
}

func TestPartFilename(t *testing.T) {
	tests := []struct {
		name     string
		headers  string
		expected string
		wantErr  bool
	}{
		{"Simple filename", `Content-Disposition: attachment; filename="example.pdf"`, "example.pdf", false},
		{"Filename with spaces", `Content-Disposition: attachment; filename="my document.pdf"`, "my document.pdf", false},
		{"UTF-8 encoded filename", `Content-Disposition: attachment; filename*=UTF-8''%E8%AF%95%E9%AA%8C.pdf`, "试验.pdf", false},
		{"Percent-encoding filename", `Content-Disposition: attachment; filename="my%20file.pdf"`, "my file.pdf", false},
		{"Inline with UTF-8 filename", `Content-Disposition: inline; filename*=UTF-8''%E6%B5%8B%E8%AF%95.jpg`, "测试.jpg", false},
		{"Encoded word filename", `Content-Disposition: attachment; filename="=?UTF-8?B?MDY2MTM5ODEuanBn?="`, "06613981.jpg", false},
		{"Content-Type name", `Content-Type: image/jpeg; name="=?UTF-8?B?MDY2MTM5ODEuanBn?="`, "06613981.jpg", false},
		{"Encoded word name utf8 alias", `Content-Type: application/octet-stream;name="=?utf8?B?6L+O5ai255m95a+M576O?=";charset="utf8"`, "迎娶白富美", false},
		{"Invalid format", "Content-Disposition: attachment; filename", "", true},
		{"Empty input", "Content-Disposition: ", "", true},
		{"No headers", "Subject: x", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := partWith(t, tt.headers).Filename()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoFilename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPartFormName(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		wantName    string
		wantErr     bool
	}{
		{"Valid form-data", `form-data; name="field1"`, "field1", false},
		{"Form-data with filename", `form-data; name="file"; filename="a.txt"`, "file", false},
		{"Missing name", "form-data", "", true},
		{"Not form-data", `attachment; name="x"`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := partWith(t, "Content-Disposition: "+tt.disposition).FormName()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFormData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got)
		})
	}
}

const mixedMail = "From: sender@example.com\r\n" +
	"Content-Type: multipart/mixed; boundary=\"outer\"\r\n" +
	"\r\n" +
	"--outer\r\n" +
	"Content-Type: multipart/alternative; boundary=\"inner\"\r\n" +
	"\r\n" +
	"--inner\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"plain\r\n" +
	"--inner\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>html</p>\r\n" +
	"--inner--\r\n" +
	"--outer\r\n" +
	"Content-Type: image/png\r\n" +
	"Content-ID: <logo@example.com>\r\n" +
	"Content-Disposition: inline\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"iVBORw0KGgo=\r\n" +
	"--outer\r\n" +
	"Content-Type: text/plain\r\n" +
	"Content-Disposition: attachment; filename=\"notes.txt\"\r\n" +
	"\r\n" +
	"attached text\r\n" +
	"--outer\r\n" +
	"Content-Type: message/rfc822\r\n" +
	"\r\n" +
	"Subject: forwarded\r\n" +
	"\r\n" +
	"inner body\r\n" +
	"--outer--\r\n"

func TestPartTree(t *testing.T) {
	mail, err := Parse([]byte(mixedMail))
	require.NoError(t, err)
	require.Len(t, mail.Subparts, 4)

	var paths []string
	mail.Walk(func(p *Part) bool {
		paths = append(paths, p.Path)
		return true
	})
	assert.Equal(t, []string{"", "1", "1.1", "1.2", "2", "3", "4"}, paths)

	paths = nil
	mail.Walk(func(p *Part) bool {
		paths = append(paths, p.Path)
		return !p.IsMultipart() || p.Path == ""
	})
	assert.Equal(t, []string{"", "1", "2", "3", "4"}, paths)

	plain, ok := mail.TextPart(MimeTextPlain)
	require.True(t, ok)
	assert.Equal(t, "1.1", plain.Path)

	html, ok := mail.TextPart(MimeTextHtml)
	require.True(t, ok)
	text, err := html.Text()
	require.NoError(t, err)
	assert.Equal(t, "<p>html</p>\r\n", text)

	attachments := mail.Attachments()
	require.Len(t, attachments, 1)
	name, err := attachments[0].Filename()
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", name)

	img, ok := mail.Find("2")
	require.True(t, ok)
	assert.Equal(t, "logo@example.com", img.ContentID())
	assert.True(t, img.IsInline())
	b, err := img.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), b)

	fwd, ok := mail.Find("4")
	require.True(t, ok)
	inner, err := fwd.Message()
	require.NoError(t, err)
	assert.Equal(t, "forwarded", inner.Subject())
	text, err = inner.Text()
	require.NoError(t, err)
	assert.Equal(t, "inner body\r\n", text)

	_, err = img.Message()
	assert.ErrorIs(t, err, ErrNotMessage)
}
