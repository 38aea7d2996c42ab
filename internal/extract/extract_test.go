package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestText_DOCX(t *testing.T) {
	data := docx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t xml:space="preserve">Go &amp; </w:t></w:r><w:r><w:t>PostgreSQL</w:t></w:r></w:p>`)

	got, err := Text("Jane_Doe.DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo & PostgreSQL", got)
}

func TestText_DOCXWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Text("cv.docx", buf.Bytes())
	require.Error(t, err)
}

func TestText_TXT(t *testing.T) {
	got, err := Text("cv.txt", []byte("  Senior   engineer\r\n\r\n\tKafka Redis  "))
	require.NoError(t, err)
	assert.Equal(t, "Senior engineer\nKafka Redis", got)
}

func TestText_Errors(t *testing.T) {
	_, err := Text("cv.png", []byte("x"))
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Text("cv.pdf", nil)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Text("cv.pdf", []byte("not a pdf"))
	require.Error(t, err)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("a.PDF"))
	assert.True(t, Allowed("a.docx"))
	assert.True(t, Allowed("a.txt"))
	assert.False(t, Allowed("a.doc"))
	assert.False(t, Allowed("noext"))
}
