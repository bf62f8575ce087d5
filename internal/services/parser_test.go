package services

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	input := "  Jane Doe  \n\n\n  Backend Engineer \n\n  Go, Postgres  \n"
	assert.Equal(t, "Jane Doe\nBackend Engineer\nGo, Postgres", CleanText(input))
}

func TestCleanTextEmpty(t *testing.T) {
	assert.Equal(t, "", CleanText("   \n\n   "))
}

func TestDecodeDOCXBody(t *testing.T) {
	body := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Backend </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := decodeDOCXBody(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer\n", text)
}

func TestExtractDOCXFromArchive(t *testing.T) {
	path := writeTestDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>Resume content</w:t></w:r></w:p></w:body>
</w:document>`)

	parser := NewDocumentParserService()
	content, err := parser.ExtractTextWithMetaData(path)
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Resume content")
	assert.Equal(t, path, content.FilePath)
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	entry, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	parser := NewDocumentParserService()
	_, err = parser.ExtractTextWithMetaData(path)
	assert.Error(t, err)
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	parser := NewDocumentParserService()
	_, err := parser.ExtractText(path)
	assert.Error(t, err)
}

func TestExtractTextMissingFile(t *testing.T) {
	parser := NewDocumentParserService()
	_, err := parser.ExtractText("/nonexistent/resume.pdf")
	assert.Error(t, err)
}

func writeTestDOCX(t *testing.T, documentXML string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}
