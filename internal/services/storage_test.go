package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveFileAcceptsPDFAndDOCX(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	for _, name := range []string{"resume.pdf", "resume.DOCX"} {
		header := buildFileHeader(t, name, "file content")

		filename, filePath, err := storage.SaveFile(header)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(filename, "resume_"))

		saved, err := os.ReadFile(filePath)
		require.NoError(t, err)
		assert.Equal(t, "file content", string(saved))
	}
}

func TestSaveFileRejectsOtherExtensions(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	header := buildFileHeader(t, "resume.exe", "nope")
	_, _, err := storage.SaveFile(header)
	assert.Error(t, err)
}

func TestSaveFileGeneratesUniqueNames(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	header := buildFileHeader(t, "resume.pdf", "content")

	first, _, err := storage.SaveFile(header)
	require.NoError(t, err)
	second, _, err := storage.SaveFile(header)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteFile(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	header := buildFileHeader(t, "resume.pdf", "content")
	filename, filePath, err := storage.SaveFile(header)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(filename))
	_, err = os.Stat(filePath)
	assert.True(t, os.IsNotExist(err))
}
