package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("letter.pdf", 1024))
	assert.NoError(t, ValidateUpload("scan.JPG", 1024))
	assert.NoError(t, ValidateUpload("scan.png", MaxUploadSize))

	assert.ErrorIs(t, ValidateUpload("letter.pdf", MaxUploadSize+1), ErrFileTooLarge)
	assert.ErrorIs(t, ValidateUpload("notes.txt", 1024), ErrUnsupportedType)
	assert.ErrorIs(t, ValidateUpload("archive.zip", 1024), ErrUnsupportedType)
	assert.ErrorIs(t, ValidateUpload("noextension", 1024), ErrUnsupportedType)
}

func TestExtractTextImagesHaveNoTextPath(t *testing.T) {
	_, err := ExtractText("scan.jpg", []byte{0xFF, 0xD8, 0xFF})
	assert.ErrorIs(t, err, ErrNoTextPath)

	_, err = ExtractText("scan.png", []byte{0x89, 0x50, 0x4E, 0x47})
	assert.ErrorIs(t, err, ErrNoTextPath)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText("broken.pdf", []byte("this is not a pdf at all"))
	require.Error(t, err)
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	_, err := ExtractText("notes.docx", []byte("irrelevant"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
