package utils

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize is the hard cap on uploaded documents (10MB), enforced
// server-side before any extraction work begins.
const MaxUploadSize = 10 << 20

var (
	// ErrFileTooLarge is returned for uploads over MaxUploadSize.
	ErrFileTooLarge = errors.New("file exceeds the 10MB upload limit")
	// ErrUnsupportedType is returned for anything that is not PDF/JPEG/PNG.
	ErrUnsupportedType = errors.New("unsupported file type, only PDF, JPG and PNG are accepted")
	// ErrNoTextPath is returned for image uploads: they pass the upload gate
	// but have no OCR pipeline behind them.
	ErrNoTextPath = errors.New("text extraction is not supported for image files, upload a PDF")
	// ErrNoText is returned for PDFs that yield no extractable text.
	ErrNoText = errors.New("no text could be extracted from the document")
)

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ValidateUpload checks size and file type. It must run before the file is
// read so rejected uploads cause no side effects.
func ValidateUpload(filename string, size int64) error {
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return ErrUnsupportedType
	}
	return nil
}

// ExtractText returns the plain text of an uploaded document. Only PDFs have
// a text path; images are accepted by the upload gate but rejected here.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractPDFText(data)
	case ".jpg", ".jpeg", ".png":
		return "", ErrNoTextPath
	default:
		return "", ErrUnsupportedType
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed files; turn that into an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", ErrNoText
	}
	return out, nil
}
