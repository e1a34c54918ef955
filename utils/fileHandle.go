package utils

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an upload under destDir with a timestamp+uuid
// filename so concurrent uploads of the same document cannot collide.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8] + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// DeleteFileQuietly removes a stored file best-effort. A missing or locked
// file only gets logged; the caller's delete flow continues.
func DeleteFileQuietly(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Error deleting file %s: %v", filePath, err)
	}
}

// GetFileURL maps a stored path to its public URL.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/" + filepath.ToSlash(filePath)
}
