package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrFileType = errors.New("file type is not allowed")

// UploadExtensions are the image types accepted for thumbnails and deity portraits.
var UploadExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true}

// SaveUploadedFile copies file into destDir under a fresh name and returns that name.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !UploadExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrFileType, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// GetFileURL is the public path of a stored upload, served from /uploads.
func GetFileURL(name string) string {
	if name == "" {
		return ""
	}
	return "/uploads/" + name
}
