package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"lms/config"
)

// SaveUploadedFile stores an upload on local disk and returns the stored
// filename. Used only when no object store is configured.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext
	filePath := filepath.Join(destDir, newFilename)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}

// GetFileURL maps a locally stored filename to its serving URL.
func GetFileURL(filename string) string {
	if filename == "" {
		return ""
	}
	return config.AppConfig.MediaBaseURL + "/" + filename
}
