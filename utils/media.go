package utils

import (
	"fmt"
	"log"
	"mime/multipart"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"lms/config"
)

// uploadResponse is the relevant part of the object store's reply.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadMedia forwards an uploaded file to the configured object store and
// returns the stable retrieval URL. The content is treated as an opaque
// byte stream; only the URL is kept. When no store is configured the file
// lands on local disk instead.
func UploadMedia(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.MediaUploadURL == "" {
		filename, err := SaveUploadedFile(file, config.AppConfig.MediaLocalDir)
		if err != nil {
			return "", err
		}
		return GetFileURL(filename), nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	publicID := folder + "/" + uuid.NewString()

	client := resty.New()
	var result uploadResponse
	resp, err := client.R().
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"upload_preset": config.AppConfig.MediaUploadPreset,
			"public_id":     publicID,
		}).
		SetResult(&result).
		SetError(&result).
		Post(config.AppConfig.MediaUploadURL)
	if err != nil {
		log.Printf("Error uploading media: %v", err)
		return "", err
	}

	if resp.IsError() || (result.SecureURL == "" && result.URL == "") {
		if result.Error.Message != "" {
			return "", fmt.Errorf("media upload failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("media upload failed, code: %d", resp.StatusCode())
	}

	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}
