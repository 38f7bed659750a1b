package services

import (
	"mime/multipart"
	"strings"

	"mentormatch_backend/internal/config"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/pkg/apperrors"
)

// validateMediaUpload проверяет размер и тип файла галереи.
// Допустимые типы заданы префиксами в конфиге (image/, video/).
func validateMediaUpload(fh *multipart.FileHeader) error {
	cfg := config.GetConfig()

	if fh.Size > cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	contentType := fh.Header.Get("Content-Type")
	for _, prefix := range cfg.Upload.AllowedTypes {
		if strings.HasPrefix(contentType, prefix) {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

// validateDocumentUpload - документ верификации: изображения и PDF.
func validateDocumentUpload(fh *multipart.FileHeader) error {
	cfg := config.GetConfig()

	if fh.Size > cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	contentType := fh.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		return nil
	}
	return apperrors.ErrInvalidFileType
}

// inferMediaType определяет тип медиа по Content-Type
func inferMediaType(contentType string) models.MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo
	default:
		return models.MediaTypeFile
	}
}
