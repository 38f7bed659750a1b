package dto

import (
	"time"

	"mentormatch_backend/internal/models"
)

// MediaDTO - элемент галереи пользователя
type MediaDTO struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	URL       string           `json:"url"`
	MediaType models.MediaType `json:"media_type"`
	Caption   string           `json:"caption,omitempty"`
	MimeType  string           `json:"mime_type"`
	Size      int64            `json:"size"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewMediaDTO(m *models.Media) MediaDTO {
	return MediaDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		URL:       m.URL,
		MediaType: m.MediaType,
		Caption:   m.Caption,
		MimeType:  m.MimeType,
		Size:      m.Size,
		CreatedAt: m.CreatedAt,
	}
}

// MediaListResponse - галерея, новые первыми
type MediaListResponse struct {
	Media []MediaDTO `json:"media"`
}
