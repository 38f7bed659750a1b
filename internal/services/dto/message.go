package dto

import (
	"time"

	"mentormatch_backend/internal/models"
)

// SendMessageRequest - отправка сообщения в матч
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// MessageQuery - параметры выборки истории.
// since - строгая нижняя граница по created_at (RFC3339).
type MessageQuery struct {
	Since string `form:"since"`
}

// MessageDTO - сообщение в ответах API
type MessageDTO struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessageDTO(m *models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		MatchID:   m.MatchID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// MessageListResponse - история сообщений по возрастанию времени
type MessageListResponse struct {
	Messages []MessageDTO `json:"messages"`
}
