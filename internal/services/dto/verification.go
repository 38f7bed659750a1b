package dto

import (
	"time"

	"mentormatch_backend/internal/models"
)

// ReviewVerificationRequest - решение стаф-пользователя по заявке
type ReviewVerificationRequest struct {
	Action string `json:"action" binding:"required" validate:"is-verification-action"`
}

// VerificationRequestDTO - заявка на верификацию в ответах API
type VerificationRequestDTO struct {
	ID          string                    `json:"id"`
	UserID      string                    `json:"user_id"`
	Username    string                    `json:"username,omitempty"`
	DocumentURL string                    `json:"document_url"`
	Status      models.VerificationStatus `json:"status"`
	ReviewedAt  *time.Time                `json:"reviewed_at,omitempty"`
	ReviewerID  *string                   `json:"reviewer_id,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
}

func NewVerificationRequestDTO(r *models.VerificationRequest, documentURL string) VerificationRequestDTO {
	d := VerificationRequestDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		DocumentURL: documentURL,
		Status:      r.Status,
		ReviewedAt:  r.ReviewedAt,
		ReviewerID:  r.ReviewerID,
		CreatedAt:   r.CreatedAt,
	}
	if r.User != nil {
		d.Username = r.User.Username
	}
	return d
}

// VerificationListResponse - все заявки, новые первыми
type VerificationListResponse struct {
	Requests []VerificationRequestDTO `json:"requests"`
}
