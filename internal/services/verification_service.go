package services

import (
	"context"
	"errors"
	"time"

	"mentormatch_backend/internal/logger"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/internal/storage"
	"mentormatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type VerificationService interface {
	ListRequests(db *gorm.DB) (*dto.VerificationListResponse, error)
	Review(db *gorm.DB, reviewerID, requestID string, req *dto.ReviewVerificationRequest) (*dto.VerificationRequestDTO, error)
}

type verificationService struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
	storage          storage.Storage
}

func NewVerificationService(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
	store storage.Storage,
) VerificationService {
	return &verificationService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		storage:          store,
	}
}

func (s *verificationService) ListRequests(db *gorm.DB) (*dto.VerificationListResponse, error) {
	requests, err := s.verificationRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.VerificationRequestDTO, 0, len(requests))
	for i := range requests {
		result = append(result, s.toDTO(&requests[i]))
	}
	return &dto.VerificationListResponse{Requests: result}, nil
}

// Review применяет решение по заявке. approve дополнительно
// верифицирует пользователя, reject оставляет is_verified как есть.
// Повторный пересмотр уже рассмотренной заявки допустим:
// действует последнее решение.
func (s *verificationService) Review(db *gorm.DB, reviewerID, requestID string, req *dto.ReviewVerificationRequest) (*dto.VerificationRequestDTO, error) {
	request, err := s.verificationRepo.FindByID(db, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	var status models.VerificationStatus
	switch req.Action {
	case models.VerificationActionApprove:
		status = models.VerificationStatusApproved
	case models.VerificationActionReject:
		status = models.VerificationStatusRejected
	default:
		return nil, apperrors.ErrInvalidVerificationAction
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		request.Status = status
		request.ReviewedAt = &now
		request.ReviewerID = &reviewerID
		if err := s.verificationRepo.Update(tx, request); err != nil {
			return err
		}

		if status == models.VerificationStatusApproved {
			return s.userRepo.SetVerified(tx, request.UserID, true)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("verification reviewed",
		"request_id", request.ID,
		"user_id", request.UserID,
		"status", string(status),
		"reviewer_id", reviewerID,
	)

	result := s.toDTO(request)
	return &result, nil
}

func (s *verificationService) toDTO(r *models.VerificationRequest) dto.VerificationRequestDTO {
	url, err := s.storage.GetURL(context.Background(), r.DocumentPath)
	if err != nil {
		url = ""
	}
	return dto.NewVerificationRequestDTO(r, url)
}
