package services

import (
	"errors"
	"time"

	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MessageService interface {
	GetMessages(db *gorm.DB, userID, matchID string, query *dto.MessageQuery) (*dto.MessageListResponse, error)
	SendMessage(db *gorm.DB, userID, matchID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error)
}

type messageService struct {
	swipeRepo   repositories.SwipeRepository
	messageRepo repositories.MessageRepository
}

func NewMessageService(swipeRepo repositories.SwipeRepository, messageRepo repositories.MessageRepository) MessageService {
	return &messageService{
		swipeRepo:   swipeRepo,
		messageRepo: messageRepo,
	}
}

// GetMessages возвращает историю матча по возрастанию времени.
// Не-участнику - в том числе при несуществующем match id - отдаем
// пустой список, а не ошибку: само существование переписки
// не раскрывается.
func (s *messageService) GetMessages(db *gorm.DB, userID, matchID string, query *dto.MessageQuery) (*dto.MessageListResponse, error) {
	match, err := s.swipeRepo.FindMatchByID(db, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return &dto.MessageListResponse{Messages: []dto.MessageDTO{}}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	if !match.HasParticipant(userID) {
		return &dto.MessageListResponse{Messages: []dto.MessageDTO{}}, nil
	}

	// Невалидный since молча игнорируется - отдаем всю историю
	var since *time.Time
	if query.Since != "" {
		if t, err := time.Parse(time.RFC3339, query.Since); err == nil {
			since = &t
		}
	}

	messages, err := s.messageRepo.FindByMatch(db, matchID, since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.MessageDTO, 0, len(messages))
	for i := range messages {
		result = append(result, dto.NewMessageDTO(&messages[i]))
	}
	return &dto.MessageListResponse{Messages: result}, nil
}

// SendMessage отправляет сообщение в матч. Писать могут только участники.
func (s *messageService) SendMessage(db *gorm.DB, userID, matchID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error) {
	match, err := s.swipeRepo.FindMatchByID(db, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !match.HasParticipant(userID) {
		return nil, apperrors.ErrNotMatchParticipant
	}

	message := &models.Message{
		MatchID:  matchID,
		SenderID: userID,
		Content:  req.Content,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := dto.NewMessageDTO(message)
	return &result, nil
}
