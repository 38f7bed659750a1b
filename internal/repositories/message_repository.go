package repositories

import (
	"time"

	"mentormatch_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByMatch(db *gorm.DB, matchID string, since *time.Time) ([]models.Message, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

// FindByMatch возвращает историю матча по возрастанию времени.
// since - строгая граница для инкрементального опроса клиентом.
func (r *MessageRepositoryImpl) FindByMatch(db *gorm.DB, matchID string, since *time.Time) ([]models.Message, error) {
	query := db.Where("match_id = ?", matchID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var messages []models.Message
	err := query.Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
