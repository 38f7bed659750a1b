package repositories

import (
	"errors"

	"mentormatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMediaNotFound = errors.New("media not found")

type MediaRepository interface {
	Create(db *gorm.DB, media *models.Media) error
	FindByID(db *gorm.DB, id string) (*models.Media, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Media, error)
	Delete(db *gorm.DB, id string) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

func (r *MediaRepositoryImpl) Create(db *gorm.DB, media *models.Media) error {
	return db.Create(media).Error
}

func (r *MediaRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Media, error) {
	var media models.Media
	err := db.First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Media, error) {
	var items []models.Media
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MediaRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Media{}, "id = ?", id).Error
}
