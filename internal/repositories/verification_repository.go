package repositories

import (
	"errors"

	"mentormatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification request not found")

type VerificationRepository interface {
	Create(db *gorm.DB, request *models.VerificationRequest) error
	FindByID(db *gorm.DB, id string) (*models.VerificationRequest, error)
	FindAll(db *gorm.DB) ([]models.VerificationRequest, error)
	Update(db *gorm.DB, request *models.VerificationRequest) error
}

type VerificationRepositoryImpl struct{}

func NewVerificationRepository() VerificationRepository {
	return &VerificationRepositoryImpl{}
}

func (r *VerificationRepositoryImpl) Create(db *gorm.DB, request *models.VerificationRequest) error {
	return db.Create(request).Error
}

func (r *VerificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := db.Preload("User").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll возвращает все заявки, новые первыми. Для стаф-панели.
func (r *VerificationRepositoryImpl) FindAll(db *gorm.DB) ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest
	err := db.Preload("User").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *VerificationRepositoryImpl) Update(db *gorm.DB, request *models.VerificationRequest) error {
	return db.Save(request).Error
}
