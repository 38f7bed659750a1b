package repositories

import (
	"errors"

	"mentormatch_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMatchNotFound = errors.New("match not found")

type SwipeRepository interface {
	Upsert(db *gorm.DB, swipe *models.Swipe) error
	HasLike(db *gorm.DB, fromUserID, toUserID string) (bool, error)

	GetOrCreateMatch(db *gorm.DB, user1ID, user2ID string) (*models.Match, bool, error)
	FindMatchByID(db *gorm.DB, matchID string) (*models.Match, error)
	FindMatchesForUser(db *gorm.DB, userID string) ([]models.Match, error)
	MatchExists(db *gorm.DB, user1ID, user2ID string) (bool, error)
}

type SwipeRepositoryImpl struct{}

func NewSwipeRepository() SwipeRepository {
	return &SwipeRepositoryImpl{}
}

// Upsert записывает свайп; повторный свайп той же пары (from, to)
// перезаписывает liked вместо создания дубликата.
func (r *SwipeRepositoryImpl) Upsert(db *gorm.DB, swipe *models.Swipe) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
	}).Create(swipe).Error
}

func (r *SwipeRepositoryImpl) HasLike(db *gorm.DB, fromUserID, toUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.Swipe{}).
		Where("from_user_id = ? AND to_user_id = ? AND liked = ?", fromUserID, toUserID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetOrCreateMatch создает матч для канонической пары (user1 < user2).
// ON CONFLICT DO NOTHING + повторное чтение делают операцию безопасной
// при одновременных взаимных свайпах. Второй результат - created.
func (r *SwipeRepositoryImpl) GetOrCreateMatch(db *gorm.DB, user1ID, user2ID string) (*models.Match, bool, error) {
	u1, u2 := models.CanonicalPair(user1ID, user2ID)

	match := models.Match{User1ID: u1, User2ID: u2}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoNothing: true,
	}).Create(&match)
	if result.Error != nil {
		return nil, false, result.Error
	}
	created := result.RowsAffected > 0

	// При конфликте Create не заполняет поля существующей записи
	var existing models.Match
	err := db.First(&existing, "user1_id = ? AND user2_id = ?", u1, u2).Error
	if err != nil {
		return nil, false, err
	}
	return &existing, created, nil
}

func (r *SwipeRepositoryImpl) FindMatchByID(db *gorm.DB, matchID string) (*models.Match, error) {
	var match models.Match
	err := db.First(&match, "id = ?", matchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *SwipeRepositoryImpl) FindMatchesForUser(db *gorm.DB, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := db.
		Preload("User1.SkillsOffered").Preload("User1.SkillsNeeded").Preload("User1.Hobbies").
		Preload("User2.SkillsOffered").Preload("User2.SkillsNeeded").Preload("User2.Hobbies").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *SwipeRepositoryImpl) MatchExists(db *gorm.DB, user1ID, user2ID string) (bool, error) {
	u1, u2 := models.CanonicalPair(user1ID, user2ID)

	var count int64
	err := db.Model(&models.Match{}).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
