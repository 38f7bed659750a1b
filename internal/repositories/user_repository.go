package repositories

import (
	"errors"
	"strings"
	"time"

	"mentormatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// CandidateFilter - критерии отбора кандидатов для /potential
type CandidateFilter struct {
	Role         models.UserRole // роль кандидатов (противоположная роли запрашивающего)
	VerifiedOnly bool            // студентам показываем только верифицированных
	Country      string          // локальный фильтр (пусто = без фильтра)
	State        string
	OfferedSkill string // точное имя навыка, без учета регистра
	NeededSkill  string
	ExcludeID    string
}

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, userID string, fields map[string]interface{}) error
	SetVerified(db *gorm.DB, userID string, verified bool) error
	ScheduleDeletion(db *gorm.DB, userID string, at *time.Time) error

	ReplaceSkillsOffered(db *gorm.DB, user *models.User, skills []models.Skill) error
	ReplaceSkillsNeeded(db *gorm.DB, user *models.User, skills []models.Skill) error
	ReplaceHobbies(db *gorm.DB, user *models.User, hobbies []models.Hobby) error

	FindCandidates(db *gorm.DB, filter CandidateFilter) ([]models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("SkillsOffered").Preload("SkillsNeeded").Preload("Hobbies").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Preload("SkillsOffered").Preload("SkillsNeeded").Preload("Hobbies").
		First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("username = ? OR email = ?", user.Username, user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetVerified(db *gorm.DB, userID string, verified bool) error {
	return r.UpdateFields(db, userID, map[string]interface{}{"is_verified": verified})
}

func (r *UserRepositoryImpl) ScheduleDeletion(db *gorm.DB, userID string, at *time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("deletion_scheduled_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ReplaceSkillsOffered(db *gorm.DB, user *models.User, skills []models.Skill) error {
	return db.Model(user).Association("SkillsOffered").Replace(skills)
}

func (r *UserRepositoryImpl) ReplaceSkillsNeeded(db *gorm.DB, user *models.User, skills []models.Skill) error {
	return db.Model(user).Association("SkillsNeeded").Replace(skills)
}

func (r *UserRepositoryImpl) ReplaceHobbies(db *gorm.DB, user *models.User, hobbies []models.Hobby) error {
	return db.Model(user).Association("Hobbies").Replace(hobbies)
}

// FindCandidates выбирает пользователей по роли, верификации, локации
// и (опционально) по точному имени предлагаемого/искомого навыка.
func (r *UserRepositoryImpl) FindCandidates(db *gorm.DB, filter CandidateFilter) ([]models.User, error) {
	query := db.Model(&models.User{}).
		Preload("SkillsOffered").Preload("SkillsNeeded").Preload("Hobbies").
		Where("role = ?", filter.Role)

	if filter.ExcludeID != "" {
		query = query.Where("id <> ?", filter.ExcludeID)
	}
	if filter.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
		if filter.State != "" {
			query = query.Where("state = ?", filter.State)
		}
	}
	if filter.OfferedSkill != "" {
		query = query.Where(
			"id IN (SELECT user_id FROM user_skills_offered jo JOIN skills s ON s.id = jo.skill_id WHERE LOWER(s.name) = ?)",
			strings.ToLower(filter.OfferedSkill),
		)
	}
	if filter.NeededSkill != "" {
		query = query.Where(
			"id IN (SELECT user_id FROM user_skills_needed jn JOIN skills s ON s.id = jn.skill_id WHERE LOWER(s.name) = ?)",
			strings.ToLower(filter.NeededSkill),
		)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
