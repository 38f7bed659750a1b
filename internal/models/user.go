package models

import "time"

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'student'"`
	IsStaff      bool     `gorm:"default:false"` // права ревьюера заявок на верификацию

	// Профиль
	Gender      string `gorm:"type:varchar(20)"` // male, female, other
	Bio         string `gorm:"type:text"`
	City        string
	State       string
	Country     string
	Phone       string `gorm:"type:varchar(20)"`
	DateOfBirth *time.Time
	Theme       string `gorm:"type:varchar(20);default:'light'"`

	// Флаги видимости полей профиля для других пользователей
	ShowPhone bool `gorm:"default:false"`
	ShowEmail bool `gorm:"default:false"`
	ShowAge   bool `gorm:"default:false"`

	// Верификация (имеет смысл только для professional)
	IsVerified bool `gorm:"default:false"`

	// Отложенное удаление аккаунта
	DeletionScheduledAt *time.Time

	// Relations
	SkillsOffered []Skill        `gorm:"many2many:user_skills_offered"`
	SkillsNeeded  []Skill        `gorm:"many2many:user_skills_needed"`
	Hobbies       []Hobby        `gorm:"many2many:user_hobbies"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
