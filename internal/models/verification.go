package models

import "time"

// VerificationRequest - заявка профессионала на верификацию.
// pending -> approved | rejected, оба состояния терминальные.
// Approve дополнительно выставляет User.IsVerified=true.
type VerificationRequest struct {
	BaseModel
	UserID       string             `gorm:"not null;index"`
	DocumentPath string             `gorm:"not null"`
	Status       VerificationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ReviewedAt   *time.Time
	ReviewerID   *string

	User     *User `gorm:"foreignKey:UserID"`
	Reviewer *User `gorm:"foreignKey:ReviewerID"`
}
