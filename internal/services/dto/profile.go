package dto

import (
	"time"

	"mentormatch_backend/internal/models"
)

// UpdateProfileRequest - частичное обновление профиля.
// Указатели отличают "поле не прислано" от "прислано пустое/false".
// Приходит в multipart-части "data" (рядом может быть файл документа).
type UpdateProfileRequest struct {
	Gender      *string `json:"gender,omitempty" validate:"omitempty,is-gender"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Theme       *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`

	ShowPhone *bool `json:"show_phone,omitempty"`
	ShowEmail *bool `json:"show_email,omitempty"`
	ShowAge   *bool `json:"show_age,omitempty"`

	// nil - не трогать, пустой срез - очистить
	SkillsOffered *[]string `json:"skills_offered,omitempty"`
	SkillsNeeded  *[]string `json:"skills_needed,omitempty"`
	Hobbies       *[]string `json:"hobbies,omitempty"`
}

// UserProfileDTO - профиль пользователя в ответах API.
// Приватные поля уже отфильтрованы по флагам видимости.
type UserProfileDTO struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email,omitempty"`
	Role        models.UserRole `json:"role"`
	Gender      string          `json:"gender,omitempty"`
	Bio         string          `json:"bio,omitempty"`
	City        string          `json:"city,omitempty"`
	State       string          `json:"state,omitempty"`
	Country     string          `json:"country,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	DateOfBirth *string         `json:"date_of_birth,omitempty"`
	Theme       string          `json:"theme,omitempty"`
	IsVerified  bool            `json:"is_verified"`
	IsStaff     bool            `json:"is_staff,omitempty"`

	ShowPhone bool `json:"show_phone"`
	ShowEmail bool `json:"show_email"`
	ShowAge   bool `json:"show_age"`

	SkillsOffered []string `json:"skills_offered"`
	SkillsNeeded  []string `json:"skills_needed"`
	Hobbies       []string `json:"hobbies"`

	DeletionScheduledAt *time.Time `json:"deletion_scheduled_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// NewUserProfileDTO собирает DTO профиля. При isSelf=false поля
// phone/email/date_of_birth скрываются, если владелец их не открыл.
func NewUserProfileDTO(user *models.User, isSelf bool) UserProfileDTO {
	p := UserProfileDTO{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Gender:        user.Gender,
		Bio:           user.Bio,
		City:          user.City,
		State:         user.State,
		Country:       user.Country,
		Theme:         user.Theme,
		IsVerified:    user.IsVerified,
		ShowPhone:     user.ShowPhone,
		ShowEmail:     user.ShowEmail,
		ShowAge:       user.ShowAge,
		SkillsOffered: skillNames(user.SkillsOffered),
		SkillsNeeded:  skillNames(user.SkillsNeeded),
		Hobbies:       hobbyNames(user.Hobbies),
		CreatedAt:     user.CreatedAt,
	}

	if isSelf {
		p.IsStaff = user.IsStaff
		p.DeletionScheduledAt = user.DeletionScheduledAt
	}

	if isSelf || user.ShowEmail {
		p.Email = user.Email
	}
	if isSelf || user.ShowPhone {
		p.Phone = user.Phone
	}
	if (isSelf || user.ShowAge) && user.DateOfBirth != nil {
		dob := user.DateOfBirth.Format("2006-01-02")
		p.DateOfBirth = &dob
	}

	return p
}

func skillNames(skills []models.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func hobbyNames(hobbies []models.Hobby) []string {
	names := make([]string, 0, len(hobbies))
	for _, h := range hobbies {
		names = append(names, h.Name)
	}
	return names
}
