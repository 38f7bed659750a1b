package dto

import (
	"mentormatch_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Username  string          `json:"username" binding:"required,min=3,max=150"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	Password2 string          `json:"password2" binding:"required" validate:"eqfield=Password"`
	Role      models.UserRole `json:"role" binding:"required" validate:"is-user-role"`
}

// LoginRequest - запрос входа (логин по username)
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse - ответ с токенами
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         UserProfileDTO `json:"user"`
}
