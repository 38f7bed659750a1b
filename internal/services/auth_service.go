package services

import (
	"errors"
	"time"

	"mentormatch_backend/internal/auth"
	"mentormatch_backend/internal/config"
	"mentormatch_backend/internal/logger"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, req *dto.LogoutRequest) error
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Register создает пользователя и сразу выдает пару токенов.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Role != models.UserRoleStudent && req.Role != models.UserRoleProfessional {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			if _, uerr := s.userRepo.FindByUsername(db, req.Username); uerr == nil {
				return nil, apperrors.ErrUsernameTaken
			}
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(db, user)
}

// Login аутентифицирует по username + password.
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Не раскрываем, что именно неверно
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Попутная уборка: протухшие refresh-токены больше никому не нужны
	if err := s.tokenRepo.DeleteExpired(db); err != nil {
		logger.Warn("failed to delete expired refresh tokens", "error", err)
	}

	return s.issueTokens(db, user)
}

// Refresh проверяет refresh-токен и ротирует его:
// старый удаляется, выдается новая пара.
func (s *authService) Refresh(db *gorm.DB, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	stored, err := s.tokenRepo.FindByToken(db, req.RefreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.DeleteByToken(db, stored.Token)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.tokenRepo.DeleteByToken(db, stored.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(db, user)
}

// Logout инвалидирует refresh-токен. Идемпотентен.
func (s *authService) Logout(db *gorm.DB, req *dto.LogoutRequest) error {
	if err := s.tokenRepo.DeleteByToken(db, req.RefreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role), user.IsStaff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().AddDate(0, 0, cfg.JWT.RefreshTTLDay),
	}
	if err := s.tokenRepo.Create(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         dto.NewUserProfileDTO(user, true),
	}, nil
}
