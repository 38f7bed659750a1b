package services

import (
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	MatchingService     MatchingService
	MessageService      MessageService
	MediaService        MediaService
	VerificationService VerificationService
}

// NewServiceContainer собирает сервисы с их репозиториями.
func NewServiceContainer(store storage.Storage) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	tagRepo := repositories.NewTagRepository()
	tokenRepo := repositories.NewRefreshTokenRepository()
	swipeRepo := repositories.NewSwipeRepository()
	messageRepo := repositories.NewMessageRepository()
	mediaRepo := repositories.NewMediaRepository()
	verificationRepo := repositories.NewVerificationRepository()

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, tokenRepo),
		ProfileService:      NewProfileService(userRepo, tagRepo, tokenRepo, verificationRepo, store),
		MatchingService:     NewMatchingService(userRepo, swipeRepo),
		MessageService:      NewMessageService(swipeRepo, messageRepo),
		MediaService:        NewMediaService(userRepo, swipeRepo, mediaRepo, store),
		VerificationService: NewVerificationService(userRepo, verificationRepo, store),
	}
}
