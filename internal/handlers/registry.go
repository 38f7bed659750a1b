package handlers

import (
	"mentormatch_backend/internal/services"
	"mentormatch_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	MatchingHandler     *MatchingHandler
	MessageHandler      *MessageHandler
	MediaHandler        *MediaHandler
	VerificationHandler *VerificationHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		ProfileHandler:      NewProfileHandler(base, sc.ProfileService),
		MatchingHandler:     NewMatchingHandler(base, sc.MatchingService),
		MessageHandler:      NewMessageHandler(base, sc.MessageService),
		MediaHandler:        NewMediaHandler(base, sc.MediaService),
		VerificationHandler: NewVerificationHandler(base, sc.VerificationService),
	}
}
