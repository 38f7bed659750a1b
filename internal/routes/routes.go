package routes

import (
	"mentormatch_backend/internal/handlers"
	"mentormatch_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")

	// Публичные маршруты
	appHandlers.AuthHandler.RegisterRoutes(api)

	// Все остальное требует аутентификации
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware())
	{
		appHandlers.ProfileHandler.RegisterRoutes(authorized)
		appHandlers.MatchingHandler.RegisterRoutes(authorized)
		appHandlers.MessageHandler.RegisterRoutes(authorized)
		appHandlers.MediaHandler.RegisterRoutes(authorized)
		appHandlers.VerificationHandler.RegisterRoutes(authorized)
	}
}
