package app

import (
	"errors"
	"fmt"

	"mentormatch_backend/database"
	"mentormatch_backend/internal/config"
	"mentormatch_backend/internal/handlers"
	"mentormatch_backend/internal/logger"
	"mentormatch_backend/internal/middleware"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/routes"
	"mentormatch_backend/internal/services"
	"mentormatch_backend/internal/storage"
	"mentormatch_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrateDB(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstStaff(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first staff user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Endpoint:  cfg.Storage.Endpoint,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := services.NewServiceContainer(storageInstance)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstStaff создает первого стаф-пользователя из конфига,
// чтобы было кому рассматривать заявки на верификацию.
func seedFirstStaff(db *gorm.DB, cfg *config.Config) error {
	username := cfg.FirstStaffUsername
	email := cfg.FirstStaffEmail
	password := cfg.FirstStaffPassword

	if username == "" || email == "" || password == "" {
		logger.Warn("FIRST_STAFF_* is not configured. Skipping staff seeding.")
		return nil
	}

	var existing models.User
	result := db.Where("username = ?", username).First(&existing)
	if result.Error == nil {
		logger.Info("Staff user already exists. Skipping creation.", "username", username)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for staff user: %w", result.Error)
	}

	logger.Warn("No staff user found. Creating first staff...", "username", username)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash staff password: %w", err)
	}

	staff := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleProfessional,
		IsStaff:      true,
		IsVerified:   true,
	}
	if err := db.Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	logger.Info("Successfully created first staff user", "username", username)
	return nil
}
