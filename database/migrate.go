package database

import (
	"fmt"
	"log"

	"mentormatch_backend/internal/config"
	"mentormatch_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с URL из конфига
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}
	return AutoMigrateDB(db)
}

// AutoMigrateDB мигрирует схему на переданном соединении
// (используется и приложением, и тестовой базой).
func AutoMigrateDB(db *gorm.DB) error {
	// Для default:uuid_generate_v4() в BaseModel
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Skill{},
		&models.Hobby{},
		&models.Swipe{},
		&models.Match{},
		&models.Message{},
		&models.Media{},
		&models.VerificationRequest{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return nil
}
