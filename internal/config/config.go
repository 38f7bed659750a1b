package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret        string `yaml:"secret"`
		AccessTTLMin  int    `yaml:"access_ttl_min"`  // срок жизни access token, минуты
		RefreshTTLDay int    `yaml:"refresh_ttl_day"` // срок жизни refresh token, дни
	} `yaml:"jwt"`

	Storage struct {
		Type     string `yaml:"type"`      // local или s3
		BasePath string `yaml:"base_path"` // каталог для файлов (local)
		BaseURL  string `yaml:"base_url"`  // публичный URL-префикс

		// S3-совместимый бакет (AWS S3, Cloudflare R2, MinIO)
		Endpoint  string `yaml:"endpoint"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // максимальный размер файла, байты
		AllowedTypes []string `yaml:"allowed_types"` // разрешенные префиксы MIME (image/, video/)
	} `yaml:"upload"`

	// Первый staff-пользователь (создается при старте, если не существует)
	FirstStaffUsername string `yaml:"first_staff_username"`
	FirstStaffEmail    string `yaml:"first_staff_email"`
	FirstStaffPassword string `yaml:"first_staff_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию.
// Если задан DATABASE_URL - конфигурация собирается из переменных окружения
// (режим тестов/контейнера), иначе читается config/config.yaml.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.FirstStaffUsername = os.Getenv("FIRST_STAFF_USERNAME")
	cfg.FirstStaffEmail = os.Getenv("FIRST_STAFF_EMAIL")
	cfg.FirstStaffPassword = os.Getenv("FIRST_STAFF_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.AccessTTLMin == 0 {
		cfg.JWT.AccessTTLMin = 60
	}
	if cfg.JWT.RefreshTTLDay == 0 {
		cfg.JWT.RefreshTTLDay = 30
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret-change-me"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/v1/files"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{"image/", "video/"}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
