package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// StorageConfig - настройки одного файлового хранилища.
type StorageConfig struct {
	Type      string `yaml:"type"`      // local, s3, cloudflare_r2
	BasePath  string `yaml:"base_path"` // For local storage
	BaseURL   string `yaml:"base_url"`  // Public URL base
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"` // For R2 or custom S3
}

type Config struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Env       string `yaml:"env"`
		ClientURL string `yaml:"client_url"` // разрешенный CORS origin
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		NotifyTo     string `yaml:"notify_to"` // ящик, куда приходят уведомления о заявках
	} `yaml:"email"`

	// Storage - резюме и прочие документы, ImageStorage - картинки блога.
	Storage      StorageConfig `yaml:"storage"`
	ImageStorage StorageConfig `yaml:"image_storage"`

	Upload struct {
		ResumeMaxSize int64 `yaml:"resume_max_size"`
		ImageMaxSize  int64 `yaml:"image_max_size"`
	} `yaml:"upload"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Workers struct {
		ReconcileSpec string `yaml:"reconcile_spec"`
	} `yaml:"workers"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig читает .env (если есть), затем либо config.yaml, либо переменные окружения.
// Переменные окружения используются, когда задан DATABASE_URL.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		if err := loadFile(configPath, &cfg); err != nil {
			return nil, err
		}
	} else {
		loadEnv(&cfg)
	}

	applyDefaults(&cfg)
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	AppConfig = &cfg
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) {
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.AutoMigrate = envBool("DATABASE_AUTO_MIGRATE", true)
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Port = envInt("SERVER_PORT", 0)
	cfg.Server.ClientURL = os.Getenv("CLIENT_URL")
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = envInt("JWT_TTL_MINUTES", 0)

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = envInt("SMTP_PORT", 587)
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")
	cfg.Email.NotifyTo = os.Getenv("NOTIFY_EMAIL")

	cfg.Storage.Type = os.Getenv("STORAGE_TYPE")
	cfg.Storage.BasePath = os.Getenv("STORAGE_PATH")

	cfg.ImageStorage.Type = os.Getenv("IMAGE_STORAGE_TYPE")
	cfg.ImageStorage.Bucket = os.Getenv("IMAGE_STORAGE_BUCKET")
	cfg.ImageStorage.Endpoint = os.Getenv("IMAGE_STORAGE_ENDPOINT")
	cfg.ImageStorage.Region = os.Getenv("IMAGE_STORAGE_REGION")
	cfg.ImageStorage.AccessKey = os.Getenv("IMAGE_STORAGE_ACCESS_KEY")
	cfg.ImageStorage.SecretKey = os.Getenv("IMAGE_STORAGE_SECRET_KEY")
	cfg.ImageStorage.BaseURL = os.Getenv("IMAGE_STORAGE_BASE_URL")

	cfg.Redis.URL = os.Getenv("REDIS_URL")
	cfg.Workers.ReconcileSpec = os.Getenv("RECONCILE_SPEC")

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ClientURL == "" {
		cfg.Server.ClientURL = "http://localhost:3000"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 7 * 24 * 60
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.ImageStorage.Type == "" {
		cfg.ImageStorage = cfg.Storage
		cfg.ImageStorage.BaseURL = "/uploads"
	}
	if cfg.Upload.ResumeMaxSize == 0 {
		cfg.Upload.ResumeMaxSize = 5 * 1024 * 1024
	}
	if cfg.Upload.ImageMaxSize == 0 {
		cfg.Upload.ImageMaxSize = 5 * 1024 * 1024
	}
	if cfg.Workers.ReconcileSpec == "" {
		cfg.Workers.ReconcileSpec = "@every 1h"
	}
}

// IsProduction - в production скрываем внутренние ошибки из ответов.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		return cfg
	}
	return AppConfig
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
