package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"triveni_backend/internal/auth"
	"triveni_backend/internal/config"
	"triveni_backend/internal/email"
	"triveni_backend/internal/events"
	"triveni_backend/internal/handlers"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/middleware"
	"triveni_backend/internal/models"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/routes"
	"triveni_backend/internal/services"
	"triveni_backend/internal/storage"
	"triveni_backend/internal/validator"
	"triveni_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// Run поднимает БД, зависимости, фоновые задачи и HTTP-сервер.
// Возвращается после SIGINT/SIGTERM и корректной остановки.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := OpenDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	deps, cleanup, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ginRouter, sc := SetupRouter(cfg, gormDB, deps)

	if err := seedFirstAdmin(ctx, gormDB, cfg, sc.AuthService); err != nil {
		// без администратора админка недоступна, сервер не запускаем
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	counterWorker := workers.NewCounterWorker(gormDB, cfg.Workers.ReconcileSpec)
	if err := counterWorker.Start(ctx); err != nil {
		return err
	}
	defer counterWorker.Stop()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// OpenDB подключается к PostgreSQL, настраивает пул и при необходимости мигрирует схему.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	logger.Info("Connecting to database...")

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := gormDB.AutoMigrate(models.AllModels()...); err != nil {
			return nil, fmt.Errorf("auto-migrate failed: %w", err)
		}
		logger.Info("Database schema migrated")
	}
	return gormDB, nil
}

// BuildDependencies создает хранилища, токены, публикацию событий и почту.
// cleanup закрывает соединение с Redis.
func BuildDependencies(ctx context.Context, cfg *config.Config) (services.Dependencies, func(), error) {
	cleanup := func() {}

	resumes, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return services.Dependencies{}, cleanup, fmt.Errorf("failed to initialize resume storage: %w", err)
	}
	images, err := storage.NewStorage(cfg.ImageStorage)
	if err != nil {
		return services.Dependencies{}, cleanup, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	logger.Info("Storage initialized", "resumes", cfg.Storage.Type, "images", cfg.ImageStorage.Type)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Redis.URL != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			// события не критичны для API, работаем без них
			logger.Warn("Redis unavailable, domain events disabled", "error", err)
		} else {
			publisher = events.NewRedisPublisher(rdb)
			cleanup = closeRedis(rdb)
			logger.Info("Redis connected, domain events enabled")
		}
	}

	var notifier *email.Notifier
	if cfg.Email.NotifyTo != "" {
		notifier = email.NewNotifier(email.NewProvider(cfg), cfg.Email.NotifyTo)
	}

	return services.Dependencies{
		Config:    cfg,
		Tokens:    auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute),
		Resumes:   resumes,
		Images:    images,
		Publisher: publisher,
		Notifier:  notifier,
		Validator: validator.New(),
	}, cleanup, nil
}

func closeRedis(rdb *redis.Client) func() {
	return func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
}

// SetupRouter собирает сервисы, хэндлеры и middleware. Возвращает контейнер сервисов
// для задач старта (сидирование администратора).
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps services.Dependencies) (*gin.Engine, *services.ServiceContainer) {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Config == nil {
		deps.Config = cfg
	}

	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(deps)

	// 2. Инициализируем хэндлеры
	appHandlers := handlers.NewAppHandlers(serviceContainer, deps.Validator)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	guard := middleware.NewAccessGuard(deps.Tokens, repositories.NewUserRepository())
	routes.RegisterRoutes(ginRouter, appHandlers, guard, publicUploads(cfg))

	return ginRouter, serviceContainer
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.ClientURL))
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = cfg.Upload.ResumeMaxSize
	return router
}

// publicUploads - раздача картинок блога, если они лежат на локальном диске.
func publicUploads(cfg *config.Config) map[string]string {
	if cfg.ImageStorage.Type != "" && cfg.ImageStorage.Type != "local" {
		return nil
	}
	prefix := config.ImageFileRule(cfg).Prefix
	return map[string]string{
		"/uploads/" + prefix: filepath.Join(cfg.ImageStorage.BasePath, prefix),
	}
}

func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	admin, err := authService.SeedFirstAdmin(ctx, db.WithContext(ctx), cfg.FirstAdminEmail, cfg.FirstAdminPassword)
	if err != nil {
		return err
	}
	logger.Info("First admin user is in place", "email", admin.Email)
	return nil
}
