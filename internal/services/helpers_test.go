package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"triveni_backend/internal/auth"
	"triveni_backend/internal/config"
	"triveni_backend/internal/events"
	"triveni_backend/internal/storage"
	"triveni_backend/internal/testutil"
	"triveni_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	store    *storage.LocalStorage
	events   *events.Recorder
	services *ServiceContainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.ResumeMaxSize = 5 * 1024 * 1024
	cfg.Upload.ImageMaxSize = 5 * 1024 * 1024

	store, err := storage.NewLocalStorage(config.StorageConfig{BasePath: t.TempDir(), BaseURL: "/uploads"})
	require.NoError(t, err)

	recorder := &events.Recorder{}
	return &fixture{
		ctx:    context.Background(),
		db:     testutil.NewDB(t),
		store:  store,
		events: recorder,
		services: NewServiceContainer(Dependencies{
			Config:    cfg,
			Tokens:    auth.NewTokenManager("test-secret", time.Hour),
			Resumes:   store,
			Images:    store,
			Publisher: recorder,
		}),
	}
}

// requireAppError проверяет HTTP-код и, если задано, сообщение ошибки.
func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "ожидалась AppError, получено %T: %v", err, err)
	assert.Equal(t, status, appErr.HTTPCode)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	requireAppError(t, err, http.StatusBadRequest, "Validation failed")
	appErr, _ := apperrors.AsAppError(err)
	fields, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	return fields
}
