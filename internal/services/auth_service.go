package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"triveni_backend/internal/auth"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/models"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	DefaultAdminName     = "Admin"
	DefaultAdminEmail    = "admin@triveni.com"
	DefaultAdminPassword = "Admin@123"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error

	// Служебные операции для CLI и старта приложения
	SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error)
	ResetAdminPassword(ctx context.Context, db *gorm.DB, password string) (*models.User, bool, error)
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokens    *auth.TokenManager
	validator *validator.Validator
	now       func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	v *validator.Validator,
) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: v,
		now:       time.Now,
	}
}

// Register - регистрация. Роль всегда user, админов создает только CLI или сидер.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateModel(s.validator, req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, handleAuthError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)
	return s.issue(user)
}

// Login - неверный email и неверный пароль дают одинаковый ответ.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateModel(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, handleAuthError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}

	at := s.now().UTC()
	if err := s.userRepo.TouchLastLogin(db, user.ID, at); err != nil {
		logger.CtxWithError(ctx, "Failed to update last login", err, "user_id", user.ID)
	} else {
		user.LastLoginAt = &at
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) Me(ctx context.Context, db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleAuthError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateModel(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleAuthError(err)
	}

	if req.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(db, req.Email, user.ID)
		if err != nil {
			return nil, handleAuthError(err)
		}
		if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, handleAuthError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	if err := validateModel(s.validator, req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleAuthError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongCurrentPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return handleAuthError(err)
	}
	logger.CtxInfo(ctx, "Password changed", "user_id", user.ID)
	return nil
}

// SeedFirstAdmin создает администратора из конфигурации, если пользователя с таким email еще нет.
// Существующий пользователь не меняется.
func (s *AuthServiceImpl) SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, fieldError("password", err.Error())
	}

	existing, err := s.userRepo.FindByEmail(db, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, handleAuthError(err)
	}

	admin, err := s.createAdmin(db, DefaultAdminName, email, password)
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "First admin created", "user_id", admin.ID, "email", admin.Email)
	return admin, nil
}

// ResetAdminPassword сбрасывает пароль первого администратора.
// Если администраторов нет, создается новый с адресом по умолчанию; второй результат - был ли он создан.
func (s *AuthServiceImpl) ResetAdminPassword(ctx context.Context, db *gorm.DB, password string) (*models.User, bool, error) {
	if password == "" {
		password = DefaultAdminPassword
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, false, fieldError("password", err.Error())
	}

	admin, err := s.userRepo.FindFirstByRole(db, models.UserRoleAdmin)
	if errors.Is(err, repositories.ErrUserNotFound) {
		admin, err = s.createAdmin(db, DefaultAdminName, DefaultAdminEmail, password)
		if err != nil {
			return nil, false, err
		}
		return admin, true, nil
	}
	if err != nil {
		return nil, false, handleAuthError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, admin.ID, hash); err != nil {
		return nil, false, handleAuthError(err)
	}
	return admin, false, nil
}

func (s *AuthServiceImpl) createAdmin(db *gorm.DB, name, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	admin := &models.User{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		return nil, handleAuthError(err)
	}
	return admin, nil
}

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func handleAuthError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrNotFound(err, "auth", "User not found")
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.ErrDatabase(err, "auth")
}
