package repositories

import (
	"errors"
	"strings"
	"time"

	"triveni_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindFirstByRole(db *gorm.DB, role models.UserRole) (*models.User, error)
	EmailTaken(db *gorm.DB, email, excludeID string) (bool, error)
	Update(db *gorm.DB, user *models.User) error
	UpdatePassword(db *gorm.DB, id, hash string) error
	TouchLastLogin(db *gorm.DB, id string, at time.Time) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if IsDuplicateKeyError(err) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	if !isUUID(id) {
		return nil, ErrUserNotFound
	}
	return r.first(db.Where("id = ?", id))
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.first(db.Where("email = ?", normalizeEmail(email)))
}

// FindFirstByRole - самый ранний пользователь с ролью.
func (r *UserRepositoryImpl) FindFirstByRole(db *gorm.DB, role models.UserRole) (*models.User, error) {
	return r.first(db.Where("role = ?", role).Order("created_at ASC"))
}

func (r *UserRepositoryImpl) first(tx *gorm.DB) (*models.User, error) {
	var user models.User
	if err := tx.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailTaken(db *gorm.DB, email, excludeID string) (bool, error) {
	var count int64
	tx := db.Model(&models.User{}).Where("email = ?", normalizeEmail(email))
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

// Update не трогает хеш пароля: для него есть UpdatePassword.
func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	res := db.Model(user).
		Select("*").
		Omit("id", "created_at", "password_hash").
		Updates(user)
	if IsDuplicateKeyError(res.Error) {
		return ErrUserAlreadyExists
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, id, hash string) error {
	res := db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) TouchLastLogin(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
