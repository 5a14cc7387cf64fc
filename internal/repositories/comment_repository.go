package repositories

import (
	"errors"

	"triveni_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	// FindByIDForUpdate блокирует строку до конца транзакции.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Comment, error)
	// ListByBlog - комментарии статьи, новые первыми. Пустой status - все статусы.
	ListByBlog(db *gorm.DB, blogID string, status models.CommentStatus) ([]models.Comment, error)
	CountByBlog(db *gorm.DB, blogID string, status models.CommentStatus) (int64, error)
	Update(db *gorm.DB, comment *models.Comment) error
	Delete(db *gorm.DB, id string) error
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	if !isUUID(id) {
		return nil, ErrCommentNotFound
	}
	var comment models.Comment
	if err := db.Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Comment, error) {
	return r.FindByID(db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *CommentRepositoryImpl) ListByBlog(db *gorm.DB, blogID string, status models.CommentStatus) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	tx := db.Where("blog_id = ?", blogID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err := tx.Order("created_at DESC, id DESC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) CountByBlog(db *gorm.DB, blogID string, status models.CommentStatus) (int64, error) {
	var count int64
	tx := db.Model(&models.Comment{}).Where("blog_id = ?", blogID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err := tx.Count(&count).Error
	return count, err
}

// Update сохраняет комментарий целиком, включая список ответов. blog_id не меняется.
func (r *CommentRepositoryImpl) Update(db *gorm.DB, comment *models.Comment) error {
	res := db.Model(comment).
		Select("*").
		Omit("id", "created_at", "blog_id").
		Updates(comment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !isUUID(id) {
		return ErrCommentNotFound
	}
	res := db.Where("id = ?", id).Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
