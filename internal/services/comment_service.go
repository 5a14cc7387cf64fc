package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"triveni_backend/internal/models"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const DefaultCommentRating = 5

var errCommentsDisabled = errors.New("comments are disabled")

type CommentService interface {
	AddComment(ctx context.Context, db *gorm.DB, blogID string, req *dto.CommentRequest) (*models.Comment, error)
	ListApproved(ctx context.Context, db *gorm.DB, blogID string) ([]models.Comment, error)
	ListAll(ctx context.Context, db *gorm.DB, blogID string) ([]models.Comment, error)
	UpdateComment(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, db *gorm.DB, id string) error
	AddReply(ctx context.Context, db *gorm.DB, id string, req *dto.ReplyRequest) (*models.Comment, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	blogRepo    repositories.BlogRepository
	validator   *validator.Validator
	now         func() time.Time
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	blogRepo repositories.BlogRepository,
	v *validator.Validator,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		validator:   v,
		now:         time.Now,
	}
}

// AddComment - публичный комментарий. Вставка и счетчик статьи меняются вместе.
func (s *commentService) AddComment(ctx context.Context, db *gorm.DB, blogID string, req *dto.CommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		BlogID:  blogID,
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Comment: strings.TrimSpace(req.Comment),
		Rating:  DefaultCommentRating,
		Status:  models.CommentStatusApproved,
		Replies: []models.Reply{},
	}
	if req.Rating != nil {
		comment.Rating = *req.Rating
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		blog, err := s.blogRepo.FindByID(tx, blogID)
		if err != nil {
			return err
		}
		if !blog.AllowComments {
			return errCommentsDisabled
		}
		if err := validateModel(s.validator, comment); err != nil {
			return err
		}
		if err := s.commentRepo.Create(tx, comment); err != nil {
			return err
		}
		return s.blogRepo.AdjustComments(tx, blog.ID, 1)
	})
	if err != nil {
		return nil, handleCommentError(err)
	}
	return comment, nil
}

func (s *commentService) ListApproved(ctx context.Context, db *gorm.DB, blogID string) ([]models.Comment, error) {
	return s.list(db, blogID, models.CommentStatusApproved)
}

func (s *commentService) ListAll(ctx context.Context, db *gorm.DB, blogID string) ([]models.Comment, error) {
	return s.list(db, blogID, "")
}

func (s *commentService) list(db *gorm.DB, blogID string, status models.CommentStatus) ([]models.Comment, error) {
	if _, err := s.blogRepo.FindByID(db, blogID); err != nil {
		return nil, handleCommentError(err)
	}
	comments, err := s.commentRepo.ListByBlog(db, blogID, status)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "comment")
	}
	return comments, nil
}

func (s *commentService) UpdateComment(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(db, id)
	if err != nil {
		return nil, handleCommentError(err)
	}

	setString(&comment.Name, req.Name)
	setString(&comment.Comment, req.Comment)
	if req.Email != nil {
		comment.Email = normalizeEmail(*req.Email)
	}
	if req.Rating != nil {
		comment.Rating = *req.Rating
	}
	if req.Status != nil {
		comment.Status = models.CommentStatus(*req.Status)
	}

	if err := validateModel(s.validator, comment); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(db, comment); err != nil {
		return nil, handleCommentError(err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, db *gorm.DB, id string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		comment, err := s.commentRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := s.commentRepo.Delete(tx, comment.ID); err != nil {
			return err
		}
		return s.blogRepo.AdjustComments(tx, comment.BlogID, -1)
	})
	if err != nil {
		return handleCommentError(err)
	}
	return nil
}

// AddReply дописывает ответ в конец списка, существующие ответы не меняются.
func (s *commentService) AddReply(ctx context.Context, db *gorm.DB, id string, req *dto.ReplyRequest) (*models.Comment, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validateModel(s.validator, req); err != nil {
		return nil, err
	}

	var comment *models.Comment
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		comment, err = s.commentRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		comment.Replies = append(comment.Replies, models.Reply{
			Name:      req.Name,
			Email:     req.Email,
			Comment:   req.Comment,
			RepliedAt: s.now().UTC(),
		})
		return s.commentRepo.Update(tx, comment)
	})
	if err != nil {
		return nil, handleCommentError(err)
	}
	return comment, nil
}

func handleCommentError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrCommentNotFound):
		return apperrors.ErrNotFound(err, "comment", "Comment not found")
	case errors.Is(err, repositories.ErrBlogNotFound):
		return apperrors.ErrNotFound(err, "comment", "Blog post not found")
	case errors.Is(err, errCommentsDisabled):
		return apperrors.ErrInvalidOperation("comment", "Comments are disabled for this blog post")
	}
	return apperrors.ErrDatabase(err, "comment")
}
