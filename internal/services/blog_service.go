package services

import (
	"context"
	"errors"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"triveni_backend/internal/events"
	"triveni_backend/internal/models"
	"triveni_backend/internal/query"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	DefaultPopularLimit = 5
	DefaultRelatedLimit = 3
)

var (
	errSlugTaken     = errors.New("slug already taken")
	nonSlugCharacter = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify: нижний регистр, каждая серия символов вне [a-z0-9] превращается в один дефис,
// дефисы по краям убираются. Повторное применение результат не меняет.
func Slugify(s string) string {
	s = nonSlugCharacter.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

type BlogService interface {
	CreateBlog(ctx context.Context, db *gorm.DB, req *dto.BlogRequest) (*models.Blog, error)
	ListBlogs(ctx context.Context, db *gorm.DB, q dto.BlogListQuery, isAdmin bool) (*dto.ListResult[models.Blog], error)
	SearchBlogs(ctx context.Context, db *gorm.DB, q dto.BlogSearchQuery) (*dto.ListResult[models.Blog], error)
	ListByCategory(ctx context.Context, db *gorm.DB, category string, q dto.PageQuery) (*dto.ListResult[models.Blog], error)
	GetFeatured(ctx context.Context, db *gorm.DB) ([]models.Blog, error)
	GetPopular(ctx context.Context, db *gorm.DB, limit int) ([]models.Blog, error)
	GetRelated(ctx context.Context, db *gorm.DB, id string, limit int) ([]models.Blog, error)
	GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.BlogDetail, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Blog, error)
	UpdateBlog(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateBlogRequest) (*models.Blog, error)
	DeleteBlog(ctx context.Context, db *gorm.DB, id string) error

	IncrementViews(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error)
	LikeBlog(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error)
	ShareBlog(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error)
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.ImageUpload, error)
}

type blogService struct {
	blogRepo    repositories.BlogRepository
	commentRepo repositories.CommentRepository
	images      *fileStore
	validator   *validator.Validator
	publisher   events.Publisher
	now         func() time.Time
}

func NewBlogService(
	blogRepo repositories.BlogRepository,
	commentRepo repositories.CommentRepository,
	images *fileStore,
	v *validator.Validator,
	publisher events.Publisher,
) BlogService {
	return &blogService{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		images:      images,
		validator:   v,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *blogService) CreateBlog(ctx context.Context, db *gorm.DB, req *dto.BlogRequest) (*models.Blog, error) {
	blog := &models.Blog{
		Title:         strings.TrimSpace(req.Title),
		Slug:          strings.ToLower(strings.TrimSpace(req.Slug)),
		Excerpt:       strings.TrimSpace(req.Excerpt),
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Author:        req.Author,
		Category:      models.BlogCategory(req.Category),
		Tags:          trimList(req.Tags),
		ReadingTime:   req.ReadingTime,
		Featured:      req.Featured,
		AllowComments: true,
		Status:        models.BlogStatus(req.Status),
		PublishedAt:   s.now().UTC(),
		SEO:           req.SEO,
	}
	if blog.Slug == "" {
		blog.Slug = Slugify(blog.Title)
	}
	if req.AllowComments != nil {
		blog.AllowComments = *req.AllowComments
	}
	if blog.Status == "" {
		blog.Status = models.BlogStatusPublished
	}
	if req.PublishedAt != nil {
		at, err := parsePublishedAt(*req.PublishedAt)
		if err != nil {
			return nil, err
		}
		blog.PublishedAt = at
	}
	normalizeAuthor(&blog.Author)

	if err := validateModel(s.validator, blog); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.blogRepo.SlugTaken(tx, blog.Slug, "")
		if err != nil {
			return err
		}
		if taken {
			return errSlugTaken
		}
		return s.blogRepo.Create(tx, blog)
	})
	if err != nil {
		return nil, handleBlogError(err)
	}

	if blog.IsPublished() {
		s.publishBlog(ctx, blog)
	}
	return blog, nil
}

// ListBlogs - посетители видят только опубликованные статьи,
// admin=true действует только для администратора.
func (s *blogService) ListBlogs(ctx context.Context, db *gorm.DB, q dto.BlogListQuery, isAdmin bool) (*dto.ListResult[models.Blog], error) {
	built := repositories.BlogSchema.Build(q.ToParams())
	if !(q.Admin && isAdmin) {
		built = built.Where("status", models.BlogStatusPublished)
	}
	if featured := q.FeaturedFilter(); featured != nil {
		built = built.Where("featured", *featured)
	}
	return s.list(db, built)
}

func (s *blogService) SearchBlogs(ctx context.Context, db *gorm.DB, q dto.BlogSearchQuery) (*dto.ListResult[models.Blog], error) {
	if strings.TrimSpace(q.Q) == "" {
		return nil, apperrors.NewBadRequestError("Search query is required")
	}
	built := repositories.BlogSchema.Build(q.ToParams()).Where("status", models.BlogStatusPublished)
	return s.list(db, built)
}

func (s *blogService) ListByCategory(ctx context.Context, db *gorm.DB, category string, q dto.PageQuery) (*dto.ListResult[models.Blog], error) {
	built := repositories.BlogSchema.Build(query.Params{Page: q.Page, Limit: q.Limit}).
		Where("category", category).
		Where("status", models.BlogStatusPublished)
	return s.list(db, built)
}

func (s *blogService) list(db *gorm.DB, q query.Query) (*dto.ListResult[models.Blog], error) {
	blogs, total, err := s.blogRepo.List(db, q, false)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "blog")
	}
	return &dto.ListResult[models.Blog]{Items: blogs, Pagination: query.ForQuery(q, total)}, nil
}

func (s *blogService) GetFeatured(ctx context.Context, db *gorm.DB) ([]models.Blog, error) {
	blogs, err := s.blogRepo.FindFeatured(db, 0)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "blog")
	}
	return blogs, nil
}

func (s *blogService) GetPopular(ctx context.Context, db *gorm.DB, limit int) ([]models.Blog, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	blogs, err := s.blogRepo.FindPopular(db, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "blog")
	}
	return blogs, nil
}

// GetRelated - статьи той же категории хотя бы с одним общим тегом.
// Кандидаты уже отсортированы по просмотрам, здесь только фильтр по тегам.
func (s *blogService) GetRelated(ctx context.Context, db *gorm.DB, id string, limit int) ([]models.Blog, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	blog, err := s.blogRepo.FindByID(db, id)
	if err != nil {
		return nil, handleBlogError(err)
	}

	related := make([]models.Blog, 0, limit)
	if len(blog.Tags) == 0 {
		return related, nil
	}

	candidates, err := s.blogRepo.FindRelatedCandidates(db, blog, 0)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "blog")
	}
	for _, c := range candidates {
		if len(related) == limit {
			break
		}
		if c.SharesTag(blog.Tags) {
			related = append(related, c)
		}
	}
	return related, nil
}

// GetBySlug отдает опубликованную статью, увеличивает просмотры
// и добавляет число одобренных комментариев.
func (s *blogService) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.BlogDetail, error) {
	blog, err := s.blogRepo.FindPublishedBySlug(db, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, handleBlogError(err)
	}

	counters, err := s.blogRepo.IncrementViews(db, blog.ID)
	if err != nil {
		return nil, handleBlogError(err)
	}
	blog.Views = counters.Views

	count, err := s.commentRepo.CountByBlog(db, blog.ID, models.CommentStatusApproved)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "blog")
	}
	return &dto.BlogDetail{Blog: *blog, CommentsCount: count}, nil
}

func (s *blogService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Blog, error) {
	blog, err := s.blogRepo.FindByID(db, id)
	if err != nil {
		return nil, handleBlogError(err)
	}
	return blog, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.blogRepo.FindByID(db, id)
	if err != nil {
		return nil, handleBlogError(err)
	}
	wasPublished := blog.IsPublished()

	setString(&blog.Title, req.Title)
	setString(&blog.Excerpt, req.Excerpt)
	if req.Slug != nil {
		blog.Slug = strings.ToLower(strings.TrimSpace(*req.Slug))
		if blog.Slug == "" {
			blog.Slug = Slugify(blog.Title)
		}
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		blog.FeaturedImage = *req.FeaturedImage
	}
	if req.Author != nil {
		blog.Author = *req.Author
		normalizeAuthor(&blog.Author)
	}
	if req.Category != nil {
		blog.Category = models.BlogCategory(*req.Category)
	}
	if req.Tags != nil {
		blog.Tags = trimList(req.Tags)
	}
	if req.ReadingTime != nil {
		blog.ReadingTime = *req.ReadingTime
	}
	if req.Featured != nil {
		blog.Featured = *req.Featured
	}
	if req.AllowComments != nil {
		blog.AllowComments = *req.AllowComments
	}
	if req.Status != nil {
		blog.Status = models.BlogStatus(*req.Status)
	}
	if req.PublishedAt != nil {
		at, err := parsePublishedAt(*req.PublishedAt)
		if err != nil {
			return nil, err
		}
		blog.PublishedAt = at
	}
	if req.SEO != nil {
		blog.SEO = *req.SEO
	}

	if err := validateModel(s.validator, blog); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.blogRepo.SlugTaken(tx, blog.Slug, blog.ID)
		if err != nil {
			return err
		}
		if taken {
			return errSlugTaken
		}
		return s.blogRepo.Update(tx, blog)
	})
	if err != nil {
		return nil, handleBlogError(err)
	}

	if !wasPublished && blog.IsPublished() {
		s.publishBlog(ctx, blog)
	}
	return blog, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, db *gorm.DB, id string) error {
	if _, err := s.blogRepo.DeleteWithComments(db, id); err != nil {
		return handleBlogError(err)
	}
	return nil
}

func (s *blogService) IncrementViews(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error) {
	counters, err := s.blogRepo.IncrementViews(db, id)
	if err != nil {
		return nil, handleBlogError(err)
	}
	return counters, nil
}

func (s *blogService) LikeBlog(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error) {
	counters, err := s.blogRepo.IncrementLikes(db, id)
	if err != nil {
		return nil, handleBlogError(err)
	}
	return counters, nil
}

func (s *blogService) ShareBlog(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error) {
	counters, err := s.blogRepo.IncrementShares(db, id)
	if err != nil {
		return nil, handleBlogError(err)
	}
	return counters, nil
}

func (s *blogService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.ImageUpload, error) {
	stored, err := s.images.save(ctx, file)
	if err != nil {
		return nil, err
	}
	url, err := s.images.url(ctx, stored.Path)
	if err != nil {
		s.images.remove(ctx, stored.Path)
		return nil, apperrors.ErrStorage(err)
	}
	return &dto.ImageUpload{ImageURL: url, PublicID: stored.Path}, nil
}

func (s *blogService) publishBlog(ctx context.Context, blog *models.Blog) {
	s.publisher.Publish(ctx, events.BlogPublished, map[string]string{
		"blogId":   blog.ID,
		"slug":     blog.Slug,
		"category": string(blog.Category),
	})
}

func normalizeAuthor(a *models.Author) {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = normalizeEmail(a.Email)
}

func parsePublishedAt(v string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fieldError("publishedAt", "Must be an RFC 3339 timestamp")
	}
	return at.UTC(), nil
}

func handleBlogError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrBlogNotFound):
		return apperrors.ErrNotFound(err, "blog", "Blog post not found")
	case errors.Is(err, errSlugTaken), repositories.IsDuplicateKeyError(err):
		return apperrors.ErrConflict(err, "blog", "Blog with this slug already exists")
	}
	return apperrors.ErrDatabase(err, "blog")
}
