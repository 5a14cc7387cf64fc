package repositories

import (
	"errors"
	"time"

	"triveni_backend/internal/models"
	"triveni_backend/internal/query"

	"gorm.io/gorm"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
)

// BlogSchema - теги хранятся JSON-массивом, поиск идет по отдельным тегам.
var BlogSchema = query.Schema{
	SearchColumns: []string{"title", "excerpt", "content"},
	ArrayColumns:  []string{"tags"},
	Filters: map[string]string{
		"category": "category",
		"status":   "status",
	},
	Sorts: map[string]string{
		"publishedAt": "published_at",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
		"title":       "title",
		"views":       "views",
		"likes":       "likes",
	},
	DefaultSort: "publishedAt",
}

// BlogCounters - счетчики статьи после атомарного изменения.
type BlogCounters struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// EngagementTotals - суммы по всем статьям.
type EngagementTotals struct {
	Views    int64 `json:"totalViews"`
	Comments int64 `json:"totalComments"`
	Likes    int64 `json:"totalLikes"`
}

type BlogRepository interface {
	Create(db *gorm.DB, blog *models.Blog) error
	FindByID(db *gorm.DB, id string) (*models.Blog, error)
	FindPublishedBySlug(db *gorm.DB, slug string) (*models.Blog, error)
	SlugTaken(db *gorm.DB, slug, excludeID string) (bool, error)
	List(db *gorm.DB, q query.Query, withContent bool) ([]models.Blog, int64, error)
	Update(db *gorm.DB, blog *models.Blog) error
	DeleteWithComments(db *gorm.DB, id string) (int64, error)

	IncrementViews(db *gorm.DB, id string) (*BlogCounters, error)
	IncrementLikes(db *gorm.DB, id string) (*BlogCounters, error)
	IncrementShares(db *gorm.DB, id string) (*BlogCounters, error)
	AdjustComments(db *gorm.DB, id string, delta int) error
	ReconcileCommentCounts(db *gorm.DB) (int64, error)

	FindFeatured(db *gorm.DB, limit int) ([]models.Blog, error)
	FindPopular(db *gorm.DB, limit int) ([]models.Blog, error)
	FindRelatedCandidates(db *gorm.DB, blog *models.Blog, limit int) ([]models.Blog, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Blog, error)

	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB) ([]GroupCount, error)
	CountFeatured(db *gorm.DB) (int64, error)
	CountByCategory(db *gorm.DB) ([]GroupCount, error)
	CountCreatedSince(db *gorm.DB, since time.Time) (int64, error)
	SumEngagement(db *gorm.DB) (*EngagementTotals, error)
}

type BlogRepositoryImpl struct{}

func NewBlogRepository() BlogRepository {
	return &BlogRepositoryImpl{}
}

func (r *BlogRepositoryImpl) Create(db *gorm.DB, blog *models.Blog) error {
	return db.Create(blog).Error
}

func (r *BlogRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Blog, error) {
	if !isUUID(id) {
		return nil, ErrBlogNotFound
	}
	return r.first(db.Where("id = ?", id))
}

func (r *BlogRepositoryImpl) FindPublishedBySlug(db *gorm.DB, slug string) (*models.Blog, error) {
	return r.first(db.Where("slug = ? AND status = ?", slug, models.BlogStatusPublished))
}

func (r *BlogRepositoryImpl) first(tx *gorm.DB) (*models.Blog, error) {
	var blog models.Blog
	if err := tx.First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepositoryImpl) SlugTaken(db *gorm.DB, slug, excludeID string) (bool, error) {
	var count int64
	tx := db.Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

// List - в списках текст статьи не нужен, поэтому content по умолчанию не выбирается.
func (r *BlogRepositoryImpl) List(db *gorm.DB, q query.Query, withContent bool) ([]models.Blog, int64, error) {
	blogs := make([]models.Blog, 0)
	var total int64

	if err := q.Filter(db.Model(&models.Blog{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := q.Paginate(q.Filter(db.Model(&models.Blog{})))
	if !withContent {
		tx = tx.Omit("content")
	}
	if err := tx.Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// Update сохраняет редактируемые поля. Счетчики меняются только атомарно.
func (r *BlogRepositoryImpl) Update(db *gorm.DB, blog *models.Blog) error {
	res := db.Model(blog).
		Select("*").
		Omit("id", "created_at", "views", "likes", "shares", "comments").
		Updates(blog)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// DeleteWithComments удаляет статью вместе с комментариями в одной транзакции.
// Возвращает количество удаленных комментариев.
func (r *BlogRepositoryImpl) DeleteWithComments(db *gorm.DB, id string) (int64, error) {
	if !isUUID(id) {
		return 0, ErrBlogNotFound
	}

	var removed int64
	err := db.Transaction(func(tx *gorm.DB) error {
		comments := tx.Where("blog_id = ?", id).Delete(&models.Comment{})
		if comments.Error != nil {
			return comments.Error
		}
		removed = comments.RowsAffected

		res := tx.Where("id = ?", id).Delete(&models.Blog{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBlogNotFound
		}
		return nil
	})
	return removed, err
}

func (r *BlogRepositoryImpl) IncrementViews(db *gorm.DB, id string) (*BlogCounters, error) {
	return r.increment(db, id, "views")
}

func (r *BlogRepositoryImpl) IncrementLikes(db *gorm.DB, id string) (*BlogCounters, error) {
	return r.increment(db, id, "likes")
}

func (r *BlogRepositoryImpl) IncrementShares(db *gorm.DB, id string) (*BlogCounters, error) {
	return r.increment(db, id, "shares")
}

func (r *BlogRepositoryImpl) increment(db *gorm.DB, id, column string) (*BlogCounters, error) {
	if !isUUID(id) {
		return nil, ErrBlogNotFound
	}
	affected, err := incrementColumn(db, &models.Blog{}, id, column, 1)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBlogNotFound
	}

	var counters BlogCounters
	err = db.Model(&models.Blog{}).
		Select("views", "likes", "shares", "comments").
		Where("id = ?", id).
		Take(&counters).Error
	if err != nil {
		return nil, err
	}
	return &counters, nil
}

// AdjustComments сдвигает денормализованный счетчик комментариев, не опуская его ниже нуля.
func (r *BlogRepositoryImpl) AdjustComments(db *gorm.DB, id string, delta int) error {
	tx := db.Model(&models.Blog{}).Where("id = ?", id)
	if delta < 0 {
		tx = tx.Where("comments >= ?", -delta)
	}
	return tx.UpdateColumn("comments", gorm.Expr("comments + ?", delta)).Error
}

func (r *BlogRepositoryImpl) ReconcileCommentCounts(db *gorm.DB) (int64, error) {
	live := "(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id)"
	res := db.Exec("UPDATE blogs SET comments = " + live + " WHERE blogs.comments <> " + live)
	return res.RowsAffected, res.Error
}

func (r *BlogRepositoryImpl) FindFeatured(db *gorm.DB, limit int) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0)
	tx := db.Omit("content").
		Where("featured = ? AND status = ?", true, models.BlogStatusPublished).
		Order("published_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) FindPopular(db *gorm.DB, limit int) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0, limit)
	err := db.Omit("content").
		Where("status = ?", models.BlogStatusPublished).
		Order("views DESC, likes DESC, published_at DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

// FindRelatedCandidates - опубликованные статьи той же категории, кроме самой статьи.
// Пересечение тегов проверяется в сервисе: переносимого оператора для JSON-массивов нет.
func (r *BlogRepositoryImpl) FindRelatedCandidates(db *gorm.DB, blog *models.Blog, limit int) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0)
	tx := db.Omit("content").
		Where("id <> ? AND category = ? AND status = ?", blog.ID, blog.Category, models.BlogStatusPublished).
		Order("views DESC, published_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0, limit)
	err := db.Select("id", "title", "status", "created_at", "updated_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Blog{}).Count(&count).Error
	return count, err
}

func (r *BlogRepositoryImpl) CountByStatus(db *gorm.DB) ([]GroupCount, error) {
	return countGrouped(db, &models.Blog{}, "status", 0)
}

func (r *BlogRepositoryImpl) CountFeatured(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Blog{}).Where("featured = ?", true).Count(&count).Error
	return count, err
}

func (r *BlogRepositoryImpl) CountByCategory(db *gorm.DB) ([]GroupCount, error) {
	return countGrouped(db, &models.Blog{}, "category", 0)
}

func (r *BlogRepositoryImpl) CountCreatedSince(db *gorm.DB, since time.Time) (int64, error) {
	return countSince(db, &models.Blog{}, since)
}

func (r *BlogRepositoryImpl) SumEngagement(db *gorm.DB) (*EngagementTotals, error) {
	var totals EngagementTotals
	err := db.Model(&models.Blog{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(comments), 0) AS comments, COALESCE(SUM(likes), 0) AS likes").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
