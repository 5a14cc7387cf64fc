package repositories

import (
	"errors"
	"time"

	"triveni_backend/internal/models"
	"triveni_backend/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application for this job already exists")
)

var ApplicationSchema = query.Schema{
	SearchColumns: []string{"name", "email", "position"},
	Filters: map[string]string{
		"status":   "status",
		"position": "position",
		"jobId":    "job_id",
	},
	UUIDFilters: map[string]bool{"jobId": true},
	Sorts: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"name":      "name",
		"position":  "position",
		"status":    "status",
	},
	DefaultSort: "createdAt",
}

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	ExistsForJob(db *gorm.DB, email, jobID string) (bool, error)
	List(db *gorm.DB, q query.Query) ([]models.Application, int64, error)
	Update(db *gorm.DB, app *models.Application) error
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
	Delete(db *gorm.DB, id string) error

	CountByJob(db *gorm.DB, jobID string) (int64, error)
	CountByStatus(db *gorm.DB) ([]GroupCount, error)
	CountByPosition(db *gorm.DB, limit int) ([]GroupCount, error)
	CountCreatedSince(db *gorm.DB, since time.Time) (int64, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Application, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// jobSummary - в списках откликов нужна только краткая информация о вакансии.
func jobSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "department", "status", "created_at", "updated_at")
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	err := db.Omit(clause.Associations).Create(app).Error
	if IsDuplicateKeyError(err) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	if !isUUID(id) {
		return nil, ErrApplicationNotFound
	}
	var app models.Application
	err := db.Preload("Job", jobSummary).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) ExistsForJob(db *gorm.DB, email, jobID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("email = ? AND job_id = ?", email, jobID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) List(db *gorm.DB, q query.Query) ([]models.Application, int64, error) {
	apps := make([]models.Application, 0)
	var total int64

	if err := q.Filter(db.Model(&models.Application{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Paginate(q.Filter(db.Model(&models.Application{}))).
		Preload("Job", jobSummary).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, app *models.Application) error {
	res := db.Model(app).
		Select("*").
		Omit("id", "created_at", "job_id", clause.Associations).
		Updates(app)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	if !isUUID(id) {
		return ErrApplicationNotFound
	}
	res := db.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !isUUID(id) {
		return ErrApplicationNotFound
	}
	res := db.Where("id = ?", id).Delete(&models.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) CountByJob(db *gorm.DB, jobID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByStatus(db *gorm.DB) ([]GroupCount, error) {
	return countGrouped(db, &models.Application{}, "status", 0)
}

func (r *ApplicationRepositoryImpl) CountByPosition(db *gorm.DB, limit int) ([]GroupCount, error) {
	return countGrouped(db, &models.Application{}, "position", limit)
}

func (r *ApplicationRepositoryImpl) CountCreatedSince(db *gorm.DB, since time.Time) (int64, error) {
	return countSince(db, &models.Application{}, since)
}

func (r *ApplicationRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.Application, error) {
	apps := make([]models.Application, 0, limit)
	err := db.Select("id", "name", "position", "status", "created_at", "updated_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}
