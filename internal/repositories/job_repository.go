package repositories

import (
	"errors"

	"triveni_backend/internal/models"
	"triveni_backend/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// JobSchema - допустимые параметры списка вакансий.
var JobSchema = query.Schema{
	SearchColumns: []string{"title", "department", "description", "location"},
	Filters: map[string]string{
		"status":     "status",
		"department": "department",
		"type":       "type",
	},
	Sorts: map[string]string{
		"createdAt":    "created_at",
		"updatedAt":    "updated_at",
		"title":        "title",
		"department":   "department",
		"status":       "status",
		"applications": "applications",
	},
	DefaultSort: "createdAt",
}

// JobStatusStat - строка статистики вакансий по статусу.
type JobStatusStat struct {
	Status            string `json:"status"`
	Count             int64  `json:"count"`
	TotalApplications int64  `json:"totalApplications"`
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	List(db *gorm.DB, q query.Query) ([]models.Job, int64, error)
	ListActive(db *gorm.DB) ([]models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error
	Delete(db *gorm.DB, id string) error

	IncrementApplications(db *gorm.DB, id string) error
	ReconcileApplicationCounts(db *gorm.DB) (int64, error)

	CountByStatus(db *gorm.DB) ([]GroupCount, error)
	StatsByStatus(db *gorm.DB) ([]JobStatusStat, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	if !isUUID(id) {
		return nil, ErrJobNotFound
	}
	var job models.Job
	if err := db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) List(db *gorm.DB, q query.Query) ([]models.Job, int64, error) {
	jobs := make([]models.Job, 0)
	var total int64

	if err := q.Filter(db.Model(&models.Job{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Paginate(q.Filter(db.Model(&models.Job{}))).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListActive - открытые вакансии для сайта, новые сверху.
func (r *JobRepositoryImpl) ListActive(db *gorm.DB) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	err := db.Where("status = ?", models.JobStatusActive).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// Update сохраняет все поля, кроме счетчика откликов: его меняют только атомарные операции.
func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	res := db.Model(job).
		Select("*").
		Omit("id", "created_at", "applications", clause.Associations).
		Updates(job)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error {
	if !isUUID(id) {
		return ErrJobNotFound
	}
	res := db.Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !isUUID(id) {
		return ErrJobNotFound
	}
	res := db.Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementApplications(db *gorm.DB, id string) error {
	affected, err := incrementColumn(db, &models.Job{}, id, "applications", 1)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ReconcileApplicationCounts поднимает отставшие счетчики до фактического числа откликов.
// Счетчик учитывает все поданные отклики, поэтому после удаления откликов он не уменьшается.
// Возвращает количество исправленных вакансий.
func (r *JobRepositoryImpl) ReconcileApplicationCounts(db *gorm.DB) (int64, error) {
	live := "(SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id)"
	res := db.Exec("UPDATE jobs SET applications = " + live + " WHERE jobs.applications < " + live)
	return res.RowsAffected, res.Error
}

func (r *JobRepositoryImpl) CountByStatus(db *gorm.DB) ([]GroupCount, error) {
	return countGrouped(db, &models.Job{}, "status", 0)
}

func (r *JobRepositoryImpl) StatsByStatus(db *gorm.DB) ([]JobStatusStat, error) {
	stats := make([]JobStatusStat, 0)
	err := db.Model(&models.Job{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(applications), 0) AS total_applications").
		Group("status").
		Order("status ASC").
		Scan(&stats).Error
	return stats, err
}
