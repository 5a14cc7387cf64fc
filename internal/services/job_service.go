package services

import (
	"context"
	"errors"
	"strings"

	"triveni_backend/internal/models"
	"triveni_backend/internal/query"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var errJobHasApplications = errors.New("job has applications")

type JobService interface {
	CreateJob(ctx context.Context, db *gorm.DB, userID string, req *dto.JobRequest) (*models.Job, error)
	GetJob(ctx context.Context, db *gorm.DB, id string) (*dto.JobDetail, error)
	ListJobs(ctx context.Context, db *gorm.DB, q dto.JobListQuery) (*dto.ListResult[models.Job], error)
	ListActiveJobs(ctx context.Context, db *gorm.DB) ([]models.Job, error)
	UpdateJob(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateJobRequest) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, db *gorm.DB, id string, req *dto.JobStatusRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, db *gorm.DB, id string) error
	GetJobStats(ctx context.Context, db *gorm.DB) (*dto.JobStats, error)
}

type jobService struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	validator       *validator.Validator
}

func NewJobService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	v *validator.Validator,
) JobService {
	return &jobService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		validator:       v,
	}
}

func (s *jobService) CreateJob(ctx context.Context, db *gorm.DB, userID string, req *dto.JobRequest) (*models.Job, error) {
	job := &models.Job{
		Title:        strings.TrimSpace(req.Title),
		Department:   strings.TrimSpace(req.Department),
		Type:         models.JobType(req.Type),
		Location:     strings.TrimSpace(req.Location),
		Experience:   strings.TrimSpace(req.Experience),
		Salary:       strings.TrimSpace(req.Salary),
		Description:  strings.TrimSpace(req.Description),
		Requirements: trimList(req.Requirements),
		Status:       models.JobStatus(req.Status),
		Color:        req.Color,
	}
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	if job.Color == "" {
		job.Color = models.DefaultJobColor
	}
	if userID != "" {
		job.PostedBy = &userID
	}

	if err := validateModel(s.validator, job); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, handleJobError(err)
	}
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, db *gorm.DB, id string) (*dto.JobDetail, error) {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		return nil, handleJobError(err)
	}
	count, err := s.applicationRepo.CountByJob(db, job.ID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}
	return &dto.JobDetail{Job: *job, ApplicationsCount: count}, nil
}

func (s *jobService) ListJobs(ctx context.Context, db *gorm.DB, q dto.JobListQuery) (*dto.ListResult[models.Job], error) {
	built := repositories.JobSchema.Build(q.ToParams())
	jobs, total, err := s.jobRepo.List(db, built)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}
	return &dto.ListResult[models.Job]{Items: jobs, Pagination: query.ForQuery(built, total)}, nil
}

func (s *jobService) ListActiveJobs(ctx context.Context, db *gorm.DB) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListActive(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}
	return jobs, nil
}

func (s *jobService) UpdateJob(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		return nil, handleJobError(err)
	}

	setString(&job.Title, req.Title)
	setString(&job.Department, req.Department)
	setString(&job.Location, req.Location)
	setString(&job.Experience, req.Experience)
	setString(&job.Salary, req.Salary)
	setString(&job.Description, req.Description)
	setString(&job.Color, req.Color)
	if req.Type != nil {
		job.Type = models.JobType(*req.Type)
	}
	if req.Status != nil {
		job.Status = models.JobStatus(*req.Status)
	}
	if req.Requirements != nil {
		job.Requirements = trimList(req.Requirements)
	}

	if err := validateModel(s.validator, job); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, handleJobError(err)
	}
	return job, nil
}

func (s *jobService) UpdateJobStatus(ctx context.Context, db *gorm.DB, id string, req *dto.JobStatusRequest) (*models.Job, error) {
	if !models.IsValidJobStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("Invalid status value")
	}
	if err := s.jobRepo.UpdateStatus(db, id, models.JobStatus(req.Status)); err != nil {
		return nil, handleJobError(err)
	}
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		return nil, handleJobError(err)
	}
	return job, nil
}

// DeleteJob - проверка откликов и удаление в одной транзакции,
// чтобы отклик, пришедший между ними, не остался без вакансии.
func (s *jobService) DeleteJob(ctx context.Context, db *gorm.DB, id string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		count, err := s.applicationRepo.CountByJob(tx, job.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return errJobHasApplications
		}
		return s.jobRepo.Delete(tx, job.ID)
	})
	if err != nil {
		return handleJobError(err)
	}
	return nil
}

func (s *jobService) GetJobStats(ctx context.Context, db *gorm.DB) (*dto.JobStats, error) {
	rows, err := s.jobRepo.StatsByStatus(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "job")
	}

	stats := &dto.JobStats{ByStatus: rows}
	for _, r := range rows {
		stats.Total += r.Count
		if r.Status == string(models.JobStatusActive) {
			stats.Active = r.Count
		}
	}
	return stats, nil
}

func handleJobError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrJobNotFound):
		return apperrors.ErrNotFound(err, "job", "Job not found")
	case errors.Is(err, errJobHasApplications):
		return apperrors.ErrConflict(err, "job", "Cannot delete job with existing applications")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrConflict(err, "job", "Cannot delete job with existing applications")
	}
	return apperrors.ErrDatabase(err, "job")
}
