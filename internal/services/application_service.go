package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"triveni_backend/internal/email"
	"triveni_backend/internal/events"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/models"
	"triveni_backend/internal/query"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/storage"
	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var errJobNotOpen = errors.New("job not found or not active")

// ResumeFile - открытый файл резюме для отдачи клиенту. Reader закрывает вызывающий.
type ResumeFile struct {
	Reader   io.ReadCloser
	Name     string
	MimeType string
	Size     int64
}

type ApplicationService interface {
	SubmitApplication(ctx context.Context, db *gorm.DB, req *dto.ApplicationRequest) (*models.Application, error)
	GetApplication(ctx context.Context, db *gorm.DB, id string) (*models.Application, error)
	ListApplications(ctx context.Context, db *gorm.DB, q dto.ApplicationListQuery) (*dto.ListResult[models.Application], error)
	UpdateApplication(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateApplicationRequest) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id string, req *dto.ApplicationStatusRequest) (*models.Application, error)
	DeleteApplication(ctx context.Context, db *gorm.DB, id string) error
	OpenResume(ctx context.Context, db *gorm.DB, id string) (*ResumeFile, error)
	GetApplicationStats(ctx context.Context, db *gorm.DB) (*dto.ApplicationStats, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	resumes         *fileStore
	validator       *validator.Validator
	publisher       events.Publisher
	notifier        *email.Notifier
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	resumes *fileStore,
	v *validator.Validator,
	publisher events.Publisher,
	notifier *email.Notifier,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		resumes:         resumes,
		validator:       v,
		publisher:       publisher,
		notifier:        notifier,
	}
}

// SubmitApplication - публичный отклик. Проверка вакансии, проверка дубля, вставка
// и увеличение счетчика вакансии выполняются в одной транзакции.
// Если транзакция откатилась, уже сохраненный файл резюме удаляется.
func (s *applicationService) SubmitApplication(ctx context.Context, db *gorm.DB, req *dto.ApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		Name:           strings.TrimSpace(req.Name),
		Email:          normalizeEmail(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		JobID:          strings.TrimSpace(req.JobID),
		Experience:     strings.TrimSpace(req.Experience),
		CurrentCompany: strings.TrimSpace(req.CurrentCompany),
		ExpectedSalary: strings.TrimSpace(req.ExpectedSalary),
		NoticePeriod:   strings.TrimSpace(req.NoticePeriod),
		CoverLetter:    strings.TrimSpace(req.CoverLetter),
		Skills:         req.NormalizedSkills(),
		Education:      strings.TrimSpace(req.Education),
		Status:         models.ApplicationStatusNew,
	}

	var stored *storedFile
	err := db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByID(tx, app.JobID)
		if errors.Is(err, repositories.ErrJobNotFound) || (err == nil && !job.IsActive()) {
			return errJobNotOpen
		}
		if err != nil {
			return err
		}
		app.Position = job.Title

		if err := validateModel(s.validator, app); err != nil {
			return err
		}

		exists, err := s.applicationRepo.ExistsForJob(tx, app.Email, app.JobID)
		if err != nil {
			return err
		}
		if exists {
			return repositories.ErrDuplicateApplication
		}

		if req.Resume != nil {
			stored, err = s.resumes.save(ctx, req.Resume)
			if err != nil {
				return err
			}
			app.Resume = models.Resume{
				Filename:     stored.Filename,
				OriginalName: stored.OriginalName,
				Path:         stored.Path,
				Size:         stored.Size,
				MimeType:     stored.MimeType,
			}
		}

		if err := s.applicationRepo.Create(tx, app); err != nil {
			return err
		}
		return s.jobRepo.IncrementApplications(tx, app.JobID)
	})
	if err != nil {
		if stored != nil {
			s.resumes.remove(ctx, stored.Path)
		}
		return nil, handleApplicationError(err)
	}

	logger.CtxInfo(ctx, "Application submitted", "application_id", app.ID, "job_id", app.JobID)
	s.publisher.Publish(ctx, events.ApplicationSubmitted, map[string]string{
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"position":      app.Position,
	})
	go s.notifier.ApplicationSubmitted(context.WithoutCancel(ctx), app)

	return app, nil
}

func (s *applicationService) GetApplication(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	app, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	return app, nil
}

func (s *applicationService) ListApplications(ctx context.Context, db *gorm.DB, q dto.ApplicationListQuery) (*dto.ListResult[models.Application], error) {
	built := repositories.ApplicationSchema.Build(q.ToParams())
	apps, total, err := s.applicationRepo.List(db, built)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "application")
	}
	return &dto.ListResult[models.Application]{Items: apps, Pagination: query.ForQuery(built, total)}, nil
}

func (s *applicationService) UpdateApplication(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	previous := app.Status

	setString(&app.Name, req.Name)
	setString(&app.Phone, req.Phone)
	setString(&app.Experience, req.Experience)
	setString(&app.CurrentCompany, req.CurrentCompany)
	setString(&app.ExpectedSalary, req.ExpectedSalary)
	setString(&app.NoticePeriod, req.NoticePeriod)
	setString(&app.CoverLetter, req.CoverLetter)
	setString(&app.Education, req.Education)
	setString(&app.Notes, req.Notes)
	if req.Email != nil {
		app.Email = normalizeEmail(*req.Email)
	}
	if req.Skills != nil {
		app.Skills = trimList(req.Skills)
	}
	if req.Status != nil {
		app.Status = models.ApplicationStatus(*req.Status)
	}

	if err := validateModel(s.validator, app); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.Update(db, app); err != nil {
		return nil, handleApplicationError(err)
	}

	if app.Status != previous {
		s.publishStatusChange(ctx, app)
	}
	return app, nil
}

func (s *applicationService) UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id string, req *dto.ApplicationStatusRequest) (*models.Application, error) {
	if !models.IsValidApplicationStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("Invalid status value")
	}
	if err := s.applicationRepo.UpdateStatus(db, id, models.ApplicationStatus(req.Status)); err != nil {
		return nil, handleApplicationError(err)
	}
	app, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	s.publishStatusChange(ctx, app)
	return app, nil
}

// DeleteApplication не уменьшает счетчик вакансии: он считает все поданные отклики.
func (s *applicationService) DeleteApplication(ctx context.Context, db *gorm.DB, id string) error {
	app, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		return handleApplicationError(err)
	}
	if err := s.applicationRepo.Delete(db, app.ID); err != nil {
		return handleApplicationError(err)
	}
	if app.HasResume() {
		s.resumes.remove(ctx, app.Resume.Path)
	}
	return nil
}

func (s *applicationService) OpenResume(ctx context.Context, db *gorm.DB, id string) (*ResumeFile, error) {
	app, err := s.applicationRepo.FindByID(db, id)
	if errors.Is(err, repositories.ErrApplicationNotFound) || (err == nil && !app.HasResume()) {
		return nil, apperrors.ErrNotFound(err, "application", "Resume not found")
	}
	if err != nil {
		return nil, handleApplicationError(err)
	}

	reader, err := s.resumes.open(ctx, app.Resume.Path)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, apperrors.ErrNotFound(err, "application", "Resume file not found on server")
	}
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	mimeType := app.Resume.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &ResumeFile{
		Reader:   reader,
		Name:     app.Resume.OriginalName,
		MimeType: mimeType,
		Size:     app.Resume.Size,
	}, nil
}

func (s *applicationService) GetApplicationStats(ctx context.Context, db *gorm.DB) (*dto.ApplicationStats, error) {
	rows, err := s.applicationRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "application")
	}

	stats := &dto.ApplicationStats{ByStatus: rows}
	for _, r := range rows {
		stats.Total += r.Count
		if r.Name == string(models.ApplicationStatusNew) {
			stats.New = r.Count
		}
	}
	return stats, nil
}

func (s *applicationService) publishStatusChange(ctx context.Context, app *models.Application) {
	s.publisher.Publish(ctx, events.ApplicationStatusChanged, map[string]string{
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"status":        string(app.Status),
	})
}

func handleApplicationError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrNotFound(err, "application", "Application not found")
	case errors.Is(err, errJobNotOpen):
		return apperrors.ErrInvalidOperation("application", "Job not found or not active")
	case errors.Is(err, repositories.ErrDuplicateApplication), repositories.IsDuplicateKeyError(err):
		return apperrors.ErrConflict(err, "application", "You have already applied for this position")
	}
	return apperrors.ErrDatabase(err, "application")
}
