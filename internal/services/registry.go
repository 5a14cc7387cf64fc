package services

import (
	"triveni_backend/internal/auth"
	"triveni_backend/internal/config"
	"triveni_backend/internal/email"
	"triveni_backend/internal/events"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/storage"
	"triveni_backend/internal/validator"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	JobService         JobService
	ApplicationService ApplicationService
	BlogService        BlogService
	CommentService     CommentService
	ContactService     ContactService
	DashboardService   DashboardService
}

// Dependencies - внешние зависимости сервисов, создаются при старте приложения.
type Dependencies struct {
	Config    *config.Config
	Tokens    *auth.TokenManager
	Resumes   storage.Storage
	Images    storage.Storage
	Publisher events.Publisher
	Notifier  *email.Notifier
	Validator *validator.Validator
}

func NewServiceContainer(d Dependencies) *ServiceContainer {
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Validator == nil {
		d.Validator = validator.New()
	}

	// Репозитории без состояния, соединение передается в каждый вызов.
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	blogRepo := repositories.NewBlogRepository()
	commentRepo := repositories.NewCommentRepository()
	contactRepo := repositories.NewContactRepository()

	resumes := newFileStore(d.Resumes, config.ResumeFileRule(d.Config), "resume")
	images := newFileStore(d.Images, config.ImageFileRule(d.Config), "blog")

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, d.Tokens, d.Validator),
		JobService:         NewJobService(jobRepo, applicationRepo, d.Validator),
		ApplicationService: NewApplicationService(applicationRepo, jobRepo, resumes, d.Validator, d.Publisher, d.Notifier),
		BlogService:        NewBlogService(blogRepo, commentRepo, images, d.Validator, d.Publisher),
		CommentService:     NewCommentService(commentRepo, blogRepo, d.Validator),
		ContactService:     NewContactService(contactRepo, d.Validator, d.Publisher, d.Notifier),
		DashboardService:   NewDashboardService(blogRepo, jobRepo, applicationRepo, contactRepo),
	}
}
