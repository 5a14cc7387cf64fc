package handlers

import (
	"triveni_backend/internal/services"
	"triveni_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	BlogHandler        *BlogHandler
	CommentHandler     *CommentHandler
	ContactHandler     *ContactHandler
	DashboardHandler   *DashboardHandler
	HealthHandler      *HealthHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, sc.AuthService),
		JobHandler:         NewJobHandler(base, sc.JobService),
		ApplicationHandler: NewApplicationHandler(base, sc.ApplicationService),
		BlogHandler:        NewBlogHandler(base, sc.BlogService),
		CommentHandler:     NewCommentHandler(base, sc.CommentService),
		ContactHandler:     NewContactHandler(base, sc.ContactService),
		DashboardHandler:   NewDashboardHandler(base, sc.DashboardService),
		HealthHandler:      NewHealthHandler(base),
	}
}
