package testutil

import (
	"fmt"
	"testing"
	"time"

	"triveni_backend/internal/auth"
	"triveni_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// CreateUser создает активного пользователя с паролем DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test " + string(role),
		Email:        fmt.Sprintf("%s_%s@test.com", role, uuid.NewString()[:8]),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя")
	return user
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	return CreateUser(t, db, models.UserRoleAdmin)
}

// Token выпускает bearer-токен для пользователя.
func Token(t *testing.T, tm *auth.TokenManager, user *models.User) string {
	t.Helper()
	token, _, err := tm.Generate(user.ID, string(user.Role))
	require.NoError(t, err)
	return token
}

func CreateJob(t *testing.T, db *gorm.DB, mutate ...func(*models.Job)) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:        "Piping Engineer",
		Department:   "Engineering",
		Type:         models.JobTypeFullTime,
		Location:     "Pune",
		Experience:   "3-5 years",
		Salary:       "Competitive",
		Description:  "Design and review piping layouts.",
		Requirements: []string{"B.E. Mechanical", "AutoCAD"},
		Status:       models.JobStatusActive,
		Color:        models.DefaultJobColor,
	}
	for _, m := range mutate {
		m(job)
	}
	require.NoError(t, db.Create(job).Error, "не удалось создать вакансию")
	return job
}

func CreateApplication(t *testing.T, db *gorm.DB, job *models.Job, mutate ...func(*models.Application)) *models.Application {
	t.Helper()

	app := &models.Application{
		Name:           "Asha Patil",
		Email:          fmt.Sprintf("candidate_%s@test.com", uuid.NewString()[:8]),
		Phone:          "+91 98765 43210",
		Position:       job.Title,
		JobID:          job.ID,
		Experience:     "4 years",
		ExpectedSalary: "12 LPA",
		NoticePeriod:   "30 days",
		Skills:         []string{"AutoCAD", "Caesar II"},
		Status:         models.ApplicationStatusNew,
	}
	for _, m := range mutate {
		m(app)
	}
	require.NoError(t, db.Omit("Job").Create(app).Error, "не удалось создать отклик")
	return app
}

func CreateBlog(t *testing.T, db *gorm.DB, mutate ...func(*models.Blog)) *models.Blog {
	t.Helper()

	id := uuid.NewString()[:8]
	blog := &models.Blog{
		Title:         "Pipe Stress Analysis " + id,
		Slug:          "pipe-stress-analysis-" + id,
		Excerpt:       "What to check before hydrotest.",
		Content:       "Long form content about pipe stress.",
		Author:        models.Author{Name: "Editorial Team"},
		Category:      models.BlogCategoryPiping,
		Tags:          []string{"piping", "stress"},
		ReadingTime:   5,
		AllowComments: true,
		Status:        models.BlogStatusPublished,
		PublishedAt:   time.Now().UTC(),
	}
	for _, m := range mutate {
		m(blog)
	}
	require.NoError(t, db.Create(blog).Error, "не удалось создать статью")
	return blog
}

func CreateComment(t *testing.T, db *gorm.DB, blog *models.Blog, mutate ...func(*models.Comment)) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		BlogID:  blog.ID,
		Name:    "Reader",
		Email:   "reader@test.com",
		Comment: "Very helpful, thanks.",
		Rating:  5,
		Status:  models.CommentStatusApproved,
	}
	for _, m := range mutate {
		m(comment)
	}
	require.NoError(t, db.Create(comment).Error, "не удалось создать комментарий")
	return comment
}

func CreateContact(t *testing.T, db *gorm.DB, mutate ...func(*models.Contact)) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		Name:     "Ravi Kumar",
		Email:    "ravi@test.com",
		Phone:    "+91 90000 00000",
		Subject:  "Fabrication quote",
		Message:  "Please share a quote for structural fabrication.",
		Status:   models.ContactStatusNew,
		Priority: models.ContactPriorityMedium,
	}
	for _, m := range mutate {
		m(contact)
	}
	require.NoError(t, db.Create(contact).Error, "не удалось создать обращение")
	return contact
}
