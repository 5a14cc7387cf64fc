package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"triveni_backend/internal/config"
	"triveni_backend/internal/models"
	"triveni_backend/internal/query"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router     *gin.Engine
	db         *gorm.DB
	adminToken string
	userToken  string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	uploads := t.TempDir()
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.ClientURL = "http://localhost:3000"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Storage = config.StorageConfig{Type: "local", BasePath: uploads, BaseURL: "/uploads"}
	cfg.ImageStorage = cfg.Storage
	cfg.Upload.ResumeMaxSize = 5 * 1024 * 1024
	cfg.Upload.ImageMaxSize = 5 * 1024 * 1024

	deps, cleanup, err := BuildDependencies(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	db := testutil.NewDB(t)
	router, _ := SetupRouter(cfg, db, deps)

	return &testApp{
		router:     router,
		db:         db,
		adminToken: testutil.Token(t, deps.Tokens, testutil.CreateAdmin(t, db)),
		userToken:  testutil.Token(t, deps.Tokens, testutil.CreateUser(t, db, models.UserRoleUser)),
	}
}

func (a *testApp) send(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.SendRequest(t, a.router, method, path, token, body)
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	rec := a.send(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]interface{}
	env := testutil.DecodeEnvelope(t, rec, &data)
	assert.True(t, env.Success)
	assert.Equal(t, "OK", data["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)

	a.send(t, http.MethodGet, "/api/health", "", nil)
	rec := a.send(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name    string
		token   string
		code    int
		message string
	}{
		{name: "без токена", token: "", code: http.StatusUnauthorized, message: "Access denied. No token provided."},
		{name: "мусорный токен", token: "not-a-jwt", code: http.StatusUnauthorized, message: "Invalid token"},
		{name: "обычный пользователь", token: a.userToken, code: http.StatusForbidden, message: "Access denied. Admin role required."},
		{name: "администратор", token: a.adminToken, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.send(t, http.MethodGet, "/api/v1/dashboard/counts", tt.token, nil)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())

			env := testutil.DecodeEnvelope(t, rec, nil)
			assert.Equal(t, tt.code == http.StatusOK, env.Success)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Message)
			}
		})
	}
}

func TestAuthFlow(t *testing.T) {
	a := newTestApp(t)

	rec := a.send(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Priya", "email": "priya@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered dto.AuthResponse
	env := testutil.DecodeEnvelope(t, rec, &registered)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.Equal(t, models.UserRoleUser, registered.User.Role)
	require.NotEmpty(t, registered.Token)

	rec = a.send(t, http.MethodGet, "/api/v1/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	testutil.DecodeEnvelope(t, rec, &me)
	assert.Equal(t, "priya@example.com", me.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = a.send(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "priya@example.com", "password": "wrong-one",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", testutil.DecodeEnvelope(t, rec, nil).Message)

	rec = a.send(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := testutil.DecodeEnvelope(t, rec, nil).Errors
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJobs_PublicAndAdminListing(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateJob(t, a.db, func(j *models.Job) { j.Title = "Welder" })
	testutil.CreateJob(t, a.db, func(j *models.Job) { j.Title = "Planner"; j.Status = models.JobStatusDraft })

	rec := a.send(t, http.MethodGet, "/api/v1/jobs/active", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []models.Job
	testutil.DecodeEnvelope(t, rec, &active)
	require.Len(t, active, 1)
	assert.Equal(t, "Welder", active[0].Title)

	rec = a.send(t, http.MethodGet, "/api/v1/jobs?status=all&limit=1", a.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page []models.Job
	env := testutil.DecodeEnvelope(t, rec, &page)
	assert.Len(t, page, 1)

	var pagination query.Pagination
	require.NoError(t, json.Unmarshal(env.Pagination, &pagination))
	assert.Equal(t, int64(2), pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	assert.True(t, pagination.HasNext)
}

func TestJobs_CreateAndChangeStatus(t *testing.T) {
	a := newTestApp(t)

	rec := a.send(t, http.MethodPost, "/api/v1/jobs", a.adminToken, map[string]interface{}{
		"title":        "Safety Officer",
		"department":   "HSE",
		"type":         "Full-time",
		"location":     "Nagpur",
		"experience":   "2+ years",
		"salary":       "Competitive",
		"description":  "Own site safety audits.",
		"requirements": []string{"NEBOSH"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var job models.Job
	testutil.DecodeEnvelope(t, rec, &job)
	assert.Equal(t, models.JobStatusDraft, job.Status)

	rec = a.send(t, http.MethodPatch, "/api/v1/jobs/"+job.ID+"/status", a.adminToken, map[string]string{"status": "active"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Job status updated to active", testutil.DecodeEnvelope(t, rec, nil).Message)

	rec = a.send(t, http.MethodGet, "/api/v1/jobs/00000000-0000-0000-0000-000000000000", a.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplications_SubmitAndDownloadResume(t *testing.T) {
	a := newTestApp(t)
	job := testutil.CreateJob(t, a.db)

	rec := testutil.SendMultipart(t, a.router, http.MethodPost, "/api/v1/applications", "",
		map[string][]string{
			"name":           {"Asha Patil"},
			"email":          {"asha@example.com"},
			"phone":          {"+91 98765 43210"},
			"jobId":          {job.ID},
			"experience":     {"4 years"},
			"expectedSalary": {"12 LPA"},
			"noticePeriod":   {"30 days"},
			"skills":         {`["AutoCAD","Caesar II"]`},
		},
		testutil.Upload{Field: "resume", Filename: "asha-cv.pdf", Content: testutil.PDF},
	)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var application models.Application
	env := testutil.DecodeEnvelope(t, rec, &application)
	assert.Equal(t, "Application submitted successfully", env.Message)
	assert.Equal(t, []string{"AutoCAD", "Caesar II"}, []string(application.Skills))
	require.True(t, application.HasResume())

	// резюме не раздается статикой
	rec = a.send(t, http.MethodGet, "/uploads/"+application.Resume.Path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.send(t, http.MethodGet, "/api/v1/applications/"+application.ID+"/resume", a.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="asha-cv.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, testutil.PDF, rec.Body.Bytes())

	rec = a.send(t, http.MethodGet, "/api/v1/applications/"+application.ID+"/resume", a.userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApplications_SubmitWithoutResumeAsJSON(t *testing.T) {
	a := newTestApp(t)
	job := testutil.CreateJob(t, a.db)

	rec := a.send(t, http.MethodPost, "/api/v1/applications", "", map[string]interface{}{
		"name":           "Rohit",
		"email":          "rohit@example.com",
		"phone":          "+91 90000 11111",
		"jobId":          job.ID,
		"experience":     "1 year",
		"expectedSalary": "6 LPA",
		"noticePeriod":   "Immediate",
		"skills":         []string{"Welding"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestBlogs_PublishReadAndUploadImage(t *testing.T) {
	a := newTestApp(t)

	rec := a.send(t, http.MethodPost, "/api/v1/blogs", a.adminToken, map[string]interface{}{
		"title":       "Hydrotest Basics",
		"excerpt":     "What to verify before pressurising a line.",
		"content":     "Long form article body.",
		"author":      map[string]string{"name": "Editorial Team"},
		"category":    "Piping Systems",
		"tags":        []string{"piping"},
		"readingTime": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var blog models.Blog
	testutil.DecodeEnvelope(t, rec, &blog)
	assert.Equal(t, "hydrotest-basics", blog.Slug)

	rec = a.send(t, http.MethodGet, "/api/v1/blogs/hydrotest-basics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail dto.BlogDetail
	testutil.DecodeEnvelope(t, rec, &detail)
	assert.Equal(t, 1, detail.Views)

	rec = a.send(t, http.MethodPatch, "/api/v1/blogs/"+blog.ID+"/like", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog liked successfully", testutil.DecodeEnvelope(t, rec, nil).Message)

	rec = testutil.SendMultipart(t, a.router, http.MethodPost, "/api/v1/blogs/upload-image", a.adminToken, nil,
		testutil.Upload{Field: "image", Filename: "cover.png", Content: testutil.PNG},
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var upload dto.ImageUpload
	testutil.DecodeEnvelope(t, rec, &upload)

	rec = a.send(t, http.MethodGet, upload.ImageURL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testutil.PNG, rec.Body.Bytes())
}

func TestBlogs_CommentModeration(t *testing.T) {
	a := newTestApp(t)
	blog := testutil.CreateBlog(t, a.db)

	rec := a.send(t, http.MethodPost, "/api/v1/blogs/"+blog.ID+"/comments", "", map[string]interface{}{
		"name": "Reader", "email": "reader@example.com", "comment": "Great read", "rating": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment models.Comment
	testutil.DecodeEnvelope(t, rec, &comment)
	assert.Equal(t, models.CommentStatusApproved, comment.Status)

	var visible []models.Comment
	testutil.DecodeEnvelope(t, a.send(t, http.MethodGet, "/api/v1/blogs/"+blog.ID+"/comments", "", nil), &visible)
	assert.Len(t, visible, 1)

	rec = a.send(t, http.MethodPut, "/api/v1/comments/"+comment.ID, a.adminToken, map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	testutil.DecodeEnvelope(t, a.send(t, http.MethodGet, "/api/v1/blogs/"+blog.ID+"/comments", "", nil), &visible)
	assert.Empty(t, visible)

	var all []models.Comment
	testutil.DecodeEnvelope(t, a.send(t, http.MethodGet, "/api/v1/blogs/"+blog.ID+"/comments/all", a.adminToken, nil), &all)
	assert.Len(t, all, 1)
}

func TestContact_SubmitAndStats(t *testing.T) {
	a := newTestApp(t)

	rec := a.send(t, http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "phone": "+91 90000 00000",
		"subject": "Plant shutdown support", "message": "Need a crew for March.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Thank you for contacting us. We will get back to you soon.", testutil.DecodeEnvelope(t, rec, nil).Message)

	rec = a.send(t, http.MethodPost, "/api/v1/contact", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, testutil.DecodeEnvelope(t, rec, nil).Errors, "email")

	rec = a.send(t, http.MethodGet, "/api/v1/contact/stats/overview", a.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats dto.ContactStats
	testutil.DecodeEnvelope(t, rec, &stats)
	assert.Equal(t, int64(1), stats.Total)
}

func TestCORSPreflight(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t)
	rec := a.send(t, http.MethodGet, fmt.Sprintf("/api/v1/%s", "nope"), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
