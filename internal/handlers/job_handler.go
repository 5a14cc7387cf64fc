package handlers

import (
	"fmt"

	"triveni_backend/internal/middleware"
	"triveni_backend/internal/services"
	"triveni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AccessGuard) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("/active", h.ListActiveJobs)
	}

	admin := rg.Group("/jobs")
	admin.Use(guard.RequireAuth(), guard.RequireAdmin())
	{
		admin.GET("", h.ListJobs)
		admin.GET("/stats", h.GetJobStats)
		admin.GET("/:id", h.GetJob)
		admin.POST("", h.CreateJob)
		admin.PUT("/:id", h.UpdateJob)
		admin.PATCH("/:id/status", h.UpdateJobStatus)
		admin.DELETE("/:id", h.DeleteJob)
	}
}

// CreateJob godoc
// @Summary Создать вакансию
// @Description Новая вакансия создается в статусе draft, если статус не указан
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobRequest true "Вакансия"
// @Success 201 {object} Response{data=models.Job}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Job created successfully", job)
}

// ListJobs godoc
// @Summary Список вакансий для админки
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, active, paused, closed или all"
// @Param department query string false "Отдел"
// @Param type query string false "Тип занятости"
// @Param search query string false "Поиск по названию, отделу и локации"
// @Param sortBy query string false "Поле сортировки"
// @Param sortOrder query string false "asc или desc"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} Response{data=[]models.Job}
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dto.JobListQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), h.GetDB(c), q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Page(c, result)
}

// ListActiveJobs godoc
// @Summary Открытые вакансии
// @Description Публичная витрина: только вакансии в статусе active
// @Tags jobs
// @Produce json
// @Success 200 {object} Response{data=[]models.Job}
// @Router /jobs/active [get]
func (h *JobHandler) ListActiveJobs(c *gin.Context) {
	jobs, err := h.jobService.ListActiveJobs(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", jobs)
}

// GetJob godoc
// @Summary Вакансия по ID
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Success 200 {object} Response{data=dto.JobDetail}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", job)
}

// UpdateJob godoc
// @Summary Обновить вакансию
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Param request body dto.UpdateJobRequest true "Изменяемые поля"
// @Success 200 {object} Response{data=models.Job}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Job updated successfully", job)
}

// UpdateJobStatus godoc
// @Summary Сменить статус вакансии
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Param request body dto.JobStatusRequest true "Новый статус"
// @Success 200 {object} Response{data=models.Job}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /jobs/{id}/status [patch]
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	var req dto.JobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJobStatus(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("Job status updated to %s", job.Status), job)
}

// DeleteJob godoc
// @Summary Удалить вакансию
// @Description Вакансию с откликами удалить нельзя (409)
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Success 200 {object} Response
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Job deleted successfully", nil)
}

// GetJobStats godoc
// @Summary Статистика вакансий
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=dto.JobStats}
// @Router /jobs/stats [get]
func (h *JobHandler) GetJobStats(c *gin.Context) {
	stats, err := h.jobService.GetJobStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", stats)
}
