package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"triveni_backend/internal/logger"
	"triveni_backend/internal/middleware"
	"triveni_backend/internal/services"
	"triveni_backend/internal/services/dto"
	"triveni_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AccessGuard) {
	applications := rg.Group("/applications")
	{
		applications.POST("", h.SubmitApplication)
	}

	admin := rg.Group("/applications")
	admin.Use(guard.RequireAuth(), guard.RequireAdmin())
	{
		admin.GET("", h.ListApplications)
		admin.GET("/stats", h.GetApplicationStats)
		admin.GET("/:id", h.GetApplication)
		admin.GET("/:id/resume", h.DownloadResume)
		admin.PUT("/:id", h.UpdateApplication)
		admin.PATCH("/:id/status", h.UpdateApplicationStatus)
		admin.DELETE("/:id", h.DeleteApplication)
	}
}

// SubmitApplication godoc
// @Summary Откликнуться на вакансию
// @Description Публичная форма. Резюме (pdf, doc, docx) передается в поле resume
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Имя"
// @Param email formData string true "Email"
// @Param phone formData string true "Телефон"
// @Param jobId formData string true "ID вакансии"
// @Param experience formData string true "Опыт"
// @Param skills formData []string false "Навыки"
// @Param resume formData file false "Файл резюме"
// @Success 201 {object} Response{data=models.Application}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "Вакансия не найдена"
// @Router /applications [post]
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req dto.ApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind application form", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	file, err := c.FormFile("resume")
	switch {
	case err == nil:
		req.Resume = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// резюме необязательно
	default:
		logger.CtxWithError(c.Request.Context(), "Failed to read resume file", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid resume file"))
		return
	}

	application, err := h.applicationService.SubmitApplication(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Application submitted successfully", application)
}

// ListApplications godoc
// @Summary Список откликов
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус или all"
// @Param position query string false "Должность"
// @Param jobId query string false "ID вакансии"
// @Param search query string false "Поиск по имени, email и должности"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} Response{data=[]models.Application}
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var q dto.ApplicationListQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	result, err := h.applicationService.ListApplications(c.Request.Context(), h.GetDB(c), q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Page(c, result)
}

// GetApplication godoc
// @Summary Отклик по ID
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Success 200 {object} Response{data=models.Application}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	application, err := h.applicationService.GetApplication(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", application)
}

// DownloadResume godoc
// @Summary Скачать резюме
// @Tags applications
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Success 200 {file} file
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{id}/resume [get]
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	resume, err := h.applicationService.OpenResume(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer resume.Reader.Close()

	c.DataFromReader(http.StatusOK, resume.Size, resume.MimeType, resume.Reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", resume.Name),
	})
}

// UpdateApplication godoc
// @Summary Обновить отклик
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Param request body dto.UpdateApplicationRequest true "Изменяемые поля"
// @Success 200 {object} Response{data=models.Application}
// @Router /applications/{id} [put]
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	var req dto.UpdateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateApplication(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Application updated successfully", application)
}

// UpdateApplicationStatus godoc
// @Summary Сменить статус отклика
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Param request body dto.ApplicationStatusRequest true "Новый статус"
// @Success 200 {object} Response{data=models.Application}
// @Router /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	var req dto.ApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateApplicationStatus(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, fmt.Sprintf("Application status updated to %s", application.Status), application)
}

// DeleteApplication godoc
// @Summary Удалить отклик
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Success 200 {object} Response
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	if err := h.applicationService.DeleteApplication(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Application deleted successfully", nil)
}

// GetApplicationStats godoc
// @Summary Статистика откликов
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=dto.ApplicationStats}
// @Router /applications/stats [get]
func (h *ApplicationHandler) GetApplicationStats(c *gin.Context) {
	stats, err := h.applicationService.GetApplicationStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", stats)
}
