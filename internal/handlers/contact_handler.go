package handlers

import (
	"triveni_backend/internal/middleware"
	"triveni_backend/internal/services"
	"triveni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AccessGuard) {
	contact := rg.Group("/contact")
	{
		contact.POST("", h.CreateContact)
	}

	admin := rg.Group("/contact")
	admin.Use(guard.RequireAuth(), guard.RequireAdmin())
	{
		admin.GET("", h.ListContacts)
		admin.GET("/stats/overview", h.GetContactStats)
		admin.PUT("/bulk/status", h.BulkUpdateStatus)
		admin.GET("/:id", h.GetContact)
		admin.PUT("/:id", h.UpdateContact)
		admin.DELETE("/:id", h.DeleteContact)
		admin.POST("/:id/notes", h.AddNote)
	}
}

// CreateContact godoc
// @Summary Отправить обращение
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Обращение"
// @Success 201 {object} Response{data=models.Contact}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Thank you for contacting us. We will get back to you soon.", contact)
}

// ListContacts godoc
// @Summary Список обращений
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, read, replied, closed или all"
// @Param priority query string false "low, medium, high"
// @Param assignedTo query string false "ID ответственного"
// @Param search query string false "Поиск по имени, email, компании и теме"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} Response{data=[]models.Contact}
// @Router /contact [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	var q dto.ContactListQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), h.GetDB(c), q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Page(c, result)
}

// GetContact godoc
// @Summary Обращение по ID
// @Description Новое обращение при открытии помечается прочитанным
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Success 200 {object} Response{data=models.Contact}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /contact/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.contactService.GetContact(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Contact fetched successfully", contact)
}

// UpdateContact godoc
// @Summary Обновить обращение
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Param request body dto.UpdateContactRequest true "Статус, приоритет, ответственный, заметка"
// @Success 200 {object} Response{data=models.Contact}
// @Router /contact/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Contact updated successfully", contact)
}

// AddNote godoc
// @Summary Добавить заметку
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Param request body dto.NoteRequest true "Заметка"
// @Success 200 {object} Response{data=models.Contact}
// @Router /contact/{id}/notes [post]
func (h *ContactHandler) AddNote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.NoteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contact, err := h.contactService.AddNote(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Note added successfully", contact)
}

// DeleteContact godoc
// @Summary Удалить обращение
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID обращения"
// @Success 200 {object} Response
// @Router /contact/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.contactService.DeleteContact(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Contact deleted successfully", nil)
}

// BulkUpdateStatus godoc
// @Summary Массовая смена статуса
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStatusRequest true "ID и новый статус"
// @Success 200 {object} Response{data=dto.BulkStatusResult}
// @Router /contact/bulk/status [put]
func (h *ContactHandler) BulkUpdateStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.contactService.BulkUpdateStatus(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Contacts status updated successfully", result)
}

// GetContactStats godoc
// @Summary Статистика обращений
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=dto.ContactStats}
// @Router /contact/stats/overview [get]
func (h *ContactHandler) GetContactStats(c *gin.Context) {
	stats, err := h.contactService.GetContactStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Stats fetched successfully", stats)
}
