package handlers

import (
	"triveni_backend/internal/middleware"
	"triveni_backend/internal/services"
	"triveni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    base,
		commentService: commentService,
	}
}

// RegisterRoutes - комментарии живут под /blogs/:id/comments, модерация под /comments/:id.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AccessGuard) {
	blogComments := rg.Group("/blogs/:id/comments")
	{
		blogComments.GET("", h.ListApproved)
		blogComments.POST("", h.AddComment)
		blogComments.GET("/all", guard.RequireAuth(), guard.RequireAdmin(), h.ListAll)
	}

	admin := rg.Group("/comments")
	admin.Use(guard.RequireAuth(), guard.RequireAdmin())
	{
		admin.PUT("/:id", h.UpdateComment)
		admin.DELETE("/:id", h.DeleteComment)
		admin.POST("/:id/reply", h.AddReply)
	}
}

// AddComment godoc
// @Summary Оставить комментарий
// @Description Комментарий попадает на модерацию (pending)
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "ID статьи"
// @Param request body dto.CommentRequest true "Комментарий"
// @Success 201 {object} Response{data=models.Comment}
// @Failure 400 {object} apperrors.ErrorResponse "Комментарии отключены"
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /blogs/{id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Comment added successfully", comment)
}

// ListApproved godoc
// @Summary Одобренные комментарии статьи
// @Tags comments
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} Response{data=[]models.Comment}
// @Router /blogs/{id}/comments [get]
func (h *CommentHandler) ListApproved(c *gin.Context) {
	comments, err := h.commentService.ListApproved(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", comments)
}

// ListAll godoc
// @Summary Все комментарии статьи для модерации
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Success 200 {object} Response{data=[]models.Comment}
// @Router /blogs/{id}/comments/all [get]
func (h *CommentHandler) ListAll(c *gin.Context) {
	comments, err := h.commentService.ListAll(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", comments)
}

// UpdateComment godoc
// @Summary Модерация комментария
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Param request body dto.UpdateCommentRequest true "Изменяемые поля"
// @Success 200 {object} Response{data=models.Comment}
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Comment updated successfully", comment)
}

// DeleteComment godoc
// @Summary Удалить комментарий
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Success 200 {object} Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.DeleteComment(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Comment deleted successfully", nil)
}

// AddReply godoc
// @Summary Ответить на комментарий
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Param request body dto.ReplyRequest true "Ответ"
// @Success 200 {object} Response{data=models.Comment}
// @Router /comments/{id}/reply [post]
func (h *CommentHandler) AddReply(c *gin.Context) {
	var req dto.ReplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddReply(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Reply added successfully", comment)
}
