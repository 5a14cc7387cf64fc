package handlers

import (
	"context"

	"triveni_backend/internal/middleware"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services"
	"triveni_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogHandler struct {
	*BaseHandler
	blogService services.BlogService
}

func NewBlogHandler(base *BaseHandler, blogService services.BlogService) *BlogHandler {
	return &BlogHandler{
		BaseHandler: base,
		blogService: blogService,
	}
}

func (h *BlogHandler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AccessGuard) {
	blogs := rg.Group("/blogs")
	{
		blogs.GET("", guard.OptionalAuth(), h.ListBlogs)
		blogs.GET("/featured", h.GetFeatured)
		blogs.GET("/popular", h.GetPopular)
		blogs.GET("/search", h.SearchBlogs)
		blogs.GET("/category/:category", h.ListByCategory)
		blogs.GET("/related/:id", h.GetRelated)
		blogs.GET("/:id", h.GetBySlug)
		blogs.PATCH("/:id/views", h.IncrementViews)
		blogs.PATCH("/:id/like", h.LikeBlog)
		blogs.PATCH("/:id/share", h.ShareBlog)
	}

	admin := rg.Group("/blogs")
	admin.Use(guard.RequireAuth(), guard.RequireAdmin())
	{
		admin.POST("", h.CreateBlog)
		admin.POST("/upload-image", h.UploadImage)
		admin.GET("/admin/:id", h.GetByID)
		admin.PUT("/:id", h.UpdateBlog)
		admin.DELETE("/:id", h.DeleteBlog)
	}
}

// CreateBlog godoc
// @Summary Создать статью
// @Description Slug выводится из заголовка, если не задан. Статус по умолчанию published
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlogRequest true "Статья"
// @Success 201 {object} Response{data=models.Blog}
// @Failure 409 {object} apperrors.ErrorResponse "Slug занят"
// @Router /blogs [post]
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req dto.BlogRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	blog, err := h.blogService.CreateBlog(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Blog created successfully", blog)
}

// ListBlogs godoc
// @Summary Список статей
// @Description Посетители видят только опубликованные. Администратор с admin=true видит все
// @Tags blogs
// @Produce json
// @Param category query string false "Категория"
// @Param status query string false "Статус (для администратора)"
// @Param featured query bool false "Только избранные"
// @Param admin query bool false "Режим админки"
// @Param search query string false "Поиск"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} Response{data=[]models.Blog}
// @Router /blogs [get]
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	var q dto.BlogListQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	result, err := h.blogService.ListBlogs(c.Request.Context(), h.GetDB(c), q, middleware.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Page(c, result)
}

// SearchBlogs godoc
// @Summary Поиск по статьям
// @Tags blogs
// @Produce json
// @Param q query string true "Строка поиска"
// @Param category query string false "Категория"
// @Success 200 {object} Response{data=[]models.Blog}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /blogs/search [get]
func (h *BlogHandler) SearchBlogs(c *gin.Context) {
	var q dto.BlogSearchQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	result, err := h.blogService.SearchBlogs(c.Request.Context(), h.GetDB(c), q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Page(c, result)
}

// ListByCategory godoc
// @Summary Статьи категории
// @Tags blogs
// @Produce json
// @Param category path string true "Категория"
// @Success 200 {object} Response{data=[]models.Blog}
// @Router /blogs/category/{category} [get]
func (h *BlogHandler) ListByCategory(c *gin.Context) {
	var q dto.PageQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	result, err := h.blogService.ListByCategory(c.Request.Context(), h.GetDB(c), c.Param("category"), q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Page(c, result)
}

// GetFeatured godoc
// @Summary Избранные статьи
// @Tags blogs
// @Produce json
// @Success 200 {object} Response{data=[]models.Blog}
// @Router /blogs/featured [get]
func (h *BlogHandler) GetFeatured(c *gin.Context) {
	blogs, err := h.blogService.GetFeatured(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", blogs)
}

// GetPopular godoc
// @Summary Популярные статьи
// @Tags blogs
// @Produce json
// @Param limit query int false "Сколько статей"
// @Success 200 {object} Response{data=[]models.Blog}
// @Router /blogs/popular [get]
func (h *BlogHandler) GetPopular(c *gin.Context) {
	blogs, err := h.blogService.GetPopular(c.Request.Context(), h.GetDB(c), ParseQueryInt(c, "limit", 0))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", blogs)
}

// GetRelated godoc
// @Summary Похожие статьи
// @Tags blogs
// @Produce json
// @Param id path string true "ID статьи"
// @Param limit query int false "Сколько статей"
// @Success 200 {object} Response{data=[]models.Blog}
// @Router /blogs/related/{id} [get]
func (h *BlogHandler) GetRelated(c *gin.Context) {
	blogs, err := h.blogService.GetRelated(c.Request.Context(), h.GetDB(c), c.Param("id"), ParseQueryInt(c, "limit", 0))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", blogs)
}

// GetBySlug godoc
// @Summary Статья по slug
// @Description Увеличивает счетчик просмотров
// @Tags blogs
// @Produce json
// @Param id path string true "Slug статьи"
// @Success 200 {object} Response{data=dto.BlogDetail}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /blogs/{id} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.blogService.GetBySlug(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", blog)
}

// GetByID godoc
// @Summary Статья по ID для редактирования
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Success 200 {object} Response{data=models.Blog}
// @Router /blogs/admin/{id} [get]
func (h *BlogHandler) GetByID(c *gin.Context) {
	blog, err := h.blogService.GetByID(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", blog)
}

// UpdateBlog godoc
// @Summary Обновить статью
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Param request body dto.UpdateBlogRequest true "Изменяемые поля"
// @Success 200 {object} Response{data=models.Blog}
// @Router /blogs/{id} [put]
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var req dto.UpdateBlogRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	blog, err := h.blogService.UpdateBlog(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Blog updated successfully", blog)
}

// DeleteBlog godoc
// @Summary Удалить статью вместе с комментариями
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Success 200 {object} Response
// @Router /blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	if err := h.blogService.DeleteBlog(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Blog deleted successfully", nil)
}

// IncrementViews godoc
// @Summary Засчитать просмотр
// @Tags blogs
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} Response{data=repositories.BlogCounters}
// @Router /blogs/{id}/views [patch]
func (h *BlogHandler) IncrementViews(c *gin.Context) {
	h.counter(c, "View count updated", h.blogService.IncrementViews)
}

// LikeBlog godoc
// @Summary Поставить лайк
// @Tags blogs
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} Response{data=repositories.BlogCounters}
// @Router /blogs/{id}/like [patch]
func (h *BlogHandler) LikeBlog(c *gin.Context) {
	h.counter(c, "Blog liked successfully", h.blogService.LikeBlog)
}

// ShareBlog godoc
// @Summary Засчитать репост
// @Tags blogs
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} Response{data=repositories.BlogCounters}
// @Router /blogs/{id}/share [patch]
func (h *BlogHandler) ShareBlog(c *gin.Context) {
	h.counter(c, "Share count updated", h.blogService.ShareBlog)
}

type counterFunc func(ctx context.Context, db *gorm.DB, id string) (*repositories.BlogCounters, error)

func (h *BlogHandler) counter(c *gin.Context, message string, increment counterFunc) {
	counters, err := increment(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, message, counters)
}

// UploadImage godoc
// @Summary Загрузить картинку для статьи
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Изображение (jpeg, png, gif, webp)"
// @Success 200 {object} Response{data=dto.ImageUpload}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /blogs/upload-image [post]
func (h *BlogHandler) UploadImage(c *gin.Context) {
	// без файла сервис вернет "File is required"
	file, _ := c.FormFile("image")

	upload, err := h.blogService.UploadImage(c.Request.Context(), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Image uploaded successfully", upload)
}
