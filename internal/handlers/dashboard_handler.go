package handlers

import (
	"triveni_backend/internal/middleware"
	"triveni_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AccessGuard) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(guard.RequireAuth(), guard.RequireAdmin())
	{
		dashboard.GET("/counts", h.GetDashboard)
	}
}

// GetDashboard godoc
// @Summary Сводка для админки
// @Description Счетчики, вовлеченность, распределения, рост за 30 дней, популярные статьи и последние события
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=dto.Dashboard}
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /dashboard/counts [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "", dashboard)
}
