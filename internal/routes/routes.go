package routes

import (
	"triveni_backend/internal/handlers"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/metrics"
	"triveni_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// staticDirs - публичные каталоги локального хранилища (URL -> путь на диске).
// Резюме туда не попадают: они отдаются только через /applications/:id/resume.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guard *middleware.AccessGuard,
	staticDirs map[string]string,
) {
	ginRouter.GET("/api/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/metrics", gin.WrapH(metrics.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	for url, dir := range staticDirs {
		ginRouter.Static(url, dir)
		logger.Info("Serving local uploads", "url", url, "dir", dir)
	}

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guard)
		appHandlers.JobHandler.RegisterRoutes(api, guard)
		appHandlers.ApplicationHandler.RegisterRoutes(api, guard)
		appHandlers.BlogHandler.RegisterRoutes(api, guard)
		appHandlers.CommentHandler.RegisterRoutes(api, guard)
		appHandlers.ContactHandler.RegisterRoutes(api, guard)
		appHandlers.DashboardHandler.RegisterRoutes(api, guard)
	}
}
