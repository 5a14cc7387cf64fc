package handlers

import (
	"net/http"
	"time"

	"triveni_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
	startedAt time.Time
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base, startedAt: time.Now()}
}

// Health godoc
// @Summary Проверка состояния
// @Description 503, если база данных недоступна
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := "OK"
	code := http.StatusOK

	if sqlDB, err := h.GetDB(c).DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		logger.CtxWarn(c.Request.Context(), "Health check: database unreachable")
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, Response{
		Success: code == http.StatusOK,
		Message: "Triveni API is running",
		Data: gin.H{
			"status":    status,
			"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
			"timestamp": time.Now().UTC(),
		},
	})
}
