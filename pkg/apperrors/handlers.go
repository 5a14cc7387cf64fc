package apperrors

import (
	"net/http"
	"sync/atomic"

	"triveni_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - тело ответа об ошибке. Поля совпадают с общим конвертом ответа.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

var debugMode atomic.Bool

// SetDebug включает вывод внутренних ошибок в ответе (только не в production).
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// HandleError - пишет ошибку в ответ и прерывает цепочку обработчиков.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	resp := ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Error:   string(appErr.Code),
		Errors:  appErr.Details,
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), "server error", "error", appErr.Error())
		if debugMode.Load() && appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
