package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// ErrorHandler логирует ошибки запроса и, если хэндлер не успел ответить,
// отвечает {"detail": ...}. Внутренние ошибки маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := apperror.Response(err)

		if logger.Log != nil {
			entry := logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"code":   apperror.CodeOf(err),
				"status": status,
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
			if status >= 500 {
				entry.Error("Request error")
			} else {
				entry.Debug("Request rejected")
			}
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, dto.ErrorResponse{Detail: message})
	}
}
