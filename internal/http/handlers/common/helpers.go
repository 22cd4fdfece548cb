package common

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

var errMalformedBody = apperror.New(apperror.ErrCodeInvalidInput, "Cuerpo de la solicitud inválido.")

// Credential возвращает ключ доступа запроса. Если CredentialMiddleware
// не подключён, ключ читается прямо из заголовка.
func Credential(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextCredentialKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return c.GetHeader(middleware.CredentialHeader)
}

// RequireCredential отвечает 401, если ключ не передан.
func RequireCredential(c *gin.Context) (string, bool) {
	cred := Credential(c)
	if cred == "" {
		RespondError(c, apperror.ErrMissingCredential)
		return "", false
	}
	return cred, true
}

// ParseIDParam разбирает положительный целый id из пути.
func ParseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, apperror.New(apperror.ErrCodeInvalidInput, "El parámetro "+paramName+" debe ser un entero positivo."))
		return 0, false
	}
	return id, true
}

// BindJSON разбирает тело запроса; при ошибке сразу отвечает 400.
// Пустое тело допускается: обязательные поля проверяет вызывающий.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, apperror.Wrap(err, errMalformedBody.Code, errMalformedBody.Message))
		return false
	}
	return true
}

// RespondError пишет {"detail": ...}. Неизвестные ошибки логируются
// и отдаются как 500 без подробностей.
func RespondError(c *gin.Context, err error) {
	status, message := apperror.Response(err)
	if status >= http.StatusInternalServerError && logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Unhandled request error")
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: message})
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondDetail отвечает только сообщением.
func RespondDetail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, dto.DetailResponse{Detail: detail})
}
