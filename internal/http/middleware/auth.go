package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Заголовок и ключ контекста для ключа доступа.
const (
	CredentialHeader     = "X-API-Key"
	ContextCredentialKey = "apiKey"
)

// CredentialMiddleware кладёт ключ из заголовка X-API-Key в контекст.
// Проверка ключа выполняется сервисами: у разных маршрутов разные
// правила отказа (401 для студентов, 403 для модерации).
func CredentialMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextCredentialKey, strings.TrimSpace(c.GetHeader(CredentialHeader)))
		c.Next()
	}
}
