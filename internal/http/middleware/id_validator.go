package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
)

// IDValidator проверяет, что параметр пути — положительный целый id.
// Использование: router.GET("/chats/:id/", IDValidator("id"), handler.Get)
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Detail: "El parámetro " + paramName + " debe ser un entero positivo.",
			})
			return
		}

		c.Next()
	}
}
