package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"authgate/internal/services"
)

// CookieName — имя сессионной cookie.
const CookieName = "token"

// ContextUserID — ключ gin-контекста с id аутентифицированного пользователя.
const ContextUserID = "user_id"

// SessionAuth — проверяет cookie-токен и кладёт user_id в контекст запроса.
// Отказ — мягкий JSON с success:false и статусом 200: клиент смотрит только
// на флаг, статусы не трогаем.
func SessionAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"success": false,
				"message": "Not Authorized Login Again",
			})
			return
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"success": false,
				"message": "Not Authorized Login Again",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
