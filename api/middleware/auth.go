package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sentipost/services"
)

// RequireAuth проверяет Bearer-токен и кладет сессию в контекст.
// surface ограничивает, с какой поверхности должен быть выдан токен.
func RequireAuth(auth *services.AuthService, surface services.Surface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		session, found := auth.Lookup(token)
		if !found {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}
		if session.Surface != surface {
			c.JSON(http.StatusForbidden, gin.H{"error": "Wrong surface for this token"})
			c.Abort()
			return
		}

		c.Set("token", token)
		c.Set("user_id", session.UserID)
		c.Next()
	}
}
