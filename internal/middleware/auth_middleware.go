package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/pkg/auth"
)

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	jwtService *auth.JWTService
	adminToken string
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(jwtService *auth.JWTService, adminToken string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		adminToken: adminToken,
	}
}

// RequireAuth проверяет токен сессии и кладет ID пользователя в контекст
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			c.Abort()
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			c.Abort()
			return
		}

		userID, err := m.jwtService.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// AdminOnly проверяет административный токен в заголовке X-Admin-Token.
// Импорт вопросов и экстракция из документов доступны только администратору.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.adminToken == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access is not configured"})
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		// Сравнение за постоянное время
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.adminToken)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID извлекает ID пользователя, установленный RequireAuth
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
