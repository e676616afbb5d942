package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// SessionHandler обрабатывает создание анонимных сессий
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession создаёт анонимного пользователя и возвращает токен доступа.
// Регистрации нет: сессия создаётся одним запросом без тела.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	user, token, err := h.sessionService.CreateSession()
	if err != nil {
		log.Printf("[SessionHandler] Ошибка создания сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":      user.ID,
		"access_token": token,
	})
}

// GetCurrentUser возвращает пользователя текущей сессии
func (h *SessionHandler) GetCurrentUser(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	user, err := h.sessionService.GetUser(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("[SessionHandler] Ошибка получения пользователя %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
