package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// AttemptHandler обрабатывает попытки ответов на вопросы
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// RecordAttemptRequest представляет запрос на запись попытки
type RecordAttemptRequest struct {
	QuestionID   uint   `json:"question_id" binding:"required"`
	Answer       string `json:"answer" binding:"required"`
	TimeTakenSec *int   `json:"time_taken_sec,omitempty"`
	TestID       *uint  `json:"test_id,omitempty"`
}

// RecordAttempt записывает ответ пользователя и возвращает результат проверки
// вместе с правильным ответом и объяснением
func (h *AttemptHandler) RecordAttempt(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attemptService.RecordAttempt(userID, req.QuestionID, req.Answer, req.TimeTakenSec, req.TestID)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetRecentAttempts возвращает последние попытки пользователя.
// Количество задаётся query-параметром limit (по умолчанию 20, максимум 100).
func (h *AttemptHandler) GetRecentAttempts(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	attempts, err := h.attemptService.GetRecentAttempts(userID, limit)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": attempts,
		"total":    len(attempts),
	})
}

func (h *AttemptHandler) handleAttemptError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AttemptHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
