package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// TestHandler обрабатывает тестовые сессии
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler создает новый обработчик тестов
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// StartTestRequest представляет запрос на старт теста
type StartTestRequest struct {
	TestType       string `json:"test_type" binding:"required"`
	TotalQuestions int    `json:"total_questions" binding:"required,min=1,max=100"`
}

// StartTest создаёт новую тестовую сессию
func (h *TestHandler) StartTest(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req StartTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.testService.StartTest(userID, req.TestType, req.TotalQuestions)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// CompleteTestRequest представляет запрос на завершение теста
type CompleteTestRequest struct {
	TotalTimeSec int `json:"total_time_sec" binding:"min=0"`
}

// CompleteTest завершает сессию: балл считается по записанным попыткам
func (h *TestHandler) CompleteTest(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	testID := c.MustGet("testID").(uint)

	var req CompleteTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.testService.CompleteTest(testID, userID, req.TotalTimeSec)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetTest возвращает тестовую сессию владельца
func (h *TestHandler) GetTest(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	testID := c.MustGet("testID").(uint)

	session, err := h.testService.GetTest(testID, userID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ListTests возвращает все тестовые сессии пользователя
func (h *TestHandler) ListTests(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	sessions, err := h.testService.ListTests(userID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tests": sessions,
		"total": len(sessions),
	})
}

func (h *TestHandler) handleTestError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in TestHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
