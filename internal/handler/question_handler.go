package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/internal/handler/dto"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// QuestionHandler обрабатывает запросы к банку вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestion обрабатывает запрос на создание одного вопроса (админ)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req service.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(req)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// ImportQuestionsRequest представляет запрос на пакетный импорт вопросов
type ImportQuestionsRequest struct {
	Questions []service.QuestionInput `json:"questions" binding:"required,min=1"`
}

// ImportQuestions обрабатывает пакетный импорт вопросов (админ).
// Ошибка валидации любого вопроса отклоняет весь пакет.
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	var req ImportQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.questionService.ImportBatch(req.Questions)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	log.Printf("[QuestionHandler] Импортировано вопросов: %d", len(questions))
	c.JSON(http.StatusCreated, gin.H{"imported": len(questions)})
}

// GetQuestion возвращает вопрос по ID (без правильного ответа)
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	question, err := h.questionService.GetQuestion(questionID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// ListQuestions возвращает вопросы, опционально отфильтрованные по теме
// через query-параметр topic_id
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var topicID *uint
	if raw := c.Query("topic_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic_id"})
			return
		}
		v := uint(id)
		topicID = &v
	}

	questions, err := h.questionService.ListQuestions(topicID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": dto.NewQuestionListResponse(questions),
		"total":     len(questions),
	})
}

// DeleteQuestion удаляет вопрос (админ)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// ListTopics возвращает все темы с количеством вопросов
func (h *QuestionHandler) ListTopics(c *gin.Context) {
	topics, err := h.questionService.ListTopics()
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
