package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/internal/handler/dto"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service/adaptive"
)

// AdaptiveHandler обрабатывает запросы адаптивного подбора вопросов
type AdaptiveHandler struct {
	selector *adaptive.Selector
}

// NewAdaptiveHandler создает новый обработчик адаптивного подбора
func NewAdaptiveHandler(selector *adaptive.Selector) *AdaptiveHandler {
	return &AdaptiveHandler{selector: selector}
}

// topicIDFromQuery разбирает опциональный query-параметр topic_id
func topicIDFromQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("topic_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic_id"})
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// GetNextQuestion возвращает следующий вопрос, подобранный под уровень
// пользователя. Пустой банк вопросов — 404, а не ошибка.
func (h *AdaptiveHandler) GetNextQuestion(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	topicID, ok := topicIDFromQuery(c)
	if !ok {
		return
	}

	question, err := h.selector.SelectNextQuestion(userID, topicID)
	if err != nil {
		h.handleAdaptiveError(c, err)
		return
	}
	if question == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions available"})
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// GetRating возвращает текущий рейтинг пользователя и целевую сложность
// следующего вопроса
func (h *AdaptiveHandler) GetRating(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	topicID, ok := topicIDFromQuery(c)
	if !ok {
		return
	}

	rating, err := h.selector.EstimateDifficulty(userID, topicID)
	if err != nil {
		h.handleAdaptiveError(c, err)
		return
	}

	target, err := h.selector.TargetDifficulty(userID, topicID)
	if err != nil {
		h.handleAdaptiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rating":            rating,
		"target_difficulty": target,
	})
}

// GetWeakTopics возвращает слабые темы пользователя, худшие первыми
func (h *AdaptiveHandler) GetWeakTopics(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	weak, err := h.selector.WeakTopics(userID)
	if err != nil {
		h.handleAdaptiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weak_topics": weak})
}

func (h *AdaptiveHandler) handleAdaptiveError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AdaptiveHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
