package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// ExtractionHandler обрабатывает экстракцию вопросов из документов (админ)
type ExtractionHandler struct {
	extractionService *service.ExtractionService
}

// NewExtractionHandler создает новый обработчик экстракции
func NewExtractionHandler(extractionService *service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// ExtractRequest представляет запрос на экстракцию вопросов из текста
type ExtractRequest struct {
	Text           string `json:"text" binding:"required"`
	SourceDocument string `json:"source_document" binding:"required,max=255"`
}

// ExtractFromText прогоняет текст документа через LLM и сохраняет
// извлечённые вопросы. Запрос синхронный и может занимать десятки секунд
// на больших документах.
func (h *ExtractionHandler) ExtractFromText(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.extractionService.ExtractFromText(c.Request.Context(), req.Text, req.SourceDocument)
	if err != nil {
		h.handleExtractionError(c, err)
		return
	}

	log.Printf("[ExtractionHandler] Документ %q: извлечено %d вопросов", req.SourceDocument, result.Extracted)
	c.JSON(http.StatusOK, result)
}

func (h *ExtractionHandler) handleExtractionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ExtractionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
