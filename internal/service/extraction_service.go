package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// Параметры нарезки текста на фрагменты для LLM
const (
	extractionChunkSize    = 3000
	extractionChunkOverlap = 500
	minChunkLen            = 50
)

// extractionSystemPrompt требует от модели строгий JSON-массив вопросов.
// Формулировки подобраны под извлечение MCQ из экзаменационных материалов.
const extractionSystemPrompt = `You are an expert at extracting exam questions from study documents.
Extract ONLY actual questions with their answer options and correct answers.

CRITICAL RULES:
1. Extract ONLY complete questions that have:
   - A question statement (ending with "?" or clearly a problem to solve)
   - Multiple choice options (A, B, C, D or numbered options)
   - A visible correct answer or answer marked in the text

2. DO NOT extract:
   - Explanatory text or theory
   - Incomplete questions
   - Questions without answer options
   - General statements or tips

3. For each valid question, extract:
   - question_text: The complete question/problem statement
   - options: List of ALL answer options EXACTLY as they appear (e.g., ["A) 10", "B) 20", "C) 30", "D) 40"])
   - correct_answer: The correct answer letter (A, B, C, or D) - look for "Answer:", "Correct Answer:", or marked answers
   - explanation: Solution/explanation if provided (empty string if none)
   - topic: Based on question content - Arithmetic, Algebra, Geometry, Number Systems, Data Interpretation, Logical Reasoning, Reading Comprehension, Para Jumbles, Vocabulary, or General
   - difficulty_estimate: 1-5 based on complexity (1=very easy, 3=medium, 5=very hard)

4. Format requirements:
   - Return ONLY a valid JSON array
   - Each question must have question_text, options, and correct_answer
   - Options must be actual values, NOT placeholders like "Option A"
   - If correct answer not found, try to infer from context or skip the question
   - If no valid questions found, return empty array: []

Return ONLY valid JSON array, no markdown, no explanations.`

// jsonFenceRe вырезает JSON-массив из markdown-ограждения, если модель
// проигнорировала требование отвечать голым JSON
var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")

// ChatCompleter — минимальный интерфейс OpenAI-клиента, нужный экстрактору.
// *openai.Client ему удовлетворяет; тесты подставляют заглушку.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ExtractionConfig — настройки LLM-экстракции
type ExtractionConfig struct {
	Model       string
	Temperature float32
}

// extractedQuestion — одна запись из ответа модели
type extractedQuestion struct {
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectAnswer      string   `json:"correct_answer"`
	Explanation        string   `json:"explanation"`
	Topic              string   `json:"topic"`
	DifficultyEstimate float64  `json:"difficulty_estimate"`
}

// ExtractionResult — итог обработки одного документа
type ExtractionResult struct {
	ChunksProcessed int      `json:"chunks_processed"`
	Extracted       int      `json:"extracted"`
	Skipped         int      `json:"skipped"`
	Errors          []string `json:"errors,omitempty"`
}

// ExtractionService извлекает вопросы из сырого текста документов через LLM
type ExtractionService struct {
	client          ChatCompleter
	questionService *QuestionService
	config          ExtractionConfig
}

// NewExtractionService создает новый сервис экстракции
func NewExtractionService(client ChatCompleter, questionService *QuestionService, config ExtractionConfig) *ExtractionService {
	return &ExtractionService{
		client:          client,
		questionService: questionService,
		config:          config,
	}
}

// ExtractFromText нарезает текст на фрагменты, прогоняет каждый через LLM
// и сохраняет валидные вопросы. Ошибка одного фрагмента не прерывает
// обработку остальных — она попадает в отчёт.
func (s *ExtractionService) ExtractFromText(ctx context.Context, text string, sourceDocument string) (*ExtractionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document text is empty", apperrors.ErrValidation)
	}

	chunks := SplitIntoChunks(text, extractionChunkSize, extractionChunkOverlap)
	result := &ExtractionResult{}

	for idx, chunk := range chunks {
		if len(chunk) < minChunkLen {
			continue
		}
		result.ChunksProcessed++

		extracted, err := s.extractFromChunk(ctx, chunk)
		if err != nil {
			log.Printf("[ExtractionService] Ошибка обработки фрагмента %d/%d: %v", idx+1, len(chunks), err)
			result.Errors = append(result.Errors, fmt.Sprintf("chunk %d: %v", idx+1, err))
			continue
		}

		inputs := make([]QuestionInput, 0, len(extracted))
		for _, eq := range extracted {
			if eq.QuestionText == "" || len(eq.Options) < 2 || eq.CorrectAnswer == "" {
				result.Skipped++
				continue
			}
			inputs = append(inputs, QuestionInput{
				TopicName:       eq.Topic,
				QuestionText:    eq.QuestionText,
				Options:         eq.Options,
				CorrectAnswer:   eq.CorrectAnswer,
				Explanation:     eq.Explanation,
				DifficultyScore: NormalizeDifficulty(eq.DifficultyEstimate),
				SourceDocument:  sourceDocument,
			})
		}
		if len(inputs) == 0 {
			continue
		}

		if _, err := s.questionService.ImportBatch(inputs); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("chunk %d insert: %v", idx+1, err))
			continue
		}
		result.Extracted += len(inputs)
	}

	log.Printf("[ExtractionService] Документ %q: фрагментов=%d, извлечено=%d, пропущено=%d, ошибок=%d",
		sourceDocument, result.ChunksProcessed, result.Extracted, result.Skipped, len(result.Errors))
	return result, nil
}

// extractFromChunk запрашивает модель и разбирает её ответ
func (s *ExtractionService) extractFromChunk(ctx context.Context, chunk string) ([]extractedQuestion, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: s.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Extract all complete questions with answer options from this text:\n\n" + chunk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return ParseExtractionResponse(resp.Choices[0].Message.Content)
}

// ParseExtractionResponse разбирает ответ модели: голый JSON-массив,
// массив в markdown-ограждении или массив, окружённый пояснениями
func ParseExtractionResponse(content string) ([]extractedQuestion, error) {
	content = strings.TrimSpace(content)

	if m := jsonFenceRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	} else if !strings.HasPrefix(content, "[") {
		// Модель добавила текст вокруг массива — вырезаем по крайним скобкам
		start := strings.Index(content, "[")
		end := strings.LastIndex(content, "]")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON array found in model response")
		}
		content = content[start : end+1]
	}

	var questions []extractedQuestion
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return questions, nil
}

// SplitIntoChunks режет текст на перекрывающиеся фрагменты.
// Перекрытие нужно, чтобы не терять вопросы на границах фрагментов.
func SplitIntoChunks(text string, size, overlap int) []string {
	if size <= overlap {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	runes := []rune(text)
	step := size - overlap
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[i:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
