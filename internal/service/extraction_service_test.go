package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// TestParseExtractionResponse_PlainArray — голый JSON-массив
func TestParseExtractionResponse_PlainArray(t *testing.T) {
	content := `[{"question_text": "What is 2+2?", "options": ["A) 3", "B) 4"], "correct_answer": "B", "topic": "Arithmetic", "difficulty_estimate": 1}]`

	questions, err := ParseExtractionResponse(content)

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is 2+2?", questions[0].QuestionText)
	assert.Equal(t, "B", questions[0].CorrectAnswer)
	assert.Equal(t, 1.0, questions[0].DifficultyEstimate)
}

// TestParseExtractionResponse_MarkdownFence — модель обернула ответ в ```json
func TestParseExtractionResponse_MarkdownFence(t *testing.T) {
	content := "```json\n[{\"question_text\": \"Q?\", \"options\": [\"A) 1\", \"B) 2\"], \"correct_answer\": \"A\"}]\n```"

	questions, err := ParseExtractionResponse(content)

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q?", questions[0].QuestionText)
}

// TestParseExtractionResponse_SurroundingText — массив вырезается по крайним скобкам
func TestParseExtractionResponse_SurroundingText(t *testing.T) {
	content := `Here are the questions I found: [{"question_text": "Q?", "options": ["A) 1", "B) 2"], "correct_answer": "A"}] Hope this helps!`

	questions, err := ParseExtractionResponse(content)

	require.NoError(t, err)
	require.Len(t, questions, 1)
}

// TestParseExtractionResponse_EmptyArray — "[]" валиден и даёт пустой результат
func TestParseExtractionResponse_EmptyArray(t *testing.T) {
	questions, err := ParseExtractionResponse("[]")

	require.NoError(t, err)
	assert.Empty(t, questions)
}

// TestParseExtractionResponse_NoArray — ответ без массива — ошибка
func TestParseExtractionResponse_NoArray(t *testing.T) {
	_, err := ParseExtractionResponse("I could not find any questions in this text.")
	assert.Error(t, err)
}

// TestSplitIntoChunks_Overlap — соседние фрагменты перекрываются,
// чтобы вопросы на границах не терялись
func TestSplitIntoChunks_Overlap(t *testing.T) {
	text := strings.Repeat("a", 250)

	chunks := SplitIntoChunks(text, 100, 20)

	require.NotEmpty(t, chunks)
	assert.Equal(t, 100, len(chunks[0]))
	// Шаг size-overlap=80: фрагменты [0,100), [80,180), [160,250)
	assert.Equal(t, 3, len(chunks))
}

// TestSplitIntoChunks_ShortText — текст короче размера фрагмента остаётся целым
func TestSplitIntoChunks_ShortText(t *testing.T) {
	chunks := SplitIntoChunks("short text", 3000, 500)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

// TestExtractFromText_Success — валидные вопросы сохраняются,
// невалидные (без вариантов) пропускаются
func TestExtractFromText_Success(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	topicRepo := new(MockTopicRepo)

	topicRepo.On("GetOrCreate", "Arithmetic", DefaultTopicCategory).
		Return(&entity.Topic{ID: 1, Name: "Arithmetic"}, nil)
	questionRepo.On("CreateBatch", mock.MatchedBy(func(qs []entity.Question) bool {
		return len(qs) == 1 && qs[0].QuestionText == "What is 2+2?"
	})).Return(nil)

	client := &stubChatCompleter{
		responses: []string{
			`[
				{"question_text": "What is 2+2?", "options": ["A) 3", "B) 4"], "correct_answer": "B", "topic": "Arithmetic", "difficulty_estimate": 2},
				{"question_text": "Broken question", "options": [], "correct_answer": "A"}
			]`,
		},
	}

	svc := NewExtractionService(client, NewQuestionService(questionRepo, topicRepo), ExtractionConfig{Model: "gpt-4o-mini"})

	result, err := svc.ExtractFromText(context.Background(), strings.Repeat("Sample exam text. ", 10), "sample.txt")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Extracted)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	questionRepo.AssertExpectations(t)
}

// TestExtractFromText_ChunkErrorDoesNotAbort — ошибка модели на фрагменте
// попадает в отчёт, но не прерывает обработку
func TestExtractFromText_ChunkErrorDoesNotAbort(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	topicRepo := new(MockTopicRepo)

	client := &stubChatCompleter{
		responses: []string{"not json at all"},
	}

	svc := NewExtractionService(client, NewQuestionService(questionRepo, topicRepo), ExtractionConfig{Model: "gpt-4o-mini"})

	result, err := svc.ExtractFromText(context.Background(), strings.Repeat("Sample exam text. ", 10), "sample.txt")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Extracted)
	assert.Len(t, result.Errors, 1)
}

// TestExtractFromText_EmptyInput — пустой документ отклоняется сразу
func TestExtractFromText_EmptyInput(t *testing.T) {
	svc := NewExtractionService(&stubChatCompleter{}, nil, ExtractionConfig{})

	_, err := svc.ExtractFromText(context.Background(), "   ", "empty.txt")
	assert.Error(t, err)
}
