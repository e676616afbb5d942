package dto

import (
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Правильный ответ не раскрывается — он возвращается только после попытки.
type QuestionResponse struct {
	ID               uint      `json:"id"`
	TopicID          uint      `json:"topic_id"`
	Topic            string    `json:"topic,omitempty"`
	QuestionText     string    `json:"question_text"`
	Options          []string  `json:"options"`
	DifficultyScore  float64   `json:"difficulty_score"`
	EstimatedTimeSec int       `json:"estimated_time_sec"`
	SourceDocument   string    `json:"source_document,omitempty"`
	SourcePage       int       `json:"source_page,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	return &QuestionResponse{
		ID:               q.ID,
		TopicID:          q.TopicID,
		Topic:            q.TopicName(),
		QuestionText:     q.QuestionText,
		Options:          q.Options,
		DifficultyScore:  q.DifficultyScore,
		EstimatedTimeSec: q.EstimatedTimeSec,
		SourceDocument:   q.SourceDocument,
		SourcePage:       q.SourcePage,
		CreatedAt:        q.CreatedAt,
	}
}

// NewQuestionListResponse создает список DTO вопросов
func NewQuestionListResponse(questions []entity.Question) []*QuestionResponse {
	result := make([]*QuestionResponse, 0, len(questions))
	for i := range questions {
		result = append(result, NewQuestionResponse(&questions[i]))
	}
	return result
}
