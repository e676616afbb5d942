package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// Границы сложности вопроса
const (
	MinDifficultyScore     = 1.0
	MaxDifficultyScore     = 5.0
	DefaultDifficultyScore = 3.0
)

// DefaultTopicCategory присваивается темам, создаваемым на лету
const DefaultTopicCategory = "General"

// QuestionInput — входные данные для создания вопроса
type QuestionInput struct {
	TopicName        string   `json:"topic"`
	QuestionText     string   `json:"question_text"`
	Options          []string `json:"options"`
	CorrectAnswer    string   `json:"correct_answer"`
	Explanation      string   `json:"explanation"`
	DifficultyScore  float64  `json:"difficulty_score"`
	EstimatedTimeSec int      `json:"estimated_time_sec"`
	SourceDocument   string   `json:"source_document"`
	SourcePage       int      `json:"source_page"`
}

// Validate проверяет обязательные поля вопроса
func (in *QuestionInput) Validate() error {
	if strings.TrimSpace(in.QuestionText) == "" {
		return fmt.Errorf("%w: question_text is required", apperrors.ErrValidation)
	}
	if len(in.Options) < 2 {
		return fmt.Errorf("%w: at least 2 options are required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(in.CorrectAnswer) == "" {
		return fmt.Errorf("%w: correct_answer is required", apperrors.ErrValidation)
	}
	return nil
}

// QuestionService управляет банком вопросов и темами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	topicRepo    repository.TopicRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, topicRepo repository.TopicRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		topicRepo:    topicRepo,
	}
}

// CreateQuestion создаёт один вопрос, заводя тему при необходимости
func (s *QuestionService) CreateQuestion(in QuestionInput) (*entity.Question, error) {
	questions, err := s.ImportBatch([]QuestionInput{in})
	if err != nil {
		return nil, err
	}
	return &questions[0], nil
}

// ImportBatch валидирует и создаёт пакет вопросов.
// Ошибка валидации любого элемента отклоняет весь пакет.
func (s *QuestionService) ImportBatch(inputs []QuestionInput) ([]entity.Question, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: empty question batch", apperrors.ErrValidation)
	}

	questions := make([]entity.Question, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}

		topicName := strings.TrimSpace(in.TopicName)
		if topicName == "" {
			topicName = DefaultTopicCategory
		}
		topic, err := s.topicRepo.GetOrCreate(topicName, DefaultTopicCategory)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve topic %q: %w", topicName, err)
		}

		questions = append(questions, entity.Question{
			TopicID:          topic.ID,
			QuestionText:     strings.TrimSpace(in.QuestionText),
			Options:          entity.StringArray(in.Options),
			CorrectAnswer:    strings.TrimSpace(in.CorrectAnswer),
			Explanation:      in.Explanation,
			DifficultyScore:  NormalizeDifficulty(in.DifficultyScore),
			EstimatedTimeSec: normalizeTime(in.EstimatedTimeSec),
			SourceDocument:   in.SourceDocument,
			SourcePage:       in.SourcePage,
		})
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, fmt.Errorf("failed to insert questions: %w", err)
	}
	return questions, nil
}

// GetQuestion возвращает вопрос по ID
func (s *QuestionService) GetQuestion(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// ListQuestions возвращает вопросы, опционально отфильтрованные по теме
func (s *QuestionService) ListQuestions(topicID *uint) ([]entity.Question, error) {
	return s.questionRepo.GetAll(topicID)
}

// DeleteQuestion удаляет вопрос
func (s *QuestionService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

// TopicWithCount — тема вместе с количеством вопросов в ней
type TopicWithCount struct {
	entity.Topic
	QuestionCount int64 `json:"question_count"`
}

// ListTopics возвращает все темы с количеством вопросов
func (s *QuestionService) ListTopics() ([]TopicWithCount, error) {
	topics, err := s.topicRepo.GetAll()
	if err != nil {
		return nil, err
	}
	counts, err := s.questionRepo.CountByTopic()
	if err != nil {
		return nil, err
	}

	result := make([]TopicWithCount, 0, len(topics))
	for _, topic := range topics {
		result = append(result, TopicWithCount{Topic: topic, QuestionCount: counts[topic.ID]})
	}
	return result, nil
}

// NormalizeDifficulty прижимает сложность к [1.0, 5.0];
// нулевое (незаполненное) значение заменяется средним
func NormalizeDifficulty(score float64) float64 {
	if score == 0 {
		return DefaultDifficultyScore
	}
	if score < MinDifficultyScore {
		return MinDifficultyScore
	}
	if score > MaxDifficultyScore {
		return MaxDifficultyScore
	}
	return score
}

func normalizeTime(sec int) int {
	if sec <= 0 {
		return 120
	}
	return sec
}
