package service

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) CreateBatch(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetAll(topicID *uint) ([]entity.Question, error) {
	args := m.Called(topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) CountByTopic() (map[uint]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]int64), args.Error(1)
}

// MockTopicRepo реализует repository.TopicRepository
type MockTopicRepo struct {
	mock.Mock
}

func (m *MockTopicRepo) GetAll() ([]entity.Topic, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Topic), args.Error(1)
}

func (m *MockTopicRepo) GetByID(id uint) (*entity.Topic, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topic), args.Error(1)
}

func (m *MockTopicRepo) GetByName(name string) (*entity.Topic, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topic), args.Error(1)
}

func (m *MockTopicRepo) GetOrCreate(name string, category string) (*entity.Topic, error) {
	args := m.Called(name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topic), args.Error(1)
}

// MockAttemptRepo реализует repository.AttemptRepository
type MockAttemptRepo struct {
	mock.Mock
}

func (m *MockAttemptRepo) Create(attempt *entity.Attempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetRecentByUser(userID string, limit int) ([]entity.Attempt, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) GetAttemptedQuestionIDs(userID string) (map[uint]bool, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockAttemptRepo) GetTopicStats(userID string) ([]repository.TopicStat, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TopicStat), args.Error(1)
}

func (m *MockAttemptRepo) GetDailyStats(userID string, days int) ([]repository.DailyStat, error) {
	args := m.Called(userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DailyStat), args.Error(1)
}

func (m *MockAttemptRepo) GetOverallStats(userID string) (int64, int64, float64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(float64), args.Error(3)
}

func (m *MockAttemptRepo) CountByTest(testID uint) (int64, int64, error) {
	args := m.Called(testID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockTestSessionRepo реализует repository.TestSessionRepository
type MockTestSessionRepo struct {
	mock.Mock
}

func (m *MockTestSessionRepo) Create(session *entity.TestSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockTestSessionRepo) GetByID(id uint) (*entity.TestSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TestSession), args.Error(1)
}

func (m *MockTestSessionRepo) Update(session *entity.TestSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockTestSessionRepo) GetByUser(userID string) ([]entity.TestSession, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TestSession), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// stubChatCompleter возвращает заранее заданные ответы модели по очереди
type stubChatCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubChatCompleter) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	idx := s.calls
	s.calls++

	if idx < len(s.errs) && s.errs[idx] != nil {
		return openai.ChatCompletionResponse{}, s.errs[idx]
	}

	content := "[]"
	if idx < len(s.responses) {
		content = s.responses[idx]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}
