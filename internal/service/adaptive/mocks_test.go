package adaptive

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
)

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
