package repository

import (
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// TopicStat — агрегат точности пользователя по одной теме.
// Инвариант: Attempts >= Correct >= 0.
type TopicStat struct {
	TopicID    uint    `json:"topic_id"`
	TopicName  string  `json:"topic_name"`
	Attempts   int     `json:"attempts"`
	Correct    int     `json:"correct"`
	AvgTimeSec float64 `json:"avg_time_sec"`
}

// DailyStat — агрегат попыток пользователя за календарный день
type DailyStat struct {
	Day          time.Time `json:"day"`
	CorrectCount int       `json:"correct_count"`
}

// AttemptRepository определяет методы для работы с историей попыток
type AttemptRepository interface {
	Create(attempt *entity.Attempt) error

	// GetRecentByUser возвращает последние попытки пользователя
	// (сначала самые свежие) с предзагруженным вопросом и его темой.
	GetRecentByUser(userID string, limit int) ([]entity.Attempt, error)

	// GetAttemptedQuestionIDs возвращает ID всех вопросов,
	// на которые пользователь когда-либо отвечал.
	GetAttemptedQuestionIDs(userID string) (map[uint]bool, error)

	// GetTopicStats возвращает агрегаты точности пользователя по темам
	GetTopicStats(userID string) ([]TopicStat, error)

	// GetDailyStats возвращает дневные агрегаты за последние days дней
	// (сначала самые свежие). Используется для расчёта стрика.
	GetDailyStats(userID string, days int) ([]DailyStat, error)

	// GetOverallStats возвращает общие счётчики пользователя
	GetOverallStats(userID string) (total int64, correct int64, avgTimeSec float64, err error)

	// CountByTest возвращает число попыток и число правильных в рамках теста
	CountByTest(testID uint) (total int64, correct int64, err error)
}
