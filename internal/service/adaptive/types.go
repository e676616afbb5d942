package adaptive

import (
	"fmt"
	"time"

	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// Config содержит настройки адаптивного подбора вопросов
type Config struct {
	// HistoryLimit — сколько последних попыток загружать для оценки рейтинга
	HistoryLimit int

	// RecentWindow — размер окна «свежих» попыток внутри загруженной истории
	RecentWindow int

	// DefaultRating — рейтинг при отсутствии истории (средний уровень)
	DefaultRating float64

	// MinRating / MaxRating — границы рейтинга и сложности вопросов
	MinRating float64
	MaxRating float64

	// WeakAccuracyThreshold — порог точности, ниже которого тема считается слабой
	WeakAccuracyThreshold float64

	// DefaultTimeSec — подставляется вместо отсутствующего или нулевого времени ответа
	DefaultTimeSec int

	// StatsCacheTTL — время жизни кеша агрегатов по темам
	StatsCacheTTL time.Duration
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() *Config {
	return &Config{
		HistoryLimit:          50,
		RecentWindow:          20,
		DefaultRating:         3.0,
		MinRating:             1.0,
		MaxRating:             5.0,
		WeakAccuracyThreshold: 0.6,
		DefaultTimeSec:        120,
		StatsCacheTTL:         5 * time.Minute,
	}
}

// Dependencies содержит зависимости селектора
type Dependencies struct {
	AttemptRepo  repository.AttemptRepository
	QuestionRepo repository.QuestionRepository

	// CacheRepo опционален: при nil агрегаты по темам читаются напрямую из БД
	CacheRepo repository.CacheRepository
}

// TopicWeakness — тема, в которой пользователь показывает низкую точность
type TopicWeakness struct {
	Topic    string  `json:"topic"`
	Accuracy float64 `json:"accuracy"`
	Attempts int     `json:"attempts"`
}

// TopicStatsCacheKey возвращает ключ кеша агрегатов пользователя по темам.
// Экспортирован, чтобы сервис записи попыток мог инвалидировать кеш.
func TopicStatsCacheKey(userID string) string {
	return fmt.Sprintf("user:%s:topic_stats", userID)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
