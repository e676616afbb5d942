package adaptive

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// Веса скоринга кандидатов
const (
	proximityWeight = 2.0  // множитель близости сложности к рейтингу
	noveltyBonus    = 10.0 // бонус за ещё не решённый вопрос
	weakTopicBonus  = 5.0  // бонус за вопрос из слабой темы
	jitterMax       = 2.0  // верхняя граница случайной добавки [0, jitterMax)
)

// Selector подбирает следующий вопрос под текущий уровень пользователя
type Selector struct {
	config *Config
	deps   *Dependencies

	// rand.Rand не потокобезопасен — доступ только под mu
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector создаёт новый селектор. rng может быть nil — тогда используется
// источник, засеянный текущим временем; тесты передают детерминированный.
func NewSelector(config *Config, deps *Dependencies, rng *rand.Rand) *Selector {
	if config == nil {
		config = DefaultConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{
		config: config,
		deps:   deps,
		rng:    rng,
	}
}

// uniform возвращает случайное число из [0, max)
func (s *Selector) uniform(max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() * max
}

// EstimateDifficulty возвращает текущий рейтинг пользователя в [1.0, 5.0].
// topicID != nil ограничивает историю попытками на вопросы этой темы;
// если после фильтрации история пуста, возвращается рейтинг по умолчанию.
func (s *Selector) EstimateDifficulty(userID string, topicID *uint) (float64, error) {
	history, err := s.deps.AttemptRepo.GetRecentByUser(userID, s.config.HistoryLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to load attempt history: %w", err)
	}

	if topicID != nil {
		history = filterByTopic(history, *topicID)
	}

	return RatingFromHistory(history, s.config), nil
}

// WeakTopics возвращает слабые темы пользователя (худшие первыми).
// Агрегаты по темам читаются через кеш с коротким TTL: история попыток
// меняется заметно реже, чем вызывается подбор вопроса.
func (s *Selector) WeakTopics(userID string) ([]TopicWeakness, error) {
	stats, err := s.topicStats(userID)
	if err != nil {
		return nil, err
	}
	return WeakTopicsFromStats(stats, s.config), nil
}

// topicStats возвращает агрегаты по темам, используя кеш при его наличии
func (s *Selector) topicStats(userID string) ([]repository.TopicStat, error) {
	if s.deps.CacheRepo == nil {
		return s.deps.AttemptRepo.GetTopicStats(userID)
	}

	key := TopicStatsCacheKey(userID)
	var cached []repository.TopicStat
	err := s.deps.CacheRepo.GetJSON(key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		// Ошибка Redis не должна ломать подбор — идём в БД
		log.Printf("[AdaptiveSelector] WARNING: ошибка чтения кеша статистики для %s: %v", userID, err)
	}

	stats, err := s.deps.AttemptRepo.GetTopicStats(userID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.deps.CacheRepo.SetJSON(key, stats, s.config.StatsCacheTTL); cacheErr != nil {
		log.Printf("[AdaptiveSelector] WARNING: не удалось записать кеш статистики для %s: %v", userID, cacheErr)
	}
	return stats, nil
}

// SelectNextQuestion выбирает следующий вопрос для пользователя.
// Возвращает (nil, nil), если пул кандидатов пуст.
func (s *Selector) SelectNextQuestion(userID string, topicID *uint) (*entity.Question, error) {
	rating, err := s.EstimateDifficulty(userID, topicID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.deps.QuestionRepo.GetAll(topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate questions: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	attempted, err := s.deps.AttemptRepo.GetAttemptedQuestionIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempted question ids: %w", err)
	}

	// Предпочитаем нерешённые вопросы; если решены все — пул не сужаем,
	// чтобы подбор никогда не возвращал «ничего» при непустом банке
	pool := make([]entity.Question, 0, len(candidates))
	for _, q := range candidates {
		if !attempted[q.ID] {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}

	weakSet := make(map[string]bool)
	weak, err := s.WeakTopics(userID)
	if err != nil {
		return nil, err
	}
	for _, wt := range weak {
		weakSet[wt.Topic] = true
	}

	// Максимум по скору; при равенстве остаётся первый встреченный кандидат
	var best *entity.Question
	bestScore := math.Inf(-1)
	for i := range pool {
		q := &pool[i]
		score := s.scoreQuestion(q, rating, attempted, weakSet)
		if score > bestScore {
			bestScore = score
			best = q
		}
	}

	log.Printf("[AdaptiveSelector] user=%s rating=%.2f pool=%d selected=%d (score=%.2f)",
		userID, rating, len(pool), best.ID, bestScore)
	return best, nil
}

// scoreQuestion вычисляет скор кандидата: близость сложности к рейтингу,
// бонусы за новизну и слабую тему, случайная добавка против зацикливания
func (s *Selector) scoreQuestion(q *entity.Question, rating float64, attempted map[uint]bool, weakSet map[string]bool) float64 {
	score := (s.config.MaxRating - math.Abs(q.DifficultyScore-rating)) * proximityWeight

	if !attempted[q.ID] {
		score += noveltyBonus
	}
	if weakSet[q.TopicName()] {
		score += weakTopicBonus
	}
	score += s.uniform(jitterMax)

	return score
}

// TargetDifficulty возвращает целевую сложность следующего вопроса:
// рейтинг пользователя с небольшой случайной вариацией, в [1.0, 5.0]
func (s *Selector) TargetDifficulty(userID string, topicID *uint) (float64, error) {
	rating, err := s.EstimateDifficulty(userID, topicID)
	if err != nil {
		return 0, err
	}

	target := rating + (s.uniform(1.0) - 0.5)
	return clamp(target, s.config.MinRating, s.config.MaxRating), nil
}
