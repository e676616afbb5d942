package adaptive

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// RatingFromHistory вычисляет рейтинг пользователя по истории попыток.
// history — попытки в порядке «сначала свежие», уже отфильтрованные по теме,
// если фильтр был задан. Результат всегда в [MinRating, MaxRating].
func RatingFromHistory(history []entity.Attempt, cfg *Config) float64 {
	if len(history) == 0 {
		return cfg.DefaultRating
	}

	// Ограничиваемся окном самых свежих попыток
	window := history
	if len(window) > cfg.RecentWindow {
		window = window[:cfg.RecentWindow]
	}

	correct := 0
	timeSum := 0
	for _, a := range window {
		if a.IsCorrect {
			correct++
		}
		// Отсутствующее или нулевое время считаем временем по умолчанию
		if a.TimeTakenSec != nil && *a.TimeTakenSec > 0 {
			timeSum += *a.TimeTakenSec
		} else {
			timeSum += cfg.DefaultTimeSec
		}
	}

	accuracy := float64(correct) / float64(len(window))
	avgTime := float64(timeSum) / float64(len(window))

	rating := cfg.DefaultRating

	// Коррекция по точности. Ветки проверяются строго в этом порядке;
	// NB: ветка accuracy > 0.9 недостижима — условие > 0.8 срабатывает раньше.
	if accuracy < 0.4 {
		rating -= 0.8
	} else if accuracy < 0.6 {
		rating -= 0.4
	} else if accuracy > 0.8 {
		rating += 0.6
	} else if accuracy > 0.9 {
		rating += 1.0
	}

	// Коррекция по скорости: быстрые ответы поднимают рейтинг, медленные — снижают
	if avgTime < 60 {
		rating += 0.3
	} else if avgTime > 180 {
		rating -= 0.3
	}

	return clamp(rating, cfg.MinRating, cfg.MaxRating)
}

// filterByTopic оставляет только попытки на вопросы заданной темы.
// Попытки без предзагруженного вопроса отбрасываются: их тема неизвестна.
func filterByTopic(history []entity.Attempt, topicID uint) []entity.Attempt {
	filtered := make([]entity.Attempt, 0, len(history))
	for _, a := range history {
		if a.Question != nil && a.Question.TopicID == topicID {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
