package adaptive

import (
	"sort"

	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// WeakTopicsFromStats отбирает темы с точностью ниже порога и сортирует их
// по возрастанию точности (худшие первыми). Сортировка стабильная: при равной
// точности сохраняется исходный порядок агрегатов.
func WeakTopicsFromStats(stats []repository.TopicStat, cfg *Config) []TopicWeakness {
	weak := make([]TopicWeakness, 0, len(stats))
	for _, ts := range stats {
		if ts.Attempts <= 0 {
			continue
		}
		accuracy := float64(ts.Correct) / float64(ts.Attempts)
		if accuracy < cfg.WeakAccuracyThreshold {
			weak = append(weak, TopicWeakness{
				Topic:    ts.TopicName,
				Accuracy: accuracy,
				Attempts: ts.Attempts,
			})
		}
	}

	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Accuracy < weak[j].Accuracy
	})
	return weak
}
