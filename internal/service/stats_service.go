package service

import (
	"fmt"

	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// streakLookbackDays — сколько последних дней учитывается при расчёте стрика
const streakLookbackDays = 30

// UserStats — сводный отчёт об успеваемости пользователя
type UserStats struct {
	TotalAttempts   int64                  `json:"total_attempts"`
	CorrectAttempts int64                  `json:"correct_attempts"`
	AccuracyPct     float64                `json:"accuracy_pct"`
	AvgTimeSec      float64                `json:"avg_time_sec"`
	StreakDays      int                    `json:"streak_days"`
	TopicStats      []repository.TopicStat `json:"topic_stats"`
}

// StatsService строит отчёты об успеваемости
type StatsService struct {
	attemptRepo repository.AttemptRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(attemptRepo repository.AttemptRepository) *StatsService {
	return &StatsService{attemptRepo: attemptRepo}
}

// GetUserStats возвращает сводный отчёт: общие счётчики, стрик и разбивку по темам
func (s *StatsService) GetUserStats(userID string) (*UserStats, error) {
	total, correct, avgTime, err := s.attemptRepo.GetOverallStats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load overall stats: %w", err)
	}

	topicStats, err := s.attemptRepo.GetTopicStats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic stats: %w", err)
	}

	dailyStats, err := s.attemptRepo.GetDailyStats(userID, streakLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}

	return &UserStats{
		TotalAttempts:   total,
		CorrectAttempts: correct,
		AccuracyPct:     accuracy,
		AvgTimeSec:      avgTime,
		StreakDays:      StreakFromDailyStats(dailyStats),
		TopicStats:      topicStats,
	}, nil
}

// StreakFromDailyStats считает длину серии дней подряд хотя бы с одним
// правильным ответом. stats идут от самого свежего дня к старым; серия
// рвётся на первом разрыве больше одного календарного дня.
func StreakFromDailyStats(stats []repository.DailyStat) int {
	streak := 0
	for i, day := range stats {
		if day.CorrectCount <= 0 {
			continue
		}
		if i == 0 {
			streak = 1
			continue
		}
		gap := stats[i-1].Day.Sub(day.Day).Hours() / 24
		if gap == 1 {
			streak++
		} else {
			break
		}
	}
	return streak
}
