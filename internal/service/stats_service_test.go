package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/repository"
)

func day(offset int) time.Time {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, -offset)
}

// TestStreakFromDailyStats_ConsecutiveDays — три дня подряд с правильными
// ответами дают стрик 3
func TestStreakFromDailyStats_ConsecutiveDays(t *testing.T) {
	stats := []repository.DailyStat{
		{Day: day(0), CorrectCount: 5},
		{Day: day(1), CorrectCount: 2},
		{Day: day(2), CorrectCount: 1},
	}

	assert.Equal(t, 3, StreakFromDailyStats(stats))
}

// TestStreakFromDailyStats_GapBreaksStreak — разрыв больше одного дня рвёт серию
func TestStreakFromDailyStats_GapBreaksStreak(t *testing.T) {
	stats := []repository.DailyStat{
		{Day: day(0), CorrectCount: 5},
		{Day: day(1), CorrectCount: 2},
		{Day: day(4), CorrectCount: 7}, // разрыв в 3 дня
	}

	assert.Equal(t, 2, StreakFromDailyStats(stats))
}

// TestStreakFromDailyStats_Empty — без попыток стрик нулевой
func TestStreakFromDailyStats_Empty(t *testing.T) {
	assert.Equal(t, 0, StreakFromDailyStats(nil))
}

// TestStreakFromDailyStats_SingleDay — один день с правильным ответом — стрик 1
func TestStreakFromDailyStats_SingleDay(t *testing.T) {
	stats := []repository.DailyStat{{Day: day(0), CorrectCount: 1}}
	assert.Equal(t, 1, StreakFromDailyStats(stats))
}

// TestGetUserStats — сводный отчёт собирает счётчики, точность и разбивку по темам
func TestGetUserStats(t *testing.T) {
	attemptRepo := new(MockAttemptRepo)

	topicStats := []repository.TopicStat{
		{TopicName: "Algebra", Attempts: 10, Correct: 7},
	}
	attemptRepo.On("GetOverallStats", "u1").Return(int64(40), int64(30), 95.5, nil)
	attemptRepo.On("GetTopicStats", "u1").Return(topicStats, nil)
	attemptRepo.On("GetDailyStats", "u1", 30).Return([]repository.DailyStat{
		{Day: day(0), CorrectCount: 3},
	}, nil)

	svc := NewStatsService(attemptRepo)

	stats, err := svc.GetUserStats("u1")

	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.TotalAttempts)
	assert.Equal(t, int64(30), stats.CorrectAttempts)
	assert.InDelta(t, 75.0, stats.AccuracyPct, 1e-9)
	assert.InDelta(t, 95.5, stats.AvgTimeSec, 1e-9)
	assert.Equal(t, 1, stats.StreakDays)
	assert.Equal(t, topicStats, stats.TopicStats)
}

// TestGetUserStats_NoAttempts — деление на ноль не случается, точность 0
func TestGetUserStats_NoAttempts(t *testing.T) {
	attemptRepo := new(MockAttemptRepo)

	attemptRepo.On("GetOverallStats", "u1").Return(int64(0), int64(0), 0.0, nil)
	attemptRepo.On("GetTopicStats", "u1").Return([]repository.TopicStat{}, nil)
	attemptRepo.On("GetDailyStats", "u1", 30).Return([]repository.DailyStat{}, nil)

	svc := NewStatsService(attemptRepo)

	stats, err := svc.GetUserStats("u1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.AccuracyPct)
	assert.Equal(t, 0, stats.StreakDays)
}
