package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create записывает попытку
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	return r.db.Create(attempt).Error
}

// GetRecentByUser возвращает последние попытки пользователя (сначала свежие)
// с предзагруженным вопросом и его темой — для фильтрации истории по теме
func (r *AttemptRepo) GetRecentByUser(userID string, limit int) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.
		Preload("Question").
		Preload("Question.Topic").
		Where("user_id = ?", userID).
		Order("attempt_at DESC, id DESC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// GetAttemptedQuestionIDs возвращает ID всех вопросов, на которые пользователь отвечал
func (r *AttemptRepo) GetAttemptedQuestionIDs(userID string) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&entity.Attempt{}).
		Where("user_id = ?", userID).
		Distinct("question_id").
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}

	attempted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		attempted[id] = true
	}
	return attempted, nil
}

// GetTopicStats возвращает агрегаты точности пользователя по темам.
// COALESCE нужен для time_taken_sec: колонка допускает NULL.
func (r *AttemptRepo) GetTopicStats(userID string) ([]repository.TopicStat, error) {
	var stats []repository.TopicStat
	err := r.db.Raw(`
		SELECT
			t.id AS topic_id,
			t.name AS topic_name,
			COUNT(*) AS attempts,
			COUNT(*) FILTER (WHERE a.is_correct) AS correct,
			AVG(COALESCE(a.time_taken_sec, 0)) AS avg_time_sec
		FROM attempts a
		JOIN questions q ON a.question_id = q.id
		JOIN topics t ON q.topic_id = t.id
		WHERE a.user_id = ?
		GROUP BY t.id, t.name
		ORDER BY attempts DESC
	`, userID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetDailyStats возвращает дневные агрегаты за последние days дней (сначала свежие)
func (r *AttemptRepo) GetDailyStats(userID string, days int) ([]repository.DailyStat, error) {
	var stats []repository.DailyStat
	err := r.db.Raw(`
		SELECT
			DATE(a.attempt_at) AS day,
			COUNT(*) FILTER (WHERE a.is_correct) AS correct_count
		FROM attempts a
		WHERE a.user_id = ?
		GROUP BY DATE(a.attempt_at)
		ORDER BY day DESC
		LIMIT ?
	`, userID, days).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetOverallStats возвращает общие счётчики пользователя
func (r *AttemptRepo) GetOverallStats(userID string) (int64, int64, float64, error) {
	var row struct {
		Total      int64
		Correct    int64
		AvgTimeSec float64
	}
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_correct) AS correct,
			COALESCE(AVG(time_taken_sec), 0) AS avg_time_sec
		FROM attempts
		WHERE user_id = ?
	`, userID).Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Total, row.Correct, row.AvgTimeSec, nil
}

// CountByTest возвращает число попыток и число правильных в рамках теста
func (r *AttemptRepo) CountByTest(testID uint) (int64, int64, error) {
	var row struct {
		Total   int64
		Correct int64
	}
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_correct) AS correct
		FROM attempts
		WHERE test_id = ?
	`, testID).Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Correct, nil
}
