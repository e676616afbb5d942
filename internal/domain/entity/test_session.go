package entity

import (
	"time"
)

// TestSession представляет тестовую сессию пользователя (пробный тест).
// Создаётся при старте теста, завершается одним вызовом Complete.
type TestSession struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"size:36;not null;index" json:"user_id"`
	TestType       string     `gorm:"size:50;not null" json:"test_type"` // "practice", "mock", "topic"
	TotalQuestions int        `gorm:"not null" json:"total_questions"`
	Score          *int       `json:"score,omitempty"`
	TotalTimeSec   *int       `json:"total_time_sec,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (TestSession) TableName() string {
	return "test_sessions"
}

// IsCompleted сообщает, завершена ли сессия
func (t *TestSession) IsCompleted() bool {
	return t.CompletedAt != nil
}
