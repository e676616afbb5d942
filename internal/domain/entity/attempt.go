package entity

import (
	"time"
)

// Attempt представляет попытку пользователя ответить на вопрос.
// Запись неизменяема после создания.
type Attempt struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:36;not null;index" json:"user_id"`
	QuestionID   uint      `gorm:"not null;index" json:"question_id"`
	IsCorrect    bool      `gorm:"not null" json:"is_correct"`
	TimeTakenSec *int      `json:"time_taken_sec,omitempty"` // NULL, если клиент не замерял время
	UserAnswer   string    `gorm:"size:255" json:"user_answer,omitempty"`
	TestID       *uint     `gorm:"index" json:"test_id,omitempty"` // NULL вне тестовой сессии
	AttemptAt    time.Time `gorm:"autoCreateTime;index" json:"attempt_at"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}
