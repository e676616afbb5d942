package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос банка заданий.
// DifficultyScore всегда лежит в [1.0, 5.0] (проверяется при создании).
type Question struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	TopicID          uint        `gorm:"not null;index" json:"topic_id"`
	QuestionText     string      `gorm:"type:text;not null" json:"question_text"`
	Options          StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer    string      `gorm:"size:255;not null" json:"-"` // Скрыто от клиента до ответа
	Explanation      string      `gorm:"type:text" json:"explanation,omitempty"`
	DifficultyScore  float64     `gorm:"not null;default:3.0" json:"difficulty_score"`
	EstimatedTimeSec int         `gorm:"not null;default:120" json:"estimated_time_sec"`
	SourceDocument   string      `gorm:"size:255" json:"source_document,omitempty"`
	SourcePage       int         `json:"source_page,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`

	Topic *Topic `gorm:"foreignKey:TopicID" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// TopicName возвращает имя темы вопроса (пустая строка, если тема не загружена)
func (q *Question) TopicName() string {
	if q.Topic == nil {
		return ""
	}
	return q.Topic.Name
}

// IsCorrect проверяет ответ пользователя.
// Сравнение нечувствительно к регистру и окружающим пробелам:
// варианты хранятся как они извлечены из документа ("A) 10"), а клиент
// может прислать как полный вариант, так и букву.
func (q *Question) IsCorrect(answer string) bool {
	given := strings.ToLower(strings.TrimSpace(answer))
	want := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	return given != "" && given == want
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
