package entity

import (
	"time"
)

// User представляет анонимного сессионного пользователя.
// Идентификатор — UUID, выдаваемый при создании сессии; ни email,
// ни пароля у пользователя нет.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}
