package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем агрегатов.
// Значения хранятся сериализованными в JSON; Delete используется
// для инвалидации при записи попыток.
type CacheRepository interface {
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
}
