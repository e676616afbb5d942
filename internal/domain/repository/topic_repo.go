package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// TopicRepository определяет методы для работы с темами
type TopicRepository interface {
	GetAll() ([]entity.Topic, error)
	GetByID(id uint) (*entity.Topic, error)
	GetByName(name string) (*entity.Topic, error)

	// GetOrCreate возвращает тему по имени, создавая её при отсутствии
	// (новые темы получают категорию category).
	GetOrCreate(name string, category string) (*entity.Topic, error)
}
