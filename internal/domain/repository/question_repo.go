package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	Update(question *entity.Question) error
	Delete(id uint) error

	// GetAll возвращает все вопросы с предзагруженной темой.
	// topicID == nil — без фильтра по теме.
	GetAll(topicID *uint) ([]entity.Question, error)

	// CountByTopic возвращает количество вопросов в каждой теме
	CountByTopic() (map[uint]int64, error)
}
