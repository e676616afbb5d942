package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
}
