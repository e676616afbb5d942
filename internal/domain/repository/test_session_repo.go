package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// TestSessionRepository определяет методы для работы с тестовыми сессиями
type TestSessionRepository interface {
	Create(session *entity.TestSession) error
	GetByID(id uint) (*entity.TestSession, error)
	Update(session *entity.TestSession) error
	GetByUser(userID string) ([]entity.TestSession, error)
}
