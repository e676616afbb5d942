package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// TestSessionRepo реализует repository.TestSessionRepository
type TestSessionRepo struct {
	db *gorm.DB
}

// NewTestSessionRepo создает новый репозиторий тестовых сессий
func NewTestSessionRepo(db *gorm.DB) *TestSessionRepo {
	return &TestSessionRepo{db: db}
}

// Create создает новую тестовую сессию
func (r *TestSessionRepo) Create(session *entity.TestSession) error {
	return r.db.Create(session).Error
}

// GetByID возвращает сессию по ID
func (r *TestSessionRepo) GetByID(id uint) (*entity.TestSession, error) {
	var session entity.TestSession
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Update обновляет сессию
func (r *TestSessionRepo) Update(session *entity.TestSession) error {
	return r.db.Save(session).Error
}

// GetByUser возвращает все сессии пользователя (сначала свежие)
func (r *TestSessionRepo) GetByUser(userID string) ([]entity.TestSession, error) {
	var sessions []entity.TestSession
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
