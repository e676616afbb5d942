package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// TopicRepo реализует repository.TopicRepository
type TopicRepo struct {
	db *gorm.DB
}

// NewTopicRepo создает новый репозиторий тем
func NewTopicRepo(db *gorm.DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// GetAll возвращает все темы
func (r *TopicRepo) GetAll() ([]entity.Topic, error) {
	var topics []entity.Topic
	if err := r.db.Order("id").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// GetByID возвращает тему по ID
func (r *TopicRepo) GetByID(id uint) (*entity.Topic, error) {
	var topic entity.Topic
	err := r.db.First(&topic, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &topic, nil
}

// GetByName возвращает тему по имени
func (r *TopicRepo) GetByName(name string) (*entity.Topic, error) {
	var topic entity.Topic
	err := r.db.Where("name = ?", name).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &topic, nil
}

// GetOrCreate возвращает тему по имени, создавая её при отсутствии.
// ON CONFLICT DO NOTHING защищает от гонки двух параллельных экстракций.
func (r *TopicRepo) GetOrCreate(name string, category string) (*entity.Topic, error) {
	topic := entity.Topic{Name: name, Category: category}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&topic).Error
	if err != nil {
		return nil, err
	}

	// При конфликте Create не заполняет ID — перечитываем
	if topic.ID == 0 {
		return r.GetByName(name)
	}
	return &topic, nil
}
