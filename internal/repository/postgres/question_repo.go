package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch создает пакет вопросов в одной транзакции
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

// GetByID возвращает вопрос по ID с предзагруженной темой
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Preload("Topic").First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetAll возвращает все вопросы, опционально отфильтрованные по теме
func (r *QuestionRepo) GetAll(topicID *uint) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.Preload("Topic").Order("id")
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountByTopic возвращает количество вопросов в каждой теме
func (r *QuestionRepo) CountByTopic() (map[uint]int64, error) {
	type row struct {
		TopicID uint
		Cnt     int64
	}
	var rows []row
	err := r.db.Model(&entity.Question{}).
		Select("topic_id, COUNT(*) as cnt").
		Group("topic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, rr := range rows {
		counts[rr.TopicID] = rr.Cnt
	}
	return counts, nil
}
