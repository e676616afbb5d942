package service

import (
	"fmt"
	"log"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	"github.com/yourusername/examprep-api/internal/service/adaptive"
)

// AttemptService записывает попытки ответов и проверяет их правильность
type AttemptService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// AttemptResult — результат проверки ответа, возвращаемый клиенту
type AttemptResult struct {
	AttemptID     uint   `json:"attempt_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

// RecordAttempt проверяет ответ пользователя, сохраняет попытку и
// инвалидирует кеш агрегатов по темам
func (s *AttemptService) RecordAttempt(
	userID string,
	questionID uint,
	userAnswer string,
	timeTakenSec *int,
	testID *uint,
) (*AttemptResult, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question %d: %w", questionID, err)
	}

	attempt := &entity.Attempt{
		UserID:       userID,
		QuestionID:   questionID,
		IsCorrect:    question.IsCorrect(userAnswer),
		TimeTakenSec: timeTakenSec,
		UserAnswer:   userAnswer,
		TestID:       testID,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	// Агрегаты пользователя устарели — сбрасываем кеш
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(adaptive.TopicStatsCacheKey(userID)); err != nil {
			log.Printf("[AttemptService] WARNING: не удалось сбросить кеш статистики для %s: %v", userID, err)
		}
	}

	return &AttemptResult{
		AttemptID:     attempt.ID,
		IsCorrect:     attempt.IsCorrect,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}, nil
}

// GetRecentAttempts возвращает последние попытки пользователя
func (s *AttemptService) GetRecentAttempts(userID string, limit int) ([]entity.Attempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.attemptRepo.GetRecentByUser(userID, limit)
}
