package service

import (
	"fmt"
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// Допустимые типы тестов
var validTestTypes = map[string]bool{
	"practice": true,
	"mock":     true,
	"topic":    true,
}

// TestService управляет жизненным циклом тестовых сессий
type TestService struct {
	testRepo    repository.TestSessionRepository
	attemptRepo repository.AttemptRepository
}

// NewTestService создает новый сервис тестов
func NewTestService(testRepo repository.TestSessionRepository, attemptRepo repository.AttemptRepository) *TestService {
	return &TestService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
	}
}

// StartTest создаёт новую тестовую сессию
func (s *TestService) StartTest(userID string, testType string, totalQuestions int) (*entity.TestSession, error) {
	if !validTestTypes[testType] {
		return nil, fmt.Errorf("%w: unknown test type %q", apperrors.ErrValidation, testType)
	}
	if totalQuestions <= 0 || totalQuestions > 100 {
		return nil, fmt.Errorf("%w: total_questions must be in 1..100", apperrors.ErrValidation)
	}

	now := time.Now()
	session := &entity.TestSession{
		UserID:         userID,
		TestType:       testType,
		TotalQuestions: totalQuestions,
		StartedAt:      &now,
	}
	if err := s.testRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}
	return session, nil
}

// CompleteTest завершает сессию: подсчитывает балл по записанным попыткам
// и фиксирует общее время. Повторное завершение — конфликт.
func (s *TestService) CompleteTest(testID uint, userID string, totalTimeSec int) (*entity.TestSession, error) {
	session, err := s.testRepo.GetByID(testID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if session.IsCompleted() {
		return nil, fmt.Errorf("%w: test %d is already completed", apperrors.ErrConflict, testID)
	}

	_, correct, err := s.attemptRepo.CountByTest(testID)
	if err != nil {
		return nil, fmt.Errorf("failed to count test attempts: %w", err)
	}

	now := time.Now()
	score := int(correct)
	session.Score = &score
	session.TotalTimeSec = &totalTimeSec
	session.CompletedAt = &now

	if err := s.testRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to complete test session: %w", err)
	}
	return session, nil
}

// GetTest возвращает сессию, проверяя владельца
func (s *TestService) GetTest(testID uint, userID string) (*entity.TestSession, error) {
	session, err := s.testRepo.GetByID(testID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return session, nil
}

// ListTests возвращает все сессии пользователя (сначала свежие)
func (s *TestService) ListTests(userID string) ([]entity.TestSession, error) {
	return s.testRepo.GetByUser(userID)
}
