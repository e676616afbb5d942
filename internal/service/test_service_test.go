package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// TestStartTest_CreatesSession — сессия создаётся с временем старта
func TestStartTest_CreatesSession(t *testing.T) {
	testRepo := new(MockTestSessionRepo)
	attemptRepo := new(MockAttemptRepo)

	testRepo.On("Create", mock.MatchedBy(func(s *entity.TestSession) bool {
		return s.UserID == "u1" && s.TestType == "practice" && s.TotalQuestions == 10 && s.StartedAt != nil
	})).Return(nil)

	svc := NewTestService(testRepo, attemptRepo)

	session, err := svc.StartTest("u1", "practice", 10)

	require.NoError(t, err)
	assert.False(t, session.IsCompleted())
	testRepo.AssertExpectations(t)
}

// TestStartTest_RejectsUnknownType — неизвестный тип теста отклоняется
func TestStartTest_RejectsUnknownType(t *testing.T) {
	svc := NewTestService(new(MockTestSessionRepo), new(MockAttemptRepo))

	_, err := svc.StartTest("u1", "marathon", 10)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// TestStartTest_RejectsBadQuestionCount — количество вопросов ограничено 1..100
func TestStartTest_RejectsBadQuestionCount(t *testing.T) {
	svc := NewTestService(new(MockTestSessionRepo), new(MockAttemptRepo))

	_, err := svc.StartTest("u1", "practice", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.StartTest("u1", "practice", 500)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// TestCompleteTest_ComputesScore — балл равен числу правильных попыток в тесте
func TestCompleteTest_ComputesScore(t *testing.T) {
	testRepo := new(MockTestSessionRepo)
	attemptRepo := new(MockAttemptRepo)

	started := time.Now().Add(-10 * time.Minute)
	testRepo.On("GetByID", uint(7)).Return(&entity.TestSession{
		ID:             7,
		UserID:         "u1",
		TestType:       "practice",
		TotalQuestions: 10,
		StartedAt:      &started,
	}, nil)
	attemptRepo.On("CountByTest", uint(7)).Return(int64(10), int64(8), nil)
	testRepo.On("Update", mock.MatchedBy(func(s *entity.TestSession) bool {
		return s.Score != nil && *s.Score == 8 && s.CompletedAt != nil && *s.TotalTimeSec == 540
	})).Return(nil)

	svc := NewTestService(testRepo, attemptRepo)

	session, err := svc.CompleteTest(7, "u1", 540)

	require.NoError(t, err)
	assert.True(t, session.IsCompleted())
	assert.Equal(t, 8, *session.Score)
	testRepo.AssertExpectations(t)
}

// TestCompleteTest_WrongUser — чужую сессию завершить нельзя
func TestCompleteTest_WrongUser(t *testing.T) {
	testRepo := new(MockTestSessionRepo)

	testRepo.On("GetByID", uint(7)).Return(&entity.TestSession{ID: 7, UserID: "owner"}, nil)

	svc := NewTestService(testRepo, new(MockAttemptRepo))

	_, err := svc.CompleteTest(7, "intruder", 100)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

// TestCompleteTest_AlreadyCompleted — повторное завершение — конфликт
func TestCompleteTest_AlreadyCompleted(t *testing.T) {
	testRepo := new(MockTestSessionRepo)

	done := time.Now()
	testRepo.On("GetByID", uint(7)).Return(&entity.TestSession{
		ID:          7,
		UserID:      "u1",
		CompletedAt: &done,
	}, nil)

	svc := NewTestService(testRepo, new(MockAttemptRepo))

	_, err := svc.CompleteTest(7, "u1", 100)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

// TestCompleteTest_NotFound — отсутствие сессии пробрасывается как ErrNotFound
func TestCompleteTest_NotFound(t *testing.T) {
	testRepo := new(MockTestSessionRepo)
	testRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := NewTestService(testRepo, new(MockAttemptRepo))

	_, err := svc.CompleteTest(99, "u1", 100)

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
