package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

func validInput() QuestionInput {
	return QuestionInput{
		TopicName:     "Algebra",
		QuestionText:  "What is 2+2?",
		Options:       []string{"A) 3", "B) 4"},
		CorrectAnswer: "B",
	}
}

// TestImportBatch_CreatesQuestions — валидный пакет создаётся, тема резолвится
func TestImportBatch_CreatesQuestions(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	topicRepo := new(MockTopicRepo)

	topicRepo.On("GetOrCreate", "Algebra", DefaultTopicCategory).
		Return(&entity.Topic{ID: 3, Name: "Algebra"}, nil)
	questionRepo.On("CreateBatch", mock.MatchedBy(func(qs []entity.Question) bool {
		return len(qs) == 1 && qs[0].TopicID == 3 && qs[0].CorrectAnswer == "B"
	})).Return(nil)

	svc := NewQuestionService(questionRepo, topicRepo)

	questions, err := svc.ImportBatch([]QuestionInput{validInput()})

	require.NoError(t, err)
	require.Len(t, questions, 1)
	questionRepo.AssertExpectations(t)
}

// TestImportBatch_InvalidItemRejectsBatch — один невалидный вопрос отклоняет пакет
func TestImportBatch_InvalidItemRejectsBatch(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	topicRepo := new(MockTopicRepo)

	topicRepo.On("GetOrCreate", mock.Anything, mock.Anything).
		Return(&entity.Topic{ID: 1, Name: "Algebra"}, nil).Maybe()

	bad := validInput()
	bad.Options = []string{"A) 3"} // меньше двух вариантов

	svc := NewQuestionService(questionRepo, topicRepo)

	_, err := svc.ImportBatch([]QuestionInput{validInput(), bad})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	questionRepo.AssertNotCalled(t, "CreateBatch", mock.Anything)
}

// TestImportBatch_EmptyTopicFallsBackToGeneral — пустая тема заменяется General
func TestImportBatch_EmptyTopicFallsBackToGeneral(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	topicRepo := new(MockTopicRepo)

	topicRepo.On("GetOrCreate", DefaultTopicCategory, DefaultTopicCategory).
		Return(&entity.Topic{ID: 9, Name: DefaultTopicCategory}, nil)
	questionRepo.On("CreateBatch", mock.Anything).Return(nil)

	in := validInput()
	in.TopicName = "  "

	svc := NewQuestionService(questionRepo, topicRepo)

	questions, err := svc.ImportBatch([]QuestionInput{in})

	require.NoError(t, err)
	assert.Equal(t, uint(9), questions[0].TopicID)
	topicRepo.AssertExpectations(t)
}

// TestNormalizeDifficulty — нулевая сложность получает дефолт, края прижимаются
func TestNormalizeDifficulty(t *testing.T) {
	assert.Equal(t, DefaultDifficultyScore, NormalizeDifficulty(0))
	assert.Equal(t, MinDifficultyScore, NormalizeDifficulty(-2))
	assert.Equal(t, MaxDifficultyScore, NormalizeDifficulty(7.5))
	assert.Equal(t, 4.2, NormalizeDifficulty(4.2))
}

// TestListTopics — темы возвращаются с количеством вопросов
func TestListTopics(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	topicRepo := new(MockTopicRepo)

	topicRepo.On("GetAll").Return([]entity.Topic{
		{ID: 1, Name: "Algebra"},
		{ID: 2, Name: "Geometry"},
	}, nil)
	questionRepo.On("CountByTopic").Return(map[uint]int64{1: 12}, nil)

	svc := NewQuestionService(questionRepo, topicRepo)

	topics, err := svc.ListTopics()

	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, int64(12), topics[0].QuestionCount)
	assert.Equal(t, int64(0), topics[1].QuestionCount)
}
