package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	"github.com/yourusername/examprep-api/pkg/auth"
)

// SessionService создаёт анонимных сессионных пользователей и выдаёт им токены
type SessionService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewSessionService создает новый сервис сессий
func NewSessionService(userRepo repository.UserRepository, jwtService *auth.JWTService) *SessionService {
	return &SessionService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// CreateSession создаёт нового анонимного пользователя и возвращает его вместе
// с подписанным токеном доступа
func (s *SessionService) CreateSession() (*entity.User, string, error) {
	user := &entity.User{ID: uuid.NewString()}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// GetUser возвращает пользователя по ID
func (s *SessionService) GetUser(userID string) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
