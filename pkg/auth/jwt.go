package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// JWTService выпускает и проверяет токены доступа анонимных сессий.
// Ключ подписи симметричный (HS256) и задаётся конфигурацией.
type JWTService struct {
	secret        []byte
	expirationHrs int
}

// Claims — полезная нагрузка токена сессии
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24 * 30 // анонимные сессии живут долго
	}
	return &JWTService{
		secret:        []byte(secret),
		expirationHrs: expirationHrs,
	}, nil
}

// GenerateToken выпускает токен для пользователя
func (s *JWTService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expirationHrs) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает ID пользователя
func (s *JWTService) ParseToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Join(apperrors.ErrUnauthorized, err)
	}
	if claims.UserID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.UserID, nil
}
