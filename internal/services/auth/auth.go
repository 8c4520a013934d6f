// Package auth содержит бизнес-логику входа в систему и проверки токенов.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/password"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

// ErrInvalidCredentials неверная пара email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с учётными записями.
type UserRepository interface {
	// GetUserByEmail возвращает учётную запись по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает учётную запись по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// Service отвечает за аутентификацию администраторов и участников.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// CurrentUser возвращает учётную запись по ID из токена.
func (s *Service) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}
