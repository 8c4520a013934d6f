package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/password"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
	"github.com/magabrotheeeer/dues-ledger/internal/storage/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestService_Login(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	admin := &models.User{ID: 1, Email: "admin@example.com", PasswordHash: hash, Role: models.RoleAdmin}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "успешный вход",
			email:    "admin@example.com",
			password: "secret123",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()
			},
		},
		{
			name:     "неверный пароль",
			email:    "admin@example.com",
			password: "wrong",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "пользователь не найден",
			email:    "nobody@example.com",
			password: "secret123",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			expectedError: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMocks(repo)

			svc := New(repo, maker)
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, admin, user)

				claims, err := maker.ParseToken(token)
				require.NoError(t, err)
				assert.Equal(t, admin.ID, claims.UserID)
				assert.Equal(t, models.RoleAdmin, claims.Role)
			}
			repo.AssertExpectations(t)
		})
	}
}
