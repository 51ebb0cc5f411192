package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unity-app/unity-engine/internal/core/domain"
	"github.com/unity-app/unity-engine/internal/core/services"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: hashes the password and stores the user", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo, services.NewTokenService("secret", "unity", time.Hour, repo))
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.Register(ctx, services.RegisterInput{
			Email: "Ada@Example.com", Password: "longenough", Timezone: "Europe/Rome",
		})

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Europe/Rome", user.Timezone)
		assert.NotEqual(t, "longenough", user.PasswordHash)
		assert.NoError(t, user.CheckPassword("longenough"))
	})

	t.Run("Fail: duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo, nil)
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		_, err := svc.Register(ctx, services.RegisterInput{Email: "a@b.co", Password: "longenough"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("Fail: validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input services.RegisterInput
			want  error
		}{
			{"bad email", services.RegisterInput{Email: "nope", Password: "longenough"}, domain.ErrInvalidEmail},
			{"short password", services.RegisterInput{Email: "a@b.co", Password: "short"}, domain.ErrPasswordTooShort},
			{"bad timezone", services.RegisterInput{Email: "a@b.co", Password: "longenough", Timezone: "Mars/Olympus"}, domain.ErrInvalidTimezone},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(MockUserRepo)
				_, err := services.NewAuthService(repo, nil).Register(ctx, tt.input)
				assert.ErrorIs(t, err, tt.want)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	user, err := domain.NewUser("u1", "ada@example.com", "")
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("correct-horse"))

	t.Run("Success: returns a token for the user", func(t *testing.T) {
		repo := new(MockUserRepo)
		tokens := services.NewTokenService("secret", "unity", time.Hour, repo)
		svc := services.NewAuthService(repo, tokens)
		repo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
		repo.On("GetByID", mock.Anything, "u1").Return(user, nil)

		res, err := svc.Login(ctx, " ADA@example.com ", "correct-horse")

		require.NoError(t, err)
		assert.Equal(t, "u1", res.User.ID)

		subject, err := tokens.ValidateToken(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", subject)
	})

	t.Run("Fail: wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo, nil)
		repo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)

		_, err := svc.Login(ctx, "ada@example.com", "wrong-horse")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: unknown email looks like bad credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo, nil)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "whatever1")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
