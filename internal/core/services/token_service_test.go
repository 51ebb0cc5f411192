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

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "u1"}

	t.Run("Round trip", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(user, nil)
		svc := services.NewTokenService("secret", "unity", time.Hour, repo)

		token, err := svc.GenerateToken("u1")
		require.NoError(t, err)

		subject, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "u1", subject)
	})

	t.Run("Expired token", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService("secret", "unity", -time.Minute, repo)

		token, err := svc.GenerateToken("u1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Foreign secret", func(t *testing.T) {
		repo := new(MockUserRepo)
		token, err := services.NewTokenService("other", "unity", time.Hour, repo).GenerateToken("u1")
		require.NoError(t, err)

		_, err = services.NewTokenService("secret", "unity", time.Hour, repo).ValidateToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		repo := new(MockUserRepo)
		token, err := services.NewTokenService("secret", "someone-else", time.Hour, repo).GenerateToken("u1")
		require.NoError(t, err)

		_, err = services.NewTokenService("secret", "unity", time.Hour, repo).ValidateToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Deleted user", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrUserNotFound)
		svc := services.NewTokenService("secret", "unity", time.Hour, repo)

		token, err := svc.GenerateToken("u1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Garbage", func(t *testing.T) {
		svc := services.NewTokenService("secret", "unity", time.Hour, new(MockUserRepo))
		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
