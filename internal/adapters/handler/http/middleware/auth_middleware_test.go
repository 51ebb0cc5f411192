package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unity-app/unity-engine/internal/core/domain"
	"github.com/unity-app/unity-engine/internal/core/services"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type staticValidator map[string]string

func (v staticValidator) ValidateToken(_ context.Context, token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return "", errors.New("unknown token")
}

func protectedRouter(tokens TokenValidator) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "UserID not found in context")
			return
		}
		c.String(http.StatusOK, "Hello "+userID)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	secret := "test-secret-middleware"
	issuer := "test-issuer"

	t.Run("Success: Valid Token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		tokenService := services.NewTokenService(secret, issuer, time.Hour, mockRepo)
		router := protectedRouter(tokenService)

		mockRepo.On("GetByID", mock.Anything, "user-123").Return(&domain.User{ID: "user-123"}, nil)
		validToken, _ := tokenService.GenerateToken("user-123")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello user-123", w.Body.String())
	})

	t.Run("Fail: Missing Authorization Header", func(t *testing.T) {
		router := protectedRouter(staticValidator{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authorization header required")
	})

	t.Run("Fail: Invalid Header Format", func(t *testing.T) {
		router := protectedRouter(staticValidator{"12345": "u1"})

		for _, h := range []string{"Bearer", "Token 12345", "Bearer12345", "Bearer ", "Bearer 12345 extra"} {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", h)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "Should fail for header: "+h)
		}
	})

	t.Run("Fail: Token with Wrong Signature", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		router := protectedRouter(services.NewTokenService(secret, issuer, time.Hour, mockRepo))
		badToken, _ := services.NewTokenService("wrong-secret", issuer, time.Hour, mockRepo).GenerateToken("attacker")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+badToken)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("Fail: Deleted User", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		tokenService := services.NewTokenService(secret, issuer, time.Hour, mockRepo)
		router := protectedRouter(tokenService)

		mockRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
		token, _ := tokenService.GenerateToken("ghost")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
