package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/domain/entities"
	apperrors "github.com/scmc/club-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockRoleResolver struct {
	mock.Mock
}

func (m *MockRoleResolver) GetRole(ctx context.Context, email string) (entities.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.Role), args.Error(1)
}

func TestAuthMiddleware_Authenticated(t *testing.T) {
	t.Run("missing token is unauthorized", func(t *testing.T) {
		// Arrange
		verifier := new(MockTokenVerifier)
		auth := middleware.NewAuthMiddleware(verifier, new(MockRoleResolver))

		called := false
		handler := auth.Authenticated(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		rec := httptest.NewRecorder()

		// Act
		handler(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "unauthorized access")
		assert.False(t, called)
		verifier.AssertNotCalled(t, "Verify")
	})

	t.Run("invalid token is forbidden", func(t *testing.T) {
		verifier := new(MockTokenVerifier)
		auth := middleware.NewAuthMiddleware(verifier, new(MockRoleResolver))

		verifier.On("Verify", mock.Anything, "bad-token").
			Return("", apperrors.NewForbiddenError("invalid token"))

		handler := auth.Authenticated(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Forbidden Access")
	})

	t.Run("valid token exposes email to handler", func(t *testing.T) {
		verifier := new(MockTokenVerifier)
		auth := middleware.NewAuthMiddleware(verifier, new(MockRoleResolver))

		verifier.On("Verify", mock.Anything, "good-token").Return("player@example.com", nil)

		var gotEmail string
		handler := auth.Authenticated(func(w http.ResponseWriter, r *http.Request) {
			gotEmail, _ = middleware.EmailFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "player@example.com", gotEmail)
	})

	t.Run("malformed authorization header is unauthorized", func(t *testing.T) {
		verifier := new(MockTokenVerifier)
		auth := middleware.NewAuthMiddleware(verifier, new(MockRoleResolver))

		handler := auth.Authenticated(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		verifier := new(MockTokenVerifier)
		roles := new(MockRoleResolver)
		auth := middleware.NewAuthMiddleware(verifier, roles)

		verifier.On("Verify", mock.Anything, "admin-token").Return("admin@example.com", nil)
		roles.On("GetRole", mock.Anything, "admin@example.com").Return(entities.RoleAdmin, nil)

		handler := auth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		verifier := new(MockTokenVerifier)
		roles := new(MockRoleResolver)
		auth := middleware.NewAuthMiddleware(verifier, roles)

		verifier.On("Verify", mock.Anything, "user-token").Return("player@example.com", nil)
		roles.On("GetRole", mock.Anything, "player@example.com").Return(entities.RoleUser, nil)

		handler := auth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Forbidden Access")
	})
}

func TestAuthMiddleware_RequireMember(t *testing.T) {
	t.Run("plain user is forbidden", func(t *testing.T) {
		verifier := new(MockTokenVerifier)
		roles := new(MockRoleResolver)
		auth := middleware.NewAuthMiddleware(verifier, roles)

		verifier.On("Verify", mock.Anything, "user-token").Return("player@example.com", nil)
		roles.On("GetRole", mock.Anything, "player@example.com").Return(entities.RoleUser, nil)

		handler := auth.RequireMember(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/confirmed", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
