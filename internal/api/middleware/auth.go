package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/providers"
)

type contextKey string

const emailContextKey contextKey = "auth.email"

// RoleResolver looks up the access level of a verified caller.
// Implemented by the user service.
type RoleResolver interface {
	GetRole(ctx context.Context, email string) (entities.Role, error)
}

// AuthMiddleware gates routes behind bearer-token verification and,
// for the stricter guards, a role check against the user store.
type AuthMiddleware struct {
	verifier providers.TokenVerifier
	roles    RoleResolver
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(verifier providers.TokenVerifier, roles RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		roles:    roles,
	}
}

// Authenticated requires a valid bearer token. A missing credential is
// 401; a present but unverifiable one is 403.
func (m *AuthMiddleware) Authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondAuthError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		email, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			respondAuthError(w, http.StatusForbidden, "Forbidden Access")
			return
		}

		ctx := ContextWithEmail(r.Context(), email)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin requires a valid token whose owner holds the admin role
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.requireRole(entities.RoleAdmin, next)
}

// RequireMember requires a valid token whose owner holds the member role
func (m *AuthMiddleware) RequireMember(next http.HandlerFunc) http.HandlerFunc {
	return m.requireRole(entities.RoleMember, next)
}

func (m *AuthMiddleware) requireRole(required entities.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticated(func(w http.ResponseWriter, r *http.Request) {
		email, _ := EmailFromContext(r.Context())

		role, err := m.roles.GetRole(r.Context(), email)
		if err != nil || role != required {
			respondAuthError(w, http.StatusForbidden, "Forbidden Access")
			return
		}

		next(w, r)
	})
}

// EmailFromContext returns the verified caller email placed by
// Authenticated, if any
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailContextKey).(string)
	return email, ok
}

// ContextWithEmail returns a context carrying a verified caller email.
// Handlers downstream read it with EmailFromContext.
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailContextKey, email)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
