package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scmc/club-backend/internal/domain/providers"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// JWTVerifier implements TokenVerifier for HMAC-signed bearer tokens
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWT token verifier
func NewJWTVerifier(secret string) providers.TokenVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify parses and validates the token and returns the email claim.
// Expiry and not-before are checked by the parser.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (string, error) {
	claims := &accessClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", apperrors.NewForbiddenError(fmt.Sprintf("invalid token: %v", err))
	}
	if !parsed.Valid {
		return "", apperrors.NewForbiddenError("invalid token")
	}

	email := claims.Email
	if email == "" {
		// Some issuers put the email in the subject instead
		email = claims.Subject
	}
	if email == "" {
		return "", apperrors.NewForbiddenError("token carries no email claim")
	}

	return email, nil
}
