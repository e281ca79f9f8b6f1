package providers

import (
	"context"
)

// TokenVerifier defines the interface for the external identity
// provider. Given a bearer token it returns the verified email of the
// caller, or an error when the token is invalid or expired.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
