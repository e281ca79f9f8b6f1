package repositories

import (
	"context"
	"time"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List retrieves users, optionally filtered by a case-insensitive
	// substring match on name
	List(ctx context.Context, nameFilter string) ([]*entities.User, error)

	// ListByEmails retrieves users whose email is in the given set
	ListByEmails(ctx context.Context, emails []string) ([]*entities.User, error)

	// SetMembership promotes a user to member and stamps the grant date
	SetMembership(ctx context.Context, email string, grantedAt time.Time) error

	// DeleteByEmail removes a user
	DeleteByEmail(ctx context.Context, email string) error

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// List retrieves reviews, newest first
	List(ctx context.Context) ([]*entities.Review, error)
}
