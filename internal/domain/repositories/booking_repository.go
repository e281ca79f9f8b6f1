package repositories

import (
	"context"
	"time"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// Approve moves a booking to the approved state. When grantedAt is
	// non-nil the membership grant date is stamped onto the booking row;
	// when nil the column is left untouched.
	Approve(ctx context.Context, id string, grantedAt *time.Time) error

	// Delete removes a booking regardless of its status
	Delete(ctx context.Context, id string) error

	// ListByOwnerAndStatus retrieves bookings for one owner in one status
	ListByOwnerAndStatus(ctx context.Context, email string, status entities.BookingStatus) ([]*entities.Booking, error)

	// ListByStatus retrieves all bookings in a status. A non-empty
	// courtTypeFilter applies a case-insensitive substring match.
	ListByStatus(ctx context.Context, status entities.BookingStatus, courtTypeFilter string) ([]*entities.Booking, error)

	// ListOwnerEmails returns the distinct owner emails of bookings in
	// any of the given statuses
	ListOwnerEmails(ctx context.Context, statuses []entities.BookingStatus) ([]string, error)

	// CountByStatus returns the number of bookings in a status
	CountByStatus(ctx context.Context, status entities.BookingStatus) (int64, error)
}
