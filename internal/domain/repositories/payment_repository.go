package repositories

import (
	"context"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	// Record inserts the payment and advances the referenced booking to
	// confirmed/paid in a single transaction: both writes commit or
	// neither does. The booking must currently be in the approved state.
	Record(ctx context.Context, payment *entities.Payment) error

	// ListByUser retrieves a user's payments, newest first
	ListByUser(ctx context.Context, email string) ([]*entities.Payment, error)
}
