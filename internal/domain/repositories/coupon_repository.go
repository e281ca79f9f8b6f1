package repositories

import (
	"context"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// CouponRepository defines the interface for coupon data operations
type CouponRepository interface {
	// Create creates a new coupon
	Create(ctx context.Context, coupon *entities.Coupon) error

	// GetActiveByCode retrieves a coupon by exact code match, only when
	// its status is active. Inactive or unknown codes yield NOT_FOUND.
	GetActiveByCode(ctx context.Context, code string) (*entities.Coupon, error)

	// List retrieves all coupons
	List(ctx context.Context) ([]*entities.Coupon, error)

	// Update updates a coupon
	Update(ctx context.Context, coupon *entities.Coupon) error

	// Delete deletes a coupon
	Delete(ctx context.Context, id string) error
}
