package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// CouponService handles coupon management and validation
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new coupon service
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

// Create creates a new coupon, active by default
func (s *CouponService) Create(ctx context.Context, coupon *entities.Coupon) error {
	if strings.TrimSpace(coupon.Code) == "" {
		return apperrors.NewValidationError("coupon code is required")
	}
	if coupon.DiscountPercentage <= 0 || coupon.DiscountPercentage > 100 {
		return apperrors.NewValidationError("discount percentage must be between 0 and 100")
	}

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if coupon.Status == "" {
		coupon.Status = entities.CouponStatusActive
	}
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = coupon.CreatedAt

	return s.repo.Create(ctx, coupon)
}

// Validate checks a code against the active coupons. An unknown or
// inactive code is a negative result, not an error.
func (s *CouponService) Validate(ctx context.Context, code string) (bool, float64, error) {
	if strings.TrimSpace(code) == "" {
		return false, 0, nil
	}

	coupon, err := s.repo.GetActiveByCode(ctx, code)
	if apperrors.IsNotFound(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}

	return true, coupon.DiscountPercentage, nil
}

// List retrieves all coupons regardless of status
func (s *CouponService) List(ctx context.Context) ([]*entities.Coupon, error) {
	return s.repo.List(ctx)
}

// Update updates a coupon's code, discount or status
func (s *CouponService) Update(ctx context.Context, coupon *entities.Coupon) error {
	if _, err := uuid.Parse(coupon.ID); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid coupon id: %s", coupon.ID))
	}
	if strings.TrimSpace(coupon.Code) == "" {
		return apperrors.NewValidationError("coupon code is required")
	}
	if coupon.DiscountPercentage <= 0 || coupon.DiscountPercentage > 100 {
		return apperrors.NewValidationError("discount percentage must be between 0 and 100")
	}
	return s.repo.Update(ctx, coupon)
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid coupon id: %s", id))
	}
	return s.repo.Delete(ctx, id)
}
