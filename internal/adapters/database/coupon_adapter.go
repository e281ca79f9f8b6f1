package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	"github.com/scmc/club-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// CouponAdapter implements the CouponRepository interface
type CouponAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCouponAdapter creates a new coupon adapter
func NewCouponAdapter(client *postgres.Client) repositories.CouponRepository {
	return &CouponAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var couponColumns = []interface{}{
	"id", "code", "discount_percentage", "status", "created_at", "updated_at",
}

// Create creates a new coupon
func (a *CouponAdapter) Create(ctx context.Context, coupon *entities.Coupon) error {
	record := goqu.Record{
		"id":                  coupon.ID,
		"code":                coupon.Code,
		"discount_percentage": coupon.DiscountPercentage,
		"status":              coupon.Status,
		"created_at":          coupon.CreatedAt,
		"updated_at":          coupon.UpdatedAt,
	}

	query, args, err := a.db.Insert("coupons").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create coupon", err)
	}

	return nil
}

// GetActiveByCode retrieves a coupon by exact code match when active.
// The code column is matched case-sensitively on purpose.
func (a *CouponAdapter) GetActiveByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	query, args, err := a.db.Select(couponColumns...).
		From("coupons").
		Where(goqu.Ex{"code": code, "status": entities.CouponStatusActive}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	coupon, err := scanCoupon(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("active coupon with code %s not found", code))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get coupon", err)
	}

	return coupon, nil
}

// List retrieves all coupons
func (a *CouponAdapter) List(ctx context.Context) ([]*entities.Coupon, error) {
	query, args, err := a.db.Select(couponColumns...).
		From("coupons").
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list coupons", err)
	}
	defer rows.Close()

	coupons := []*entities.Coupon{}
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan coupon", err)
		}
		coupons = append(coupons, coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate coupons", err)
	}

	return coupons, nil
}

// Update updates a coupon
func (a *CouponAdapter) Update(ctx context.Context, coupon *entities.Coupon) error {
	coupon.UpdatedAt = time.Now()

	query, args, err := a.db.Update("coupons").
		Set(goqu.Record{
			"code":                coupon.Code,
			"discount_percentage": coupon.DiscountPercentage,
			"status":              coupon.Status,
			"updated_at":          coupon.UpdatedAt,
		}).
		Where(goqu.Ex{"id": coupon.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update coupon", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("coupon with id %s not found", coupon.ID))
	}

	return nil
}

// Delete deletes a coupon
func (a *CouponAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("coupons").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete coupon", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("coupon with id %s not found", id))
	}

	return nil
}

func scanCoupon(row rowScanner) (*entities.Coupon, error) {
	coupon := &entities.Coupon{}
	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountPercentage,
		&coupon.Status,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}
