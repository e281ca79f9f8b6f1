package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	"github.com/scmc/club-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// PaymentAdapter implements the PaymentRepository interface. The ledger
// is append-only: this adapter exposes no update or delete.
type PaymentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPaymentAdapter creates a new payment adapter
func NewPaymentAdapter(client *postgres.Client) repositories.PaymentRepository {
	return &PaymentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var paymentColumns = []interface{}{
	"id", "booking_id", "user_email", "amount_paid", "coupon_used",
	"payment_intent_id", "status", "paid_at",
}

// Record inserts the payment and flips the booking to confirmed/paid in
// one transaction. The booking row is locked first so a concurrent
// payment for the same booking cannot double-confirm it.
func (a *PaymentAdapter) Record(ctx context.Context, payment *entities.Payment) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin payment transaction", err)
	}
	defer tx.Rollback()

	lockQuery, lockArgs, err := a.db.Select("status").
		From("bookings").
		Where(goqu.Ex{"id": payment.BookingID}).
		ForUpdate(goqu.Wait).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking lock query", err)
	}

	var status entities.BookingStatus
	err = tx.QueryRowContext(ctx, lockQuery, lockArgs...).Scan(&status)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", payment.BookingID))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to lock booking", err)
	}

	if status != entities.BookingStatusApproved {
		return apperrors.NewConflictError(fmt.Sprintf("booking %s is %s, payment requires an approved booking", payment.BookingID, status))
	}

	insertQuery, insertArgs, err := a.db.Insert("payments").Rows(goqu.Record{
		"id":                payment.ID,
		"booking_id":        payment.BookingID,
		"user_email":        payment.UserEmail,
		"amount_paid":       payment.AmountPaid,
		"coupon_used":       payment.CouponUsed,
		"payment_intent_id": payment.PaymentIntentID,
		"status":            payment.Status,
		"paid_at":           payment.PaidAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build payment insert query", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return apperrors.NewInternalError("failed to insert payment", err)
	}

	updateQuery, updateArgs, err := a.db.Update("bookings").
		Set(goqu.Record{
			"status":         entities.BookingStatusConfirmed,
			"payment_status": entities.PaymentStatusPaid,
			"updated_at":     payment.PaidAt,
		}).
		Where(goqu.Ex{"id": payment.BookingID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking confirm query", err)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return apperrors.NewInternalError("failed to confirm booking", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit payment transaction", err)
	}

	return nil
}

// ListByUser retrieves a user's payments, newest first
func (a *PaymentAdapter) ListByUser(ctx context.Context, email string) ([]*entities.Payment, error) {
	query, args, err := a.db.Select(paymentColumns...).
		From("payments").
		Where(goqu.Ex{"user_email": email}).
		Order(goqu.I("paid_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list payments", err)
	}
	defer rows.Close()

	payments := []*entities.Payment{}
	for rows.Next() {
		payment := &entities.Payment{}
		var couponUsed sql.NullString

		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.UserEmail,
			&payment.AmountPaid,
			&couponUsed,
			&payment.PaymentIntentID,
			&payment.Status,
			&payment.PaidAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan payment", err)
		}

		if couponUsed.Valid {
			payment.CouponUsed = &couponUsed.String
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate payments", err)
	}

	return payments, nil
}
