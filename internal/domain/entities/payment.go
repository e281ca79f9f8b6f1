package entities

import (
	"time"
)

// PaymentRecordStatusPaid is the only status a ledger entry ever carries.
const PaymentRecordStatusPaid = "paid"

// Payment is an immutable ledger entry linking a successful charge to a
// booking. Records are append-only: they are never updated or deleted,
// and deleting the referenced booking does not cascade to them.
type Payment struct {
	ID              string    `json:"id" db:"id"`
	BookingID       string    `json:"booking_id" db:"booking_id"`
	UserEmail       string    `json:"user_email" db:"user_email"`
	AmountPaid      float64   `json:"amount_paid" db:"amount_paid"`
	CouponUsed      *string   `json:"coupon_used,omitempty" db:"coupon_used"`
	PaymentIntentID string    `json:"payment_intent_id" db:"payment_intent_id"`
	Status          string    `json:"status" db:"status"`
	PaidAt          time.Time `json:"paid_at" db:"paid_at"`
}
