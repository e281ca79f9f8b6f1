package entities

import (
	"time"
)

// CouponStatus represents the lifecycle flag of a coupon
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
)

// Coupon represents a named discount code. Codes are matched
// case-sensitively and may be used an unlimited number of times.
type Coupon struct {
	ID                 string       `json:"id" db:"id"`
	Code               string       `json:"code" db:"code"`
	DiscountPercentage float64      `json:"discount_percentage" db:"discount_percentage"`
	Status             CouponStatus `json:"status" db:"status"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the coupon can currently be redeemed
func (c *Coupon) IsActive() bool {
	return c.Status == CouponStatusActive
}
