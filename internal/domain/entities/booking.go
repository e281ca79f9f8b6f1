package entities

import (
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// PaymentStatus represents whether a booking has been paid for
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Booking represents a court reservation request.
// Invariant: PaymentStatus == paid implies Status == confirmed.
type Booking struct {
	ID                    string        `json:"id" db:"id"`
	UserEmail             string        `json:"user_email" db:"user_email"`
	CourtType             string        `json:"court_type" db:"court_type"`
	Slot                  string        `json:"slot" db:"slot"`
	SlotDate              time.Time     `json:"slot_date" db:"slot_date"`
	Price                 float64       `json:"price" db:"price"`
	Status                BookingStatus `json:"status" db:"status"`
	PaymentStatus         PaymentStatus `json:"payment_status" db:"payment_status"`
	MembershipGrantedDate *time.Time    `json:"membership_granted_date,omitempty" db:"membership_granted_date"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at" db:"updated_at"`
}
