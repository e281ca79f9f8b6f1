package entities

import (
	"time"
)

// BookingEventType identifies a booking lifecycle transition
type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventApproved  BookingEventType = "booking.approved"
	BookingEventConfirmed BookingEventType = "booking.confirmed"
	BookingEventDeleted   BookingEventType = "booking.deleted"
)

// BookingEvent is the payload published on the event bus whenever a
// booking changes state. Consumers (the admin SSE stream) treat it as
// a notification, not a source of truth.
type BookingEvent struct {
	ID        string           `json:"id"`
	Type      BookingEventType `json:"type"`
	BookingID string           `json:"booking_id"`
	UserEmail string           `json:"user_email"`
	Timestamp time.Time        `json:"timestamp"`
}
