package entities

import (
	"time"
)

// Announcement is a timestamped notice shown to club members
type Announcement struct {
	ID      string    `json:"id" db:"id"`
	Title   string    `json:"title" db:"title"`
	Message string    `json:"message" db:"message"`
	Date    time.Time `json:"date" db:"date"`
}

// Event is a scheduled club event
type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
