package entities

import (
	"time"
)

// Court represents a bookable court of the facility
type Court struct {
	ID        string    `json:"id" db:"id"`
	CourtType string    `json:"court_type" db:"court_type"`
	Image     string    `json:"image" db:"image"`
	Slots     string    `json:"slots" db:"slots"`
	Price     float64   `json:"price" db:"price"`
	Featured  bool      `json:"featured" db:"featured"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
