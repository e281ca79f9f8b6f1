package repositories

import (
	"context"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// CourtRepository defines the interface for court data operations
type CourtRepository interface {
	// Create creates a new court
	Create(ctx context.Context, court *entities.Court) error

	// GetByID retrieves a court by ID
	GetByID(ctx context.Context, id string) (*entities.Court, error)

	// List retrieves a page of courts together with the total count
	List(ctx context.Context, page, size int) ([]*entities.Court, int64, error)

	// ListFeatured retrieves courts flagged as featured
	ListFeatured(ctx context.Context) ([]*entities.Court, error)

	// Update updates a court
	Update(ctx context.Context, court *entities.Court) error

	// Delete deletes a court
	Delete(ctx context.Context, id string) error

	// Count returns the total number of courts
	Count(ctx context.Context) (int64, error)
}
