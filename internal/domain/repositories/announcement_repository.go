package repositories

import (
	"context"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// AnnouncementRepository defines the interface for announcement operations
type AnnouncementRepository interface {
	// Create creates a new announcement
	Create(ctx context.Context, announcement *entities.Announcement) error

	// List retrieves announcements, newest first
	List(ctx context.Context) ([]*entities.Announcement, error)

	// Update updates an announcement
	Update(ctx context.Context, announcement *entities.Announcement) error

	// Delete deletes an announcement
	Delete(ctx context.Context, id string) error
}

// EventRepository defines the interface for club event operations
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *entities.Event) error

	// List retrieves all events
	List(ctx context.Context) ([]*entities.Event, error)

	// Update applies partial updates to an event
	Update(ctx context.Context, event *entities.Event) error
}
