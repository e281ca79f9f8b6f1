package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// AnnouncementService handles club announcements
type AnnouncementService struct {
	repo repositories.AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(repo repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

// Create publishes a new announcement
func (s *AnnouncementService) Create(ctx context.Context, announcement *entities.Announcement) error {
	if strings.TrimSpace(announcement.Title) == "" {
		return apperrors.NewValidationError("announcement title is required")
	}
	if strings.TrimSpace(announcement.Message) == "" {
		return apperrors.NewValidationError("announcement message is required")
	}

	if announcement.ID == "" {
		announcement.ID = uuid.New().String()
	}
	if announcement.Date.IsZero() {
		announcement.Date = time.Now()
	}

	return s.repo.Create(ctx, announcement)
}

// List retrieves announcements, newest first
func (s *AnnouncementService) List(ctx context.Context) ([]*entities.Announcement, error) {
	return s.repo.List(ctx)
}

// Update updates an announcement's title and message
func (s *AnnouncementService) Update(ctx context.Context, announcement *entities.Announcement) error {
	if _, err := uuid.Parse(announcement.ID); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid announcement id: %s", announcement.ID))
	}
	if strings.TrimSpace(announcement.Title) == "" {
		return apperrors.NewValidationError("announcement title is required")
	}
	return s.repo.Update(ctx, announcement)
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid announcement id: %s", id))
	}
	return s.repo.Delete(ctx, id)
}

// EventService handles scheduled club events
type EventService struct {
	repo repositories.EventRepository
}

// NewEventService creates a new event service
func NewEventService(repo repositories.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create schedules a new event
func (s *EventService) Create(ctx context.Context, event *entities.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return apperrors.NewValidationError("event title is required")
	}
	if event.Date.IsZero() {
		return apperrors.NewValidationError("event date is required")
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()

	return s.repo.Create(ctx, event)
}

// List retrieves all events in date order
func (s *EventService) List(ctx context.Context) ([]*entities.Event, error) {
	return s.repo.List(ctx)
}

// Update updates an event
func (s *EventService) Update(ctx context.Context, event *entities.Event) error {
	if _, err := uuid.Parse(event.ID); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid event id: %s", event.ID))
	}
	if strings.TrimSpace(event.Title) == "" {
		return apperrors.NewValidationError("event title is required")
	}
	return s.repo.Update(ctx, event)
}
