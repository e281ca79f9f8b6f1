package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/providers"
	"github.com/scmc/club-backend/internal/domain/repositories"
	"github.com/scmc/club-backend/internal/infrastructure/observability"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// MembershipGrantor grants membership to a user as a side effect of
// booking approval. Implemented by MembershipService.
type MembershipGrantor interface {
	Grant(ctx context.Context, email string, grantedAt time.Time) error
}

// BookingService handles the booking lifecycle: pending on creation,
// approved by an admin, confirmed by a recorded payment.
type BookingService struct {
	repo       repositories.BookingRepository
	userRepo   repositories.UserRepository
	membership MembershipGrantor
	eventBus   providers.EventBus
	metrics    *observability.Metrics
}

// NewBookingService creates a new booking service. metrics may be nil
// when telemetry is disabled.
func NewBookingService(
	repo repositories.BookingRepository,
	userRepo repositories.UserRepository,
	membership MembershipGrantor,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		repo:       repo,
		userRepo:   userRepo,
		membership: membership,
		eventBus:   eventBus,
		metrics:    metrics,
	}
}

// Create registers a new booking request in the pending state
func (s *BookingService) Create(ctx context.Context, booking *entities.Booking) error {
	if strings.TrimSpace(booking.UserEmail) == "" {
		return apperrors.NewValidationError("user email is required")
	}
	if strings.TrimSpace(booking.CourtType) == "" {
		return apperrors.NewValidationError("court type is required")
	}
	if strings.TrimSpace(booking.Slot) == "" {
		return apperrors.NewValidationError("slot is required")
	}
	if booking.SlotDate.IsZero() {
		return apperrors.NewValidationError("slot date is required")
	}
	if booking.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative")
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = entities.BookingStatusPending
	booking.PaymentStatus = entities.PaymentStatusUnpaid
	booking.MembershipGrantedDate = nil
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	if err := s.repo.Create(ctx, booking); err != nil {
		return err
	}

	s.publish(ctx, entities.BookingEventCreated, booking.ID, booking.UserEmail)
	return nil
}

// Approve moves a booking to the approved state. The first approval for
// a non-member owner also grants membership and stamps the grant date;
// approving again later never re-stamps it.
func (s *BookingService) Approve(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid booking id: %s", id))
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var grantedAt *time.Time
	owner, err := s.userRepo.GetByEmail(ctx, booking.UserEmail)
	if err == nil && owner.Role != entities.RoleMember {
		now := time.Now()
		if err := s.membership.Grant(ctx, booking.UserEmail, now); err != nil {
			return err
		}
		grantedAt = &now
	} else if err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	// A missing owner row is not an error: the booking is still approved,
	// there is just nobody to promote.

	if err := s.repo.Approve(ctx, id, grantedAt); err != nil {
		return err
	}

	s.publish(ctx, entities.BookingEventApproved, id, booking.UserEmail)
	return nil
}

// Delete removes a booking in any state. Payments already recorded
// against it are kept.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid booking id: %s", id))
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.BookingEventDeleted, id, booking.UserEmail)
	return nil
}

// GetByID retrieves a booking by ID
func (s *BookingService) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidIDError(fmt.Sprintf("invalid booking id: %s", id))
	}
	return s.repo.GetByID(ctx, id)
}

// ListForOwner retrieves one owner's bookings in the given status
func (s *BookingService) ListForOwner(ctx context.Context, email string, status entities.BookingStatus) ([]*entities.Booking, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	return s.repo.ListByOwnerAndStatus(ctx, email, status)
}

// ListPending retrieves all pending bookings
func (s *BookingService) ListPending(ctx context.Context) ([]*entities.Booking, error) {
	return s.repo.ListByStatus(ctx, entities.BookingStatusPending, "")
}

// ListConfirmed retrieves all confirmed bookings, optionally filtered
// by a case-insensitive substring match on court type
func (s *BookingService) ListConfirmed(ctx context.Context, courtTypeFilter string) ([]*entities.Booking, error) {
	return s.repo.ListByStatus(ctx, entities.BookingStatusConfirmed, courtTypeFilter)
}

func (s *BookingService) publish(ctx context.Context, eventType entities.BookingEventType, bookingID, email string) {
	observability.RecordBookingTransition(ctx, s.metrics, string(eventType))

	if s.eventBus == nil {
		return
	}

	event := &entities.BookingEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		BookingID: bookingID,
		UserEmail: email,
		Timestamp: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelBookingUpdates, event); err != nil {
		// The booking change already committed; a lost notification only
		// delays the admin stream.
		log.Printf("Failed to publish %s for booking %s: %v", eventType, bookingID, err)
	}
}
