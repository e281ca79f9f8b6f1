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

const paymentCurrency = "usd"

// PaymentService handles charge intents and the payment ledger
type PaymentService struct {
	repo     repositories.PaymentRepository
	gateway  providers.PaymentGateway
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewPaymentService creates a new payment service. metrics may be nil
// when telemetry is disabled.
func NewPaymentService(
	repo repositories.PaymentRepository,
	gateway providers.PaymentGateway,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *PaymentService {
	return &PaymentService{
		repo:     repo,
		gateway:  gateway,
		eventBus: eventBus,
		metrics:  metrics,
	}
}

// CreateIntent asks the gateway for a charge intent and returns the
// client confirmation secret. Amount is in cents.
func (s *PaymentService) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", apperrors.NewValidationError("amount must be positive")
	}
	return s.gateway.CreateIntent(ctx, amountCents, paymentCurrency)
}

// RecordPayment appends a ledger entry for a successful charge and
// confirms the referenced booking. The booking must be approved;
// recording against any other state is a conflict.
func (s *PaymentService) RecordPayment(ctx context.Context, payment *entities.Payment) error {
	if _, err := uuid.Parse(payment.BookingID); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid booking id: %s", payment.BookingID))
	}
	if strings.TrimSpace(payment.UserEmail) == "" {
		return apperrors.NewValidationError("user email is required")
	}
	if payment.AmountPaid < 0 {
		return apperrors.NewValidationError("amount paid cannot be negative")
	}
	if strings.TrimSpace(payment.PaymentIntentID) == "" {
		return apperrors.NewValidationError("payment intent id is required")
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.Status = entities.PaymentRecordStatusPaid
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}

	if err := s.repo.Record(ctx, payment); err != nil {
		return err
	}

	observability.RecordPaymentRecorded(ctx, s.metrics)

	if s.eventBus == nil {
		return nil
	}

	event := &entities.BookingEvent{
		ID:        uuid.New().String(),
		Type:      entities.BookingEventConfirmed,
		BookingID: payment.BookingID,
		UserEmail: payment.UserEmail,
		Timestamp: payment.PaidAt,
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelBookingUpdates, event); err != nil {
		log.Printf("Failed to publish booking.confirmed for %s: %v", payment.BookingID, err)
	}

	return nil
}

// History retrieves a user's payments, newest first
func (s *PaymentService) History(ctx context.Context, email string) ([]*entities.Payment, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	return s.repo.ListByUser(ctx, email)
}
