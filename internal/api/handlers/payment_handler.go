package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/domain/entities"
)

// PaymentService defines the interface for payment operations
type PaymentService interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
	RecordPayment(ctx context.Context, payment *entities.Payment) error
	History(ctx context.Context, email string) ([]*entities.Payment, error)
}

// PaymentHandler handles charge intents and the payment ledger
type PaymentHandler struct {
	service PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// CreateIntent handles POST /api/payments/intent
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	// The gateway wants the smallest currency unit
	amountCents := int64(math.Round(body.Price * 100))

	clientSecret, err := h.service.CreateIntent(r.Context(), amountCents)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"clientSecret": clientSecret,
	})
}

// RecordPayment handles POST /api/payments
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BookingID       string  `json:"booking_id"`
		AmountPaid      float64 `json:"amount_paid"`
		CouponUsed      *string `json:"coupon_used"`
		PaymentIntentID string  `json:"payment_intent_id"`
		PaidAt          string  `json:"paid_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	payment := &entities.Payment{
		BookingID:       body.BookingID,
		UserEmail:       email,
		AmountPaid:      body.AmountPaid,
		CouponUsed:      body.CouponUsed,
		PaymentIntentID: body.PaymentIntentID,
	}
	if body.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, body.PaidAt)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid paid_at date format (use RFC3339)")
			return
		}
		payment.PaidAt = paidAt
	}

	if err := h.service.RecordPayment(r.Context(), payment); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, payment)
}

// PaymentHistory handles GET /api/payments
func (h *PaymentHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	payments, err := h.service.History(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	})
}
