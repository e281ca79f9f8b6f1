package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/domain/entities"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// BookingService defines the interface for booking operations
type BookingService interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id string) (*entities.Booking, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListForOwner(ctx context.Context, email string, status entities.BookingStatus) ([]*entities.Booking, error)
	ListPending(ctx context.Context) ([]*entities.Booking, error)
	ListConfirmed(ctx context.Context, courtTypeFilter string) ([]*entities.Booking, error)
}

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking entities.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	// The booking belongs to the verified caller, whatever the body says
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		booking.UserEmail = email
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// ListMyBookings handles GET /api/bookings?status=pending|approved|confirmed
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	status := entities.BookingStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = entities.BookingStatusPending
	}
	switch status {
	case entities.BookingStatusPending, entities.BookingStatusApproved, entities.BookingStatusConfirmed:
	default:
		respondWithError(w, http.StatusBadRequest, "unknown booking status")
		return
	}

	bookings, err := h.service.ListForOwner(r.Context(), email, status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListConfirmedBookings handles GET /api/bookings/confirmed?courtType=
func (h *BookingHandler) ListConfirmedBookings(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("courtType")

	bookings, err := h.service.ListConfirmed(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListOwnerConfirmedBookings handles GET /api/bookings/confirmed/{email}
// (member only). Members can only read their own confirmed bookings.
func (h *BookingHandler) ListOwnerConfirmedBookings(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	caller, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	if !strings.EqualFold(caller, email) {
		respondWithError(w, http.StatusForbidden, "Forbidden Access")
		return
	}

	bookings, err := h.service.ListForOwner(r.Context(), email, entities.BookingStatusConfirmed)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListPendingBookings handles GET /api/admin/bookings
func (h *BookingHandler) ListPendingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ApproveBooking handles PATCH /api/admin/bookings/{id}/approve
func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	if err := h.service.Approve(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": string(entities.BookingStatusApproved),
	})
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// Helper functions

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// handleServiceError maps application errors onto HTTP status codes
func handleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidID:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusUnauthorized, appErr.Message)
		case apperrors.ErrorTypeForbidden:
			respondWithError(w, http.StatusForbidden, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
