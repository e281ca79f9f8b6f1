package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/scmc/club-backend/internal/api/handlers"
	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/domain/entities"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// MockBookingService defines the mock service
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingService) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingService) Approve(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingService) ListForOwner(ctx context.Context, email string, status entities.BookingStatus) ([]*entities.Booking, error) {
	args := m.Called(ctx, email, status)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingService) ListPending(ctx context.Context) ([]*entities.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingService) ListConfirmed(ctx context.Context, courtTypeFilter string) ([]*entities.Booking, error) {
	args := m.Called(ctx, courtTypeFilter)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func authedRequest(method, target string, body *bytes.Buffer, email string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.ContextWithEmail(req.Context(), email))
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	t.Run("successfully creates booking for the caller", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		payload := map[string]interface{}{
			"user_email": "spoofed@example.com",
			"court_type": "tennis",
			"slot":       "10:00-11:00",
			"slot_date":  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			"price":      45.0,
		}
		body, _ := json.Marshal(payload)
		req := authedRequest("POST", "/api/bookings", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		// The booking must be attributed to the token owner, not the body
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Booking) bool {
			return b.UserEmail == "jane@example.com" && b.CourtType == "tennis"
		})).Return(nil)

		handler.CreateBooking(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := authedRequest("POST", "/api/bookings", bytes.NewBufferString("invalid-json"), "jane@example.com")
		w := httptest.NewRecorder()

		handler.CreateBooking(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps validation error to bad request", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{"court_type": "tennis"})
		req := authedRequest("POST", "/api/bookings", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewValidationError("slot is required"))

		handler.CreateBooking(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_ListMyBookings(t *testing.T) {
	t.Run("defaults to pending status", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := authedRequest("GET", "/api/bookings", nil, "jane@example.com")
		w := httptest.NewRecorder()

		bookings := []*entities.Booking{
			{ID: "b-1", UserEmail: "jane@example.com", Status: entities.BookingStatusPending},
		}
		mockService.On("ListForOwner", mock.Anything, "jane@example.com", entities.BookingStatusPending).
			Return(bookings, nil)

		handler.ListMyBookings(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, float64(1), response["count"])
		mockService.AssertExpectations(t)
	})

	t.Run("rejects unknown status value", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := authedRequest("GET", "/api/bookings?status=cancelled", nil, "jane@example.com")
		w := httptest.NewRecorder()

		handler.ListMyBookings(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListForOwner")
	})

	t.Run("returns unauthorized without a caller email", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := httptest.NewRequest("GET", "/api/bookings", nil)
		w := httptest.NewRecorder()

		handler.ListMyBookings(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBookingHandler_GetBooking(t *testing.T) {
	t.Run("returns the booking", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := authedRequest("GET", "/api/bookings/b-1", nil, "jane@example.com")
		req.SetPathValue("id", "b-1")
		w := httptest.NewRecorder()

		booking := &entities.Booking{
			ID:        "b-1",
			UserEmail: "jane@example.com",
			CourtType: "tennis",
			Status:    entities.BookingStatusPending,
		}
		mockService.On("GetByID", mock.Anything, "b-1").Return(booking, nil)

		handler.GetBooking(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response entities.Booking
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "b-1", response.ID)
		assert.Equal(t, "tennis", response.CourtType)
		mockService.AssertExpectations(t)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := authedRequest("GET", "/api/bookings/b-404", nil, "jane@example.com")
		req.SetPathValue("id", "b-404")
		w := httptest.NewRecorder()

		mockService.On("GetByID", mock.Anything, "b-404").
			Return(nil, apperrors.NewNotFoundError("booking not found"))

		handler.GetBooking(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("maps malformed id to bad request", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := authedRequest("GET", "/api/bookings/nope", nil, "jane@example.com")
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		mockService.On("GetByID", mock.Anything, "nope").
			Return(nil, apperrors.NewInvalidIDError("invalid booking id: nope"))

		handler.GetBooking(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_ApproveBooking(t *testing.T) {
	t.Run("successfully approves booking", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := httptest.NewRequest("PATCH", "/api/admin/bookings/b-1/approve", nil)
		req.SetPathValue("id", "b-1")
		w := httptest.NewRecorder()

		mockService.On("Approve", mock.Anything, "b-1").Return(nil)

		handler.ApproveBooking(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "approved", response["status"])
		mockService.AssertExpectations(t)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := httptest.NewRequest("PATCH", "/api/admin/bookings/b-404/approve", nil)
		req.SetPathValue("id", "b-404")
		w := httptest.NewRecorder()

		mockService.On("Approve", mock.Anything, "b-404").
			Return(apperrors.NewNotFoundError("booking not found"))

		handler.ApproveBooking(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("maps malformed id to bad request", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := httptest.NewRequest("PATCH", "/api/admin/bookings/nope/approve", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		mockService.On("Approve", mock.Anything, "nope").
			Return(apperrors.NewInvalidIDError("invalid booking id: nope"))

		handler.ApproveBooking(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_DeleteBooking(t *testing.T) {
	t.Run("successfully deletes booking", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := handlers.NewBookingHandler(mockService)

		req := httptest.NewRequest("DELETE", "/api/admin/bookings/b-1", nil)
		req.SetPathValue("id", "b-1")
		w := httptest.NewRecorder()

		mockService.On("Delete", mock.Anything, "b-1").Return(nil)

		handler.DeleteBooking(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}
