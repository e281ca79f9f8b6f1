package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/scmc/club-backend/internal/api/handlers"
	"github.com/scmc/club-backend/internal/domain/entities"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// MockPaymentService defines the mock service
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	args := m.Called(ctx, amountCents)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentService) History(ctx context.Context, email string) ([]*entities.Payment, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]*entities.Payment), args.Error(1)
}

func TestPaymentHandler_CreateIntent(t *testing.T) {
	t.Run("converts dollars to cents for the gateway", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{"price": 45.50})
		req := authedRequest("POST", "/api/payments/intent", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		mockService.On("CreateIntent", mock.Anything, int64(4550)).
			Return("pi_secret_123", nil)

		handler.CreateIntent(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "pi_secret_123", response["clientSecret"])
		mockService.AssertExpectations(t)
	})

	t.Run("maps gateway failure to bad gateway", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{"price": 45.50})
		req := authedRequest("POST", "/api/payments/intent", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		mockService.On("CreateIntent", mock.Anything, mock.Anything).
			Return("", apperrors.NewExternalError("payment gateway unavailable", nil))

		handler.CreateIntent(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		req := authedRequest("POST", "/api/payments/intent", bytes.NewBufferString("not-json"), "jane@example.com")
		w := httptest.NewRecorder()

		handler.CreateIntent(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentHandler_RecordPayment(t *testing.T) {
	t.Run("attributes the payment to the token owner", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{
			"booking_id":        "b-1",
			"amount_paid":       45.50,
			"payment_intent_id": "pi_123",
		})
		req := authedRequest("POST", "/api/payments", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		mockService.On("RecordPayment", mock.Anything, mock.MatchedBy(func(p *entities.Payment) bool {
			return p.UserEmail == "jane@example.com" && p.BookingID == "b-1" && p.PaymentIntentID == "pi_123"
		})).Return(nil)

		handler.RecordPayment(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns unauthorized without a caller email", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{"booking_id": "b-1"})
		req := httptest.NewRequest("POST", "/api/payments", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.RecordPayment(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "RecordPayment")
	})

	t.Run("rejects malformed paid_at date", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{
			"booking_id":        "b-1",
			"payment_intent_id": "pi_123",
			"paid_at":           "yesterday",
		})
		req := authedRequest("POST", "/api/payments", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		handler.RecordPayment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "RecordPayment")
	})

	t.Run("maps unapproved booking conflict to 409", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{
			"booking_id":        "b-1",
			"amount_paid":       45.50,
			"payment_intent_id": "pi_123",
		})
		req := authedRequest("POST", "/api/payments", bytes.NewBuffer(body), "jane@example.com")
		w := httptest.NewRecorder()

		mockService.On("RecordPayment", mock.Anything, mock.Anything).
			Return(apperrors.NewConflictError("booking is not approved"))

		handler.RecordPayment(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPaymentHandler_PaymentHistory(t *testing.T) {
	t.Run("returns the caller's payments", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := handlers.NewPaymentHandler(mockService)

		req := authedRequest("GET", "/api/payments", nil, "jane@example.com")
		w := httptest.NewRecorder()

		payments := []*entities.Payment{
			{ID: "p-1", UserEmail: "jane@example.com", AmountPaid: 45.50},
			{ID: "p-2", UserEmail: "jane@example.com", AmountPaid: 30.00},
		}
		mockService.On("History", mock.Anything, "jane@example.com").Return(payments, nil)

		handler.PaymentHistory(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, float64(2), response["count"])
		mockService.AssertExpectations(t)
	})
}
