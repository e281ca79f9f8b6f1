package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/scmc/club-backend/internal/api/handlers"
	"github.com/scmc/club-backend/internal/domain/entities"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// MockCouponService defines the mock service
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Validate(ctx context.Context, code string) (bool, float64, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Get(1).(float64), args.Error(2)
}

func (m *MockCouponService) Create(ctx context.Context, coupon *entities.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponService) List(ctx context.Context) ([]*entities.Coupon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Coupon), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, coupon *entities.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCouponHandler_ValidateCoupon(t *testing.T) {
	t.Run("returns discount for a valid code", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		body, _ := json.Marshal(map[string]string{"code": "SUMMER20"})
		req := httptest.NewRequest("POST", "/api/coupons/validate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Validate", mock.Anything, "SUMMER20").Return(true, 20.0, nil)

		handler.ValidateCoupon(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, true, response["valid"])
		assert.Equal(t, 20.0, response["discountPercentage"])
		mockService.AssertExpectations(t)
	})

	t.Run("unknown code is a clean rejection, not an error", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		body, _ := json.Marshal(map[string]string{"code": "NOPE"})
		req := httptest.NewRequest("POST", "/api/coupons/validate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Validate", mock.Anything, "NOPE").Return(false, 0.0, nil)

		handler.ValidateCoupon(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, false, response["valid"])
		assert.Equal(t, 0.0, response["discountPercentage"])
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		req := httptest.NewRequest("POST", "/api/coupons/validate", bytes.NewBufferString("not-json"))
		w := httptest.NewRecorder()

		handler.ValidateCoupon(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Validate")
	})

	t.Run("returns internal error on storage failure", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		body, _ := json.Marshal(map[string]string{"code": "SUMMER20"})
		req := httptest.NewRequest("POST", "/api/coupons/validate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Validate", mock.Anything, "SUMMER20").
			Return(false, 0.0, errors.New("connection refused"))

		handler.ValidateCoupon(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCouponHandler_CreateCoupon(t *testing.T) {
	t.Run("successfully creates coupon", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{
			"code":                "WELCOME10",
			"discount_percentage": 10,
		})
		req := httptest.NewRequest("POST", "/api/admin/coupons", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Coupon) bool {
			return c.Code == "WELCOME10"
		})).Return(nil)

		handler.CreateCoupon(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("maps validation error to bad request", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{"discount_percentage": 150})
		req := httptest.NewRequest("POST", "/api/admin/coupons", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewValidationError("discount must be between 0 and 100"))

		handler.CreateCoupon(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCouponHandler_UpdateCoupon(t *testing.T) {
	t.Run("path id wins over body id", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		body, _ := json.Marshal(map[string]interface{}{
			"id":   "body-id",
			"code": "SUMMER20",
		})
		req := httptest.NewRequest("PATCH", "/api/admin/coupons/c-1", bytes.NewBuffer(body))
		req.SetPathValue("id", "c-1")
		w := httptest.NewRecorder()

		mockService.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Coupon) bool {
			return c.ID == "c-1"
		})).Return(nil)

		handler.UpdateCoupon(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCouponHandler_DeleteCoupon(t *testing.T) {
	t.Run("maps not found to 404", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := handlers.NewCouponHandler(mockService)

		req := httptest.NewRequest("DELETE", "/api/admin/coupons/c-404", nil)
		req.SetPathValue("id", "c-404")
		w := httptest.NewRecorder()

		mockService.On("Delete", mock.Anything, "c-404").
			Return(apperrors.NewNotFoundError("coupon not found"))

		handler.DeleteCoupon(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
