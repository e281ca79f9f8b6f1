package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/scmc/club-backend/internal/domain/entities"
)

// CouponService defines the interface for coupon operations
type CouponService interface {
	Validate(ctx context.Context, code string) (bool, float64, error)
	Create(ctx context.Context, coupon *entities.Coupon) error
	List(ctx context.Context) ([]*entities.Coupon, error)
	Update(ctx context.Context, coupon *entities.Coupon) error
	Delete(ctx context.Context, id string) error
}

// CouponHandler handles coupon management and validation
type CouponHandler struct {
	service CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(service CouponService) *CouponHandler {
	return &CouponHandler{
		service: service,
	}
}

// ValidateCoupon handles POST /api/coupons/validate
func (h *CouponHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	valid, discount, err := h.service.Validate(r.Context(), body.Code)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid":              valid,
		"discountPercentage": discount,
	})
}

// CreateCoupon handles POST /api/admin/coupons
func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var coupon entities.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &coupon); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, coupon)
}

// ListCoupons handles GET /api/admin/coupons
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// UpdateCoupon handles PATCH /api/admin/coupons/{id}
func (h *CouponHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "coupon ID is required")
		return
	}

	var coupon entities.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	coupon.ID = id

	if err := h.service.Update(r.Context(), &coupon); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, coupon)
}

// DeleteCoupon handles DELETE /api/admin/coupons/{id}
func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "coupon ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
