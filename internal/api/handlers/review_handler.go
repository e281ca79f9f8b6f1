package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/application/services"
	"github.com/scmc/club-backend/internal/domain/entities"
)

// ReviewHandler handles user reviews
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review entities.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Reviews are always attributed to the verified caller
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		review.UserEmail = email
	}

	if err := h.service.Create(r.Context(), &review); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
