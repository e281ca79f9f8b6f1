package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// ReviewService handles user reviews of the club
type ReviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create records a new review
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) error {
	if strings.TrimSpace(review.UserEmail) == "" {
		return apperrors.NewValidationError("user email is required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.Date.IsZero() {
		review.Date = time.Now()
	}

	return s.repo.Create(ctx, review)
}

// List retrieves reviews, newest first
func (s *ReviewService) List(ctx context.Context) ([]*entities.Review, error) {
	return s.repo.List(ctx)
}
