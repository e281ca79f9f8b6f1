package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// CourtService handles the court catalog
type CourtService struct {
	repo repositories.CourtRepository
}

// NewCourtService creates a new court service
func NewCourtService(repo repositories.CourtRepository) *CourtService {
	return &CourtService{repo: repo}
}

// Create adds a court to the catalog
func (s *CourtService) Create(ctx context.Context, court *entities.Court) error {
	if strings.TrimSpace(court.CourtType) == "" {
		return apperrors.NewValidationError("court type is required")
	}
	if court.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative")
	}

	if court.ID == "" {
		court.ID = uuid.New().String()
	}
	court.CreatedAt = time.Now()
	court.UpdatedAt = court.CreatedAt

	return s.repo.Create(ctx, court)
}

// GetByID retrieves a court by ID
func (s *CourtService) GetByID(ctx context.Context, id string) (*entities.Court, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidIDError(fmt.Sprintf("invalid court id: %s", id))
	}
	return s.repo.GetByID(ctx, id)
}

// List retrieves a page of courts together with the total count
func (s *CourtService) List(ctx context.Context, page, size int) ([]*entities.Court, int64, error) {
	return s.repo.List(ctx, page, size)
}

// ListFeatured retrieves the courts shown on the landing page
func (s *CourtService) ListFeatured(ctx context.Context) ([]*entities.Court, error) {
	return s.repo.ListFeatured(ctx)
}

// Update updates a court
func (s *CourtService) Update(ctx context.Context, court *entities.Court) error {
	if _, err := uuid.Parse(court.ID); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid court id: %s", court.ID))
	}
	if strings.TrimSpace(court.CourtType) == "" {
		return apperrors.NewValidationError("court type is required")
	}
	if court.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative")
	}
	return s.repo.Update(ctx, court)
}

// Delete removes a court
func (s *CourtService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIDError(fmt.Sprintf("invalid court id: %s", id))
	}
	return s.repo.Delete(ctx, id)
}
