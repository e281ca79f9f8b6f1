package services

import (
	"context"

	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
)

// AdminStats is the summary shown on the admin dashboard
type AdminStats struct {
	TotalCourts       int64 `json:"total_courts"`
	TotalUsers        int64 `json:"total_users"`
	PendingBookings   int64 `json:"pending_bookings"`
	ApprovedBookings  int64 `json:"approved_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
}

// StatsService aggregates counts for the admin dashboard
type StatsService struct {
	courtRepo   repositories.CourtRepository
	userRepo    repositories.UserRepository
	bookingRepo repositories.BookingRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	courtRepo repositories.CourtRepository,
	userRepo repositories.UserRepository,
	bookingRepo repositories.BookingRepository,
) *StatsService {
	return &StatsService{
		courtRepo:   courtRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
	}
}

// Get collects the dashboard counters. The counts come from separate
// queries and are not a consistent snapshot, which is fine for a
// dashboard.
func (s *StatsService) Get(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	courts, err := s.courtRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalCourts = courts

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = users

	pending, err := s.bookingRepo.CountByStatus(ctx, entities.BookingStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingBookings = pending

	approved, err := s.bookingRepo.CountByStatus(ctx, entities.BookingStatusApproved)
	if err != nil {
		return nil, err
	}
	stats.ApprovedBookings = approved

	confirmed, err := s.bookingRepo.CountByStatus(ctx, entities.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	stats.ConfirmedBookings = confirmed

	return stats, nil
}
