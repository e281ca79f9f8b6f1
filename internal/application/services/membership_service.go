package services

import (
	"context"
	"strings"
	"time"

	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// MembershipService handles membership grants and the member roster
type MembershipService struct {
	userRepo    repositories.UserRepository
	bookingRepo repositories.BookingRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	userRepo repositories.UserRepository,
	bookingRepo repositories.BookingRepository,
) *MembershipService {
	return &MembershipService{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
	}
}

// Grant promotes a user to member and stamps the grant date. Granting
// to an email with no account is a no-op so that approving a booking
// whose owner never registered still succeeds.
func (s *MembershipService) Grant(ctx context.Context, email string, grantedAt time.Time) error {
	err := s.userRepo.SetMembership(ctx, email, grantedAt)
	if apperrors.IsNotFound(err) {
		return nil
	}
	return err
}

// ListMembers returns the users who currently hold at least one
// approved or confirmed booking
func (s *MembershipService) ListMembers(ctx context.Context) ([]*entities.User, error) {
	emails, err := s.bookingRepo.ListOwnerEmails(ctx, []entities.BookingStatus{
		entities.BookingStatusApproved,
		entities.BookingStatusConfirmed,
	})
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return []*entities.User{}, nil
	}
	return s.userRepo.ListByEmails(ctx, emails)
}

// GetMembershipDate returns when the user was granted membership. A
// registered user who was never granted is not a member, so the lookup
// fails with not found rather than answering with an empty date.
func (s *MembershipService) GetMembershipDate(ctx context.Context, email string) (*time.Time, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.MembershipGrantedDate == nil {
		return nil, apperrors.NewNotFoundError("not a member")
	}
	return user.MembershipGrantedDate, nil
}

// DeleteMember removes a user account entirely. Their bookings and
// payment history are left in place.
func (s *MembershipService) DeleteMember(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("user email is required")
	}
	return s.userRepo.DeleteByEmail(ctx, email)
}
