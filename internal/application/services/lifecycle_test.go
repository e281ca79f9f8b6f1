package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scmc/club-backend/internal/application/services"
	"github.com/scmc/club-backend/internal/domain/entities"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// Stateful in-memory fakes so the whole booking lifecycle can be walked
// through the real services, not just one call at a time.

type memBookingRepo struct {
	bookings map[string]*entities.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*entities.Booking)}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *entities.Booking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	copied := *booking
	return &copied, nil
}

func (r *memBookingRepo) Approve(ctx context.Context, id string, grantedAt *time.Time) error {
	booking, ok := r.bookings[id]
	if !ok {
		return apperrors.NewNotFoundError("booking not found")
	}
	booking.Status = entities.BookingStatusApproved
	booking.PaymentStatus = entities.PaymentStatusUnpaid
	if grantedAt != nil {
		booking.MembershipGrantedDate = grantedAt
	}
	return nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return apperrors.NewNotFoundError("booking not found")
	}
	delete(r.bookings, id)
	return nil
}

func (r *memBookingRepo) ListByOwnerAndStatus(ctx context.Context, email string, status entities.BookingStatus) ([]*entities.Booking, error) {
	result := []*entities.Booking{}
	for _, b := range r.bookings {
		if b.UserEmail == email && b.Status == status {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memBookingRepo) ListByStatus(ctx context.Context, status entities.BookingStatus, courtTypeFilter string) ([]*entities.Booking, error) {
	result := []*entities.Booking{}
	for _, b := range r.bookings {
		if b.Status == status {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memBookingRepo) ListOwnerEmails(ctx context.Context, statuses []entities.BookingStatus) ([]string, error) {
	seen := map[string]bool{}
	for _, b := range r.bookings {
		for _, s := range statuses {
			if b.Status == s {
				seen[b.UserEmail] = true
			}
		}
	}
	emails := []string{}
	for email := range seen {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}

func (r *memBookingRepo) CountByStatus(ctx context.Context, status entities.BookingStatus) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

type memUserRepo struct {
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entities.User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) List(ctx context.Context, nameFilter string) ([]*entities.User, error) {
	result := []*entities.User{}
	for _, u := range r.users {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memUserRepo) ListByEmails(ctx context.Context, emails []string) ([]*entities.User, error) {
	result := []*entities.User{}
	for _, email := range emails {
		if u, ok := r.users[email]; ok {
			copied := *u
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memUserRepo) SetMembership(ctx context.Context, email string, grantedAt time.Time) error {
	user, ok := r.users[email]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	user.Role = entities.RoleMember
	user.MembershipGrantedDate = &grantedAt
	return nil
}

func (r *memUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	if _, ok := r.users[email]; !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	delete(r.users, email)
	return nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// memPaymentRepo mirrors the transactional adapter: the ledger insert
// and the booking confirm happen together, gated on approved.
type memPaymentRepo struct {
	bookings *memBookingRepo
	payments []*entities.Payment
}

func (r *memPaymentRepo) Record(ctx context.Context, payment *entities.Payment) error {
	booking, ok := r.bookings.bookings[payment.BookingID]
	if !ok {
		return apperrors.NewNotFoundError("booking not found")
	}
	if booking.Status != entities.BookingStatusApproved {
		return apperrors.NewConflictError("payment requires an approved booking")
	}
	copied := *payment
	r.payments = append(r.payments, &copied)
	booking.Status = entities.BookingStatusConfirmed
	booking.PaymentStatus = entities.PaymentStatusPaid
	return nil
}

func (r *memPaymentRepo) ListByUser(ctx context.Context, email string) ([]*entities.Payment, error) {
	result := []*entities.Payment{}
	for _, p := range r.payments {
		if p.UserEmail == email {
			copied := *p
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PaidAt.After(result[j].PaidAt) })
	return result, nil
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	bookingRepo := newMemBookingRepo()
	userRepo := newMemUserRepo()
	paymentRepo := &memPaymentRepo{bookings: bookingRepo}

	userService := services.NewUserService(userRepo)
	membershipService := services.NewMembershipService(userRepo, bookingRepo)
	bookingService := services.NewBookingService(bookingRepo, userRepo, membershipService, nil, nil)
	paymentService := services.NewPaymentService(paymentRepo, new(MockPaymentGateway), nil, nil)

	// Register a plain user
	user, err := userService.Register(ctx, "a@x.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleUser, user.Role)

	// Create a booking: starts pending and unpaid
	booking := &entities.Booking{
		UserEmail: "a@x.com",
		CourtType: "tennis",
		Slot:      "10:00-11:00",
		SlotDate:  time.Now().Add(48 * time.Hour),
		Price:     20,
	}
	require.NoError(t, bookingService.Create(ctx, booking))
	assert.Equal(t, entities.BookingStatusPending, booking.Status)
	assert.Equal(t, entities.PaymentStatusUnpaid, booking.PaymentStatus)

	// Paying before approval is rejected and confirms nothing
	prematurePayment := &entities.Payment{
		BookingID:       booking.ID,
		UserEmail:       "a@x.com",
		AmountPaid:      20,
		PaymentIntentID: "pi_early",
	}
	err = paymentService.RecordPayment(ctx, prematurePayment)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))

	// Admin approval promotes the owner to member and stamps the date
	require.NoError(t, bookingService.Approve(ctx, booking.ID))

	approved, err := bookingService.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusApproved, approved.Status)
	require.NotNil(t, approved.MembershipGrantedDate)
	firstGrant := *approved.MembershipGrantedDate

	promoted, err := userService.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleMember, promoted.Role)

	// A second approval never re-stamps the grant date
	require.NoError(t, bookingService.Approve(ctx, booking.ID))
	reapproved, err := bookingService.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, firstGrant, *reapproved.MembershipGrantedDate)

	// Recording the payment confirms the booking
	payment := &entities.Payment{
		BookingID:       booking.ID,
		UserEmail:       "a@x.com",
		AmountPaid:      20,
		PaymentIntentID: "pi_123",
	}
	require.NoError(t, paymentService.RecordPayment(ctx, payment))

	confirmed, err := bookingService.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusConfirmed, confirmed.Status)
	assert.Equal(t, entities.PaymentStatusPaid, confirmed.PaymentStatus)

	history, err := paymentService.History(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 20.0, history[0].AmountPaid)

	// The owner now shows up on the member roster
	members, err := membershipService.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "a@x.com", members[0].Email)

	// Deleting the booking leaves the payment ledger intact
	require.NoError(t, bookingService.Delete(ctx, booking.ID))

	history, err = paymentService.History(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
