package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	"github.com/scmc/club-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var bookingColumns = []interface{}{
	"id", "user_email", "court_type", "slot", "slot_date", "price",
	"status", "payment_status", "membership_granted_date", "created_at", "updated_at",
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":                      booking.ID,
		"user_email":              booking.UserEmail,
		"court_type":              booking.CourtType,
		"slot":                    booking.Slot,
		"slot_date":               booking.SlotDate,
		"price":                   booking.Price,
		"status":                  booking.Status,
		"payment_status":          booking.PaymentStatus,
		"membership_granted_date": booking.MembershipGrantedDate,
		"created_at":              booking.CreatedAt,
		"updated_at":              booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// Approve moves a booking to the approved state. A non-nil grantedAt is
// stamped onto the booking; payment_status is left unpaid either way.
func (a *BookingAdapter) Approve(ctx context.Context, id string, grantedAt *time.Time) error {
	record := goqu.Record{
		"status":         entities.BookingStatusApproved,
		"payment_status": entities.PaymentStatusUnpaid,
		"updated_at":     time.Now(),
	}
	if grantedAt != nil {
		record["membership_granted_date"] = *grantedAt
	}

	query, args, err := a.db.Update("bookings").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build approve query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to approve booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	return nil
}

// Delete removes a booking regardless of its status. Payments recorded
// against it are intentionally left in place.
func (a *BookingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	return nil
}

// ListByOwnerAndStatus retrieves bookings for one owner in one status
func (a *BookingAdapter) ListByOwnerAndStatus(ctx context.Context, email string, status entities.BookingStatus) ([]*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"user_email": email, "status": status}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryBookings(ctx, query, args...)
}

// ListByStatus retrieves all bookings in a status, optionally filtered
// by a case-insensitive court type substring
func (a *BookingAdapter) ListByStatus(ctx context.Context, status entities.BookingStatus, courtTypeFilter string) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"status": status}).
		Order(goqu.I("created_at").Desc())
	if courtTypeFilter != "" {
		ds = ds.Where(goqu.I("court_type").ILike("%" + courtTypeFilter + "%"))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryBookings(ctx, query, args...)
}

// ListOwnerEmails returns the distinct owner emails of bookings in any
// of the given statuses
func (a *BookingAdapter) ListOwnerEmails(ctx context.Context, statuses []entities.BookingStatus) ([]string, error) {
	query, args, err := a.db.Select("user_email").
		Distinct().
		From("bookings").
		Where(goqu.Ex{"status": statuses}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list booking owners", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking owner", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate booking owners", err)
	}

	return emails, nil
}

// CountByStatus returns the number of bookings in a status
func (a *BookingAdapter) CountByStatus(ctx context.Context, status entities.BookingStatus) (int64, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("bookings").
		Where(goqu.Ex{"status": status}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count bookings", err)
	}
	return count, nil
}

func (a *BookingAdapter) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*entities.Booking, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := []*entities.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var slot sql.NullString
	var grantedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserEmail,
		&booking.CourtType,
		&slot,
		&booking.SlotDate,
		&booking.Price,
		&booking.Status,
		&booking.PaymentStatus,
		&grantedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Slot = slot.String
	if grantedAt.Valid {
		booking.MembershipGrantedDate = &grantedAt.Time
	}

	return booking, nil
}
