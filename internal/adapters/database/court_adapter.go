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

// CourtAdapter implements the CourtRepository interface
type CourtAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCourtAdapter creates a new court adapter
func NewCourtAdapter(client *postgres.Client) repositories.CourtRepository {
	return &CourtAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var courtColumns = []interface{}{
	"id", "court_type", "image", "slots", "price", "featured", "created_at", "updated_at",
}

// Create creates a new court
func (a *CourtAdapter) Create(ctx context.Context, court *entities.Court) error {
	record := goqu.Record{
		"id":         court.ID,
		"court_type": court.CourtType,
		"image":      court.Image,
		"slots":      court.Slots,
		"price":      court.Price,
		"featured":   court.Featured,
		"created_at": court.CreatedAt,
		"updated_at": court.UpdatedAt,
	}

	query, args, err := a.db.Insert("courts").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create court", err)
	}

	return nil
}

// GetByID retrieves a court by ID
func (a *CourtAdapter) GetByID(ctx context.Context, id string) (*entities.Court, error) {
	query, args, err := a.db.Select(courtColumns...).
		From("courts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	court, err := scanCourt(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("court with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get court", err)
	}

	return court, nil
}

// List retrieves a page of courts together with the total count
func (a *CourtAdapter) List(ctx context.Context, page, size int) ([]*entities.Court, int64, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 6
	}

	total, err := a.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := a.db.Select(courtColumns...).
		From("courts").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(size)).
		Offset(uint((page - 1) * size)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	courts, err := a.queryCourts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return courts, total, nil
}

// ListFeatured retrieves courts flagged as featured
func (a *CourtAdapter) ListFeatured(ctx context.Context) ([]*entities.Court, error) {
	query, args, err := a.db.Select(courtColumns...).
		From("courts").
		Where(goqu.Ex{"featured": true}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCourts(ctx, query, args...)
}

// Update updates a court
func (a *CourtAdapter) Update(ctx context.Context, court *entities.Court) error {
	court.UpdatedAt = time.Now()

	query, args, err := a.db.Update("courts").
		Set(goqu.Record{
			"court_type": court.CourtType,
			"image":      court.Image,
			"slots":      court.Slots,
			"price":      court.Price,
			"featured":   court.Featured,
			"updated_at": court.UpdatedAt,
		}).
		Where(goqu.Ex{"id": court.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update court", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("court with id %s not found", court.ID))
	}

	return nil
}

// Delete deletes a court
func (a *CourtAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("courts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete court", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("court with id %s not found", id))
	}

	return nil
}

// Count returns the total number of courts
func (a *CourtAdapter) Count(ctx context.Context) (int64, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("courts").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count courts", err)
	}
	return count, nil
}

func (a *CourtAdapter) queryCourts(ctx context.Context, query string, args ...interface{}) ([]*entities.Court, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list courts", err)
	}
	defer rows.Close()

	courts := []*entities.Court{}
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan court", err)
		}
		courts = append(courts, court)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate courts", err)
	}

	return courts, nil
}

func scanCourt(row rowScanner) (*entities.Court, error) {
	court := &entities.Court{}
	var image, slots sql.NullString

	err := row.Scan(
		&court.ID,
		&court.CourtType,
		&image,
		&slots,
		&court.Price,
		&court.Featured,
		&court.CreatedAt,
		&court.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	court.Image = image.String
	court.Slots = slots.String

	return court, nil
}
