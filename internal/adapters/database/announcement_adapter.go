package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/repositories"
	"github.com/scmc/club-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// AnnouncementAdapter implements the AnnouncementRepository interface
type AnnouncementAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAnnouncementAdapter creates a new announcement adapter
func NewAnnouncementAdapter(client *postgres.Client) repositories.AnnouncementRepository {
	return &AnnouncementAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new announcement
func (a *AnnouncementAdapter) Create(ctx context.Context, announcement *entities.Announcement) error {
	record := goqu.Record{
		"id":      announcement.ID,
		"title":   announcement.Title,
		"message": announcement.Message,
		"date":    announcement.Date,
	}

	query, args, err := a.db.Insert("announcements").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create announcement", err)
	}

	return nil
}

// List retrieves announcements, newest first
func (a *AnnouncementAdapter) List(ctx context.Context) ([]*entities.Announcement, error) {
	query, args, err := a.db.Select("id", "title", "message", "date").
		From("announcements").
		Order(goqu.I("date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list announcements", err)
	}
	defer rows.Close()

	announcements := []*entities.Announcement{}
	for rows.Next() {
		announcement := &entities.Announcement{}
		if err := rows.Scan(&announcement.ID, &announcement.Title, &announcement.Message, &announcement.Date); err != nil {
			return nil, apperrors.NewInternalError("failed to scan announcement", err)
		}
		announcements = append(announcements, announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate announcements", err)
	}

	return announcements, nil
}

// Update updates an announcement
func (a *AnnouncementAdapter) Update(ctx context.Context, announcement *entities.Announcement) error {
	query, args, err := a.db.Update("announcements").
		Set(goqu.Record{
			"title":   announcement.Title,
			"message": announcement.Message,
		}).
		Where(goqu.Ex{"id": announcement.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update announcement", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("announcement with id %s not found", announcement.ID))
	}

	return nil
}

// Delete deletes an announcement
func (a *AnnouncementAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("announcements").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete announcement", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("announcement with id %s not found", id))
	}

	return nil
}

// EventAdapter implements the EventRepository interface
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new event
func (a *EventAdapter) Create(ctx context.Context, event *entities.Event) error {
	record := goqu.Record{
		"id":          event.ID,
		"title":       event.Title,
		"description": event.Description,
		"date":        event.Date,
		"created_at":  event.CreatedAt,
	}

	query, args, err := a.db.Insert("events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create event", err)
	}

	return nil
}

// List retrieves all events
func (a *EventAdapter) List(ctx context.Context) ([]*entities.Event, error) {
	query, args, err := a.db.Select("id", "title", "description", "date", "created_at").
		From("events").
		Order(goqu.I("date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	defer rows.Close()

	events := []*entities.Event{}
	for rows.Next() {
		event := &entities.Event{}
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Date, &event.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate events", err)
	}

	return events, nil
}

// Update applies updates to an event
func (a *EventAdapter) Update(ctx context.Context, event *entities.Event) error {
	record := goqu.Record{
		"title":       event.Title,
		"description": event.Description,
	}
	if !event.Date.IsZero() {
		record["date"] = event.Date
	}

	query, args, err := a.db.Update("events").
		Set(record).
		Where(goqu.Ex{"id": event.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update event", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", event.ID))
	}

	return nil
}
