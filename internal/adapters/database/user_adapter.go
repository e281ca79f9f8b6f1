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

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var userColumns = []interface{}{
	"id", "email", "name", "role", "membership_granted_date", "created_at", "updated_at",
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":                      user.ID,
		"email":                   user.Email,
		"name":                    user.Name,
		"role":                    user.Role,
		"membership_granted_date": user.MembershipGrantedDate,
		"created_at":              user.CreatedAt,
		"updated_at":              user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := a.scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// List retrieves users, optionally filtered by name substring
func (a *UserAdapter) List(ctx context.Context, nameFilter string) ([]*entities.User, error) {
	ds := a.db.Select(userColumns...).From("users").Order(goqu.I("created_at").Desc())
	if nameFilter != "" {
		ds = ds.Where(goqu.I("name").ILike("%" + nameFilter + "%"))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryUsers(ctx, query, args...)
}

// ListByEmails retrieves users whose email is in the given set
func (a *UserAdapter) ListByEmails(ctx context.Context, emails []string) ([]*entities.User, error) {
	if len(emails) == 0 {
		return []*entities.User{}, nil
	}

	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{"email": emails}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryUsers(ctx, query, args...)
}

// SetMembership promotes a user to member and stamps the grant date.
// Re-granting silently re-stamps the date (last write wins).
func (a *UserAdapter) SetMembership(ctx context.Context, email string, grantedAt time.Time) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{
			"role":                    entities.RoleMember,
			"membership_granted_date": grantedAt,
			"updated_at":              time.Now(),
		}).
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build membership update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to grant membership", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}

	return nil
}

// DeleteByEmail removes a user
func (a *UserAdapter) DeleteByEmail(ctx context.Context, email string) error {
	query, args, err := a.db.Delete("users").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}

	return nil
}

// Count returns the total number of users
func (a *UserAdapter) Count(ctx context.Context) (int64, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("users").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count users", err)
	}
	return count, nil
}

func (a *UserAdapter) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*entities.User, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := a.scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *UserAdapter) scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var role string
	var name sql.NullString
	var grantedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&name,
		&role,
		&grantedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Roles are stored as plain strings; unknown values collapse to RoleUser.
	user.Role = entities.ParseRole(role)
	user.Name = name.String
	if grantedAt.Valid {
		user.MembershipGrantedDate = &grantedAt.Time
	}

	return user, nil
}
