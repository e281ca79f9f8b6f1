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

// UserService handles account registration and role lookup
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates an account for the email if none exists yet.
// Registering an existing email returns the existing account unchanged,
// so social-login callbacks can call this on every sign-in.
func (s *UserService) Register(ctx context.Context, email, name string) (*entities.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	user := &entities.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      entities.RoleUser,
		CreatedAt: time.Now(),
	}
	user.UpdatedAt = user.CreatedAt

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetRole returns the user's role. Unknown emails get the default role
// rather than an error, matching what a fresh registration would hold.
func (s *UserService) GetRole(ctx context.Context, email string) (entities.Role, error) {
	if strings.TrimSpace(email) == "" {
		return entities.RoleUser, apperrors.NewValidationError("user email is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if apperrors.IsNotFound(err) {
		return entities.RoleUser, nil
	}
	if err != nil {
		return entities.RoleUser, err
	}
	return user.Role, nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	return s.repo.GetByEmail(ctx, email)
}

// List retrieves users, optionally filtered by a case-insensitive
// substring match on name
func (s *UserService) List(ctx context.Context, nameFilter string) ([]*entities.User, error) {
	return s.repo.List(ctx, nameFilter)
}
