package services

import (
	"context"
	"errors"
	"fmt"

	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/repository"

	"github.com/jackc/pgx/v5"
)

// UserService handles profile and admin user management
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile updates name and bio for a user
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, bio string) (*models.User, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, name, bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

// SetAvatarURL records the uploaded avatar location
func (s *UserService) SetAvatarURL(ctx context.Context, userID, url string) error {
	if err := s.userRepo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	return nil
}

// ListUsers returns users for the admin view
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

// SetStatus changes a user's account status (admin moderation)
func (s *UserService) SetStatus(ctx context.Context, userID, status string) error {
	if status != models.StatusActive && status != models.StatusBanned {
		return fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, models.StatusActive, models.StatusBanned)
	}
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}
