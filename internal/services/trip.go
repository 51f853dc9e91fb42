package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TripService handles trip-related business logic
type TripService struct {
	tripRepo *repository.TripRepository
	uploads  *UploadService
}

// NewTripService creates a new trip service
func NewTripService(tripRepo *repository.TripRepository, uploads *UploadService) *TripService {
	return &TripService{tripRepo: tripRepo, uploads: uploads}
}

// TripInput carries the client-supplied trip fields
type TripInput struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

func (in TripInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if in.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	return nil
}

// CreateTrip creates a trip owned by the given user
func (s *TripService) CreateTrip(ctx context.Context, userID string, in TripInput) (*models.Trip, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		Cost:        in.Cost,
		CreatedAt:   time.Now(),
	}
	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

// GetTrip returns a trip owned by the given user. Other users' trips
// are reported as not found rather than forbidden.
func (s *TripService) GetTrip(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if trip.UserID != userID {
		return nil, ErrNotFound
	}
	return trip, nil
}

// ListTrips returns the user's trips with pagination
func (s *TripService) ListTrips(ctx context.Context, userID string, limit, offset int) ([]*models.Trip, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.tripRepo.GetByUserID(ctx, userID, limit, offset)
}

// UpdateTrip replaces the mutable fields of an owned trip
func (s *TripService) UpdateTrip(ctx context.Context, userID, tripID string, in TripInput) (*models.Trip, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:          tripID,
		UserID:      userID,
		Name:        in.Name,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		Cost:        in.Cost,
	}
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return s.GetTrip(ctx, userID, tripID)
}

// DeleteTrip deletes an owned trip
func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID string) error {
	if _, err := s.GetTrip(ctx, userID, tripID); err != nil {
		return err
	}
	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// AdminDeleteTrip deletes any trip regardless of ownership and
// returns the owner id so a moderation notice can be sent.
func (s *TripService) AdminDeleteTrip(ctx context.Context, tripID string) (string, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get trip: %w", err)
	}
	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return "", fmt.Errorf("failed to delete trip: %w", err)
	}
	return trip.UserID, nil
}

// CoverUploadTicket issues a pre-signed upload for a trip cover and
// records the resulting URL on the trip.
func (s *TripService) CoverUploadTicket(ctx context.Context, userID, tripID, filename, contentType string) (*UploadTicket, error) {
	if _, err := s.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	ticket, err := s.uploads.PresignPut(ctx, "covers/"+tripID, filename, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.tripRepo.UpdateCoverURL(ctx, tripID, ticket.PublicURL); err != nil {
		return nil, fmt.Errorf("failed to record cover url: %w", err)
	}
	return ticket, nil
}
