package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/planner"

	"github.com/jackc/pgx/v5"
)

// ItineraryStore is the persistence surface the itinerary service
// needs. *repository.ItineraryRepository implements it.
type ItineraryStore interface {
	Create(ctx context.Context, it *models.Itinerary) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Itinerary, error)
	List(ctx context.Context, limit, offset int) ([]*models.Itinerary, int, error)
	UpdateDraft(ctx context.Context, id int64, cost float64, information *string) error
	ReplaceStops(ctx context.Context, id int64, stops []models.Stop) error
	Delete(ctx context.Context, id int64) error
}

// ItineraryService handles itinerary business logic
type ItineraryService struct {
	store ItineraryStore
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(store ItineraryStore) *ItineraryService {
	return &ItineraryService{store: store}
}

// CreateItineraryInput carries the create payload. Destinations is
// raw JSON because old clients occasionally double-encode stops; the
// tolerant decoder sorts that out.
type CreateItineraryInput struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Destinations json.RawMessage `json:"destinations"`
	Cost         *float64        `json:"cost"`
	Information  *string         `json:"information"`
}

// Create validates and persists a new itinerary. Cost defaults to 0
// and information to null when absent.
func (s *ItineraryService) Create(ctx context.Context, userID string, in CreateItineraryInput) (int64, error) {
	if in.Title == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	stops, err := planner.DecodeStops(in.Destinations)
	if err != nil {
		return 0, fmt.Errorf("%w: destinations must be a JSON array", ErrInvalidInput)
	}
	if err := planner.ValidateStops(stops); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cost := 0.0
	if in.Cost != nil {
		if *in.Cost < 0 {
			return 0, fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
		}
		cost = *in.Cost
	}

	now := time.Now()
	it := &models.Itinerary{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Cost:         cost,
		Information:  in.Information,
		Destinations: stops,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.store.Create(ctx, it)
	if err != nil {
		return 0, fmt.Errorf("failed to create itinerary: %w", err)
	}
	return id, nil
}

// Get returns an itinerary with its stops
func (s *ItineraryService) Get(ctx context.Context, id int64) (*models.Itinerary, error) {
	it, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return it, nil
}

// List returns itineraries with pagination
func (s *ItineraryService) List(ctx context.Context, limit, offset int) ([]*models.Itinerary, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

// SaveDraft updates only cost and information, the draft-save
// contract. Stop edits go through ReplaceStops.
func (s *ItineraryService) SaveDraft(ctx context.Context, userID string, id int64, cost float64, information *string) error {
	if cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.UpdateDraft(ctx, id, cost, information); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// ReplaceStops swaps the whole stop list of an owned itinerary
func (s *ItineraryService) ReplaceStops(ctx context.Context, userID string, id int64, raw json.RawMessage) ([]models.Stop, error) {
	stops, err := planner.DecodeStops(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: destinations must be a JSON array", ErrInvalidInput)
	}
	if err := planner.ValidateStops(stops); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.authorize(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.store.ReplaceStops(ctx, id, stops); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to replace stops: %w", err)
	}
	return stops, nil
}

// Delete removes an owned itinerary
func (s *ItineraryService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return nil
}

// Calendar projects an itinerary's stops into calendar events
func (s *ItineraryService) Calendar(ctx context.Context, id int64) ([]planner.Event, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return planner.CalendarEvents(it.Destinations), nil
}

func (s *ItineraryService) authorize(ctx context.Context, userID string, id int64) error {
	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.UserID != userID {
		return ErrForbidden
	}
	return nil
}
