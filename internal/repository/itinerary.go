package repository

import (
	"context"
	"fmt"

	"globetrotter-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItineraryRepository handles database operations for itineraries.
// Stops and activities live in their own tables keyed by itinerary
// and stop id, ordered by a position column.
type ItineraryRepository struct {
	db *pgxpool.Pool
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db *pgxpool.Pool) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create inserts the itinerary row together with its stops and
// activities in a single transaction and returns the assigned id.
func (r *ItineraryRepository) Create(ctx context.Context, it *models.Itinerary) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO itineraries (user_id, title, description, start_date, end_date, cost, information, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err = tx.QueryRow(ctx, query,
		it.UserID, it.Title, it.Description, it.StartDate, it.EndDate,
		it.Cost, it.Information, it.CreatedAt, it.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create itinerary: %w", err)
	}

	if err := insertStops(ctx, tx, id, it.Destinations); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit itinerary: %w", err)
	}
	return id, nil
}

func insertStops(ctx context.Context, tx pgx.Tx, itineraryID int64, stops []models.Stop) error {
	stopQuery := `
		INSERT INTO stops (id, itinerary_id, city, start_date, end_date, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	actQuery := `
		INSERT INTO activities (id, itinerary_id, stop_id, name, time, cost, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, stop := range stops {
		if _, err := tx.Exec(ctx, stopQuery,
			stop.ID, itineraryID, stop.City, stop.StartDate, stop.EndDate, i,
		); err != nil {
			return fmt.Errorf("failed to insert stop: %w", err)
		}
		for j, act := range stop.Activities {
			if _, err := tx.Exec(ctx, actQuery,
				act.ID, itineraryID, stop.ID, act.Name, act.Time, act.Cost, j,
			); err != nil {
				return fmt.Errorf("failed to insert activity: %w", err)
			}
		}
	}
	return nil
}

// GetByID retrieves an itinerary with its stops and activities
func (r *ItineraryRepository) GetByID(ctx context.Context, id int64) (*models.Itinerary, error) {
	query := `
		SELECT id, user_id, title, description, start_date, end_date, cost, information, created_at, updated_at
		FROM itineraries
		WHERE id = $1
	`
	var it models.Itinerary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.UserID, &it.Title, &it.Description, &it.StartDate,
		&it.EndDate, &it.Cost, &it.Information, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("itinerary not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	stops, err := r.getStops(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Destinations = stops
	return &it, nil
}

func (r *ItineraryRepository) getStops(ctx context.Context, itineraryID int64) ([]models.Stop, error) {
	query := `
		SELECT id, city, start_date, end_date
		FROM stops
		WHERE itinerary_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stops: %w", err)
	}
	defer rows.Close()

	stops := []models.Stop{}
	for rows.Next() {
		var stop models.Stop
		if err := rows.Scan(&stop.ID, &stop.City, &stop.StartDate, &stop.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan stop: %w", err)
		}
		stop.Activities = []models.Activity{}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stops: %w", err)
	}

	if len(stops) == 0 {
		return stops, nil
	}

	actQuery := `
		SELECT id, stop_id, name, time, cost
		FROM activities
		WHERE itinerary_id = $1
		ORDER BY position
	`
	actRows, err := r.db.Query(ctx, actQuery, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer actRows.Close()

	byStop := make(map[string]*models.Stop, len(stops))
	for i := range stops {
		byStop[stops[i].ID] = &stops[i]
	}
	for actRows.Next() {
		var act models.Activity
		var stopID string
		if err := actRows.Scan(&act.ID, &stopID, &act.Name, &act.Time, &act.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if stop, ok := byStop[stopID]; ok {
			stop.Activities = append(stop.Activities, act)
		}
	}
	if err := actRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return stops, nil
}

// List retrieves itineraries with pagination, stops included
func (r *ItineraryRepository) List(ctx context.Context, limit, offset int) ([]*models.Itinerary, int, error) {
	countQuery := `SELECT COUNT(*) FROM itineraries`
	var total int
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	query := `
		SELECT id, user_id, title, description, start_date, end_date, cost, information, created_at, updated_at
		FROM itineraries
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var items []*models.Itinerary
	for rows.Next() {
		var it models.Itinerary
		err := rows.Scan(
			&it.ID, &it.UserID, &it.Title, &it.Description, &it.StartDate,
			&it.EndDate, &it.Cost, &it.Information, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating itineraries: %w", err)
	}

	for _, it := range items {
		stops, err := r.getStops(ctx, it.ID)
		if err != nil {
			return nil, 0, err
		}
		it.Destinations = stops
	}

	return items, total, nil
}

// UpdateDraft updates the cost and information fields and bumps
// updated_at. Returns an error when no row matched.
func (r *ItineraryRepository) UpdateDraft(ctx context.Context, id int64, cost float64, information *string) error {
	query := `UPDATE itineraries SET cost = $1, information = $2, updated_at = now() WHERE id = $3`
	result, err := r.db.Exec(ctx, query, cost, information, id)
	if err != nil {
		return fmt.Errorf("failed to update itinerary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}
	return nil
}

// ReplaceStops replaces the full stop list of an itinerary in one
// transaction. Activities go with their stops via cascade.
func (r *ItineraryRepository) ReplaceStops(ctx context.Context, id int64, stops []models.Stop) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE itineraries SET updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch itinerary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM stops WHERE itinerary_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear stops: %w", err)
	}
	if err := insertStops(ctx, tx, id, stops); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit stop replacement: %w", err)
	}
	return nil
}

// Delete removes an itinerary and, via cascade, its stops and activities
func (r *ItineraryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}
	return nil
}
