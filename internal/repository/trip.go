package repository

import (
	"context"
	"fmt"

	"globetrotter-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *pgxpool.Pool
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{db: db}
}

// Create creates a new trip
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (id, user_id, name, location, start_date, end_date, description, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		trip.ID, trip.UserID, trip.Name, trip.Location, trip.StartDate,
		trip.EndDate, trip.Description, trip.Cost, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by ID
func (r *TripRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	query := `
		SELECT id, user_id, name, location, start_date, end_date, description, cover_url, cost, created_at
		FROM trips
		WHERE id = $1
	`
	var trip models.Trip
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trip.ID, &trip.UserID, &trip.Name, &trip.Location, &trip.StartDate,
		&trip.EndDate, &trip.Description, &trip.CoverURL, &trip.Cost, &trip.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("trip not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// GetByUserID retrieves trips owned by a user with pagination
func (r *TripRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Trip, int, error) {
	countQuery := `SELECT COUNT(*) FROM trips WHERE user_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	query := `
		SELECT id, user_id, name, location, start_date, end_date, description, cover_url, cost, created_at
		FROM trips
		WHERE user_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		var trip models.Trip
		err := rows.Scan(
			&trip.ID, &trip.UserID, &trip.Name, &trip.Location, &trip.StartDate,
			&trip.EndDate, &trip.Description, &trip.CoverURL, &trip.Cost, &trip.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, &trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trips: %w", err)
	}

	return trips, total, nil
}

// Update replaces the mutable fields of a trip owned by the given user
func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	query := `
		UPDATE trips
		SET name = $1, location = $2, start_date = $3, end_date = $4, description = $5, cost = $6
		WHERE id = $7 AND user_id = $8
	`
	result, err := r.db.Exec(ctx, query,
		trip.Name, trip.Location, trip.StartDate, trip.EndDate,
		trip.Description, trip.Cost, trip.ID, trip.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip not found: %w", pgx.ErrNoRows)
	}
	return nil
}

// UpdateCoverURL updates the cover image URL for a trip
func (r *TripRepository) UpdateCoverURL(ctx context.Context, tripID, coverURL string) error {
	query := `UPDATE trips SET cover_url = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, coverURL, tripID)
	if err != nil {
		return fmt.Errorf("failed to update trip cover: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip not found: %w", pgx.ErrNoRows)
	}
	return nil
}

// Delete deletes a trip by ID
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM trips WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip not found: %w", pgx.ErrNoRows)
	}
	return nil
}
