package handlers

import (
	"encoding/json"
	"net/http"

	"globetrotter-backend/internal/middleware"
	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TripHandler handles trip HTTP requests
type TripHandler struct {
	tripService *services.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var in services.TripInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.tripService.CreateTrip(r.Context(), userID, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create trip")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", trip.ID).Msg("Trip created")
	respondJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /api/v1/trips
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset := pagination(r)

	trips, total, err := h.tripService.ListTrips(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list trips")
		respondServiceError(w, err)
		return
	}
	if trips == nil {
		trips = []*models.Trip{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"trips": trips,
		"total": total,
	})
}

// GetTrip handles GET /api/v1/trips/{trip_id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tripID := chi.URLParam(r, "trip_id")

	trip, err := h.tripService.GetTrip(r.Context(), userID, tripID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/v1/trips/{trip_id}
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tripID := chi.URLParam(r, "trip_id")

	var in services.TripInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.tripService.UpdateTrip(r.Context(), userID, tripID, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to update trip")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/{trip_id}
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tripID := chi.URLParam(r, "trip_id")

	if err := h.tripService.DeleteTrip(r.Context(), userID, tripID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to delete trip")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", tripID).Msg("Trip deleted")
	w.WriteHeader(http.StatusNoContent)
}

// CoverUploadRequest represents the cover upload payload
type CoverUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadCover handles POST /api/v1/trips/{trip_id}/cover
func (h *TripHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tripID := chi.URLParam(r, "trip_id")

	var req CoverUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		respondError(w, "filename is required", http.StatusBadRequest)
		return
	}

	ticket, err := h.tripService.CoverUploadTicket(r.Context(), userID, tripID, req.Filename, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("trip_id", tripID).Msg("Failed to presign cover upload")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}
