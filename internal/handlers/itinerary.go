package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"globetrotter-backend/internal/middleware"
	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ItineraryHandler handles itinerary HTTP requests
type ItineraryHandler struct {
	itineraryService *services.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraryService *services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

func itineraryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itinerary_id"), 10, 64)
	return id, err == nil
}

// CreateItinerary handles POST /api/v1/itineraries
func (h *ItineraryHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var in services.CreateItineraryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.itineraryService.Create(r.Context(), userID, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create itinerary")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Int64("itinerary_id", id).Msg("Itinerary created")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": "Itinerary created",
	})
}

// ListItineraries handles GET /api/v1/itineraries
func (h *ItineraryHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	items, total, err := h.itineraryService.List(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list itineraries")
		respondServiceError(w, err)
		return
	}
	if items == nil {
		items = []*models.Itinerary{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"itineraries": items,
		"total":       total,
	})
}

// GetItinerary handles GET /api/v1/itineraries/{itinerary_id}
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := itineraryID(r)
	if !ok {
		respondError(w, "Invalid itinerary id", http.StatusBadRequest)
		return
	}

	it, err := h.itineraryService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// SaveDraftRequest carries the PATCH payload: cost and information
// only. Stop edits go through the stops endpoint.
type SaveDraftRequest struct {
	Cost        float64 `json:"cost"`
	Information *string `json:"information"`
}

// SaveDraft handles PATCH /api/v1/itineraries/{itinerary_id}
func (h *ItineraryHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, ok := itineraryID(r)
	if !ok {
		respondError(w, "Invalid itinerary id", http.StatusBadRequest)
		return
	}

	var req SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.itineraryService.SaveDraft(r.Context(), userID, id, req.Cost, req.Information); err != nil {
		log.Error().Err(err).Int64("itinerary_id", id).Msg("Failed to save draft")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Draft saved"})
}

// ReplaceStopsRequest carries the full replacement stop list
type ReplaceStopsRequest struct {
	Destinations json.RawMessage `json:"destinations"`
}

// ReplaceStops handles PUT /api/v1/itineraries/{itinerary_id}/stops
func (h *ItineraryHandler) ReplaceStops(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, ok := itineraryID(r)
	if !ok {
		respondError(w, "Invalid itinerary id", http.StatusBadRequest)
		return
	}

	var req ReplaceStopsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stops, err := h.itineraryService.ReplaceStops(r.Context(), userID, id, req.Destinations)
	if err != nil {
		log.Error().Err(err).Int64("itinerary_id", id).Msg("Failed to replace stops")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Stops updated",
		"destinations": stops,
	})
}

// DeleteItinerary handles DELETE /api/v1/itineraries/{itinerary_id}
func (h *ItineraryHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, ok := itineraryID(r)
	if !ok {
		respondError(w, "Invalid itinerary id", http.StatusBadRequest)
		return
	}

	if err := h.itineraryService.Delete(r.Context(), userID, id); err != nil {
		log.Error().Err(err).Int64("itinerary_id", id).Msg("Failed to delete itinerary")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCalendar handles GET /api/v1/itineraries/{itinerary_id}/calendar
func (h *ItineraryHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := itineraryID(r)
	if !ok {
		respondError(w, "Invalid itinerary id", http.StatusBadRequest)
		return
	}

	events, err := h.itineraryService.Calendar(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
