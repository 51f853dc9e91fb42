package handlers

import (
	"encoding/json"
	"net/http"

	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	userService   *services.UserService
	tripService   *services.TripService
	notifications *services.NotificationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userService *services.UserService,
	tripService *services.TripService,
	notifications *services.NotificationService,
) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		tripService:   tripService,
		notifications: notifications,
	}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	users, total, err := h.userService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
	})
}

// SetUserStatusRequest represents the moderation status payload
type SetUserStatusRequest struct {
	Status string `json:"status"`
}

// SetUserStatus handles PATCH /api/v1/admin/users/{user_id}/status
func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "user_id")

	var req SetUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.SetStatus(r.Context(), targetID, req.Status); err != nil {
		log.Error().Err(err).Str("user_id", targetID).Msg("Failed to set user status")
		respondServiceError(w, err)
		return
	}

	message := "Your account has been reactivated"
	if req.Status == models.StatusBanned {
		message = "Your account has been suspended by a moderator"
	}
	if err := h.notifications.Notify(r.Context(), targetID, services.NotifyAccountStatus, message); err != nil {
		log.Warn().Err(err).Str("user_id", targetID).Msg("Failed to notify user about status change")
	}

	log.Info().Str("user_id", targetID).Str("status", req.Status).Msg("User status changed")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

// DeleteTrip handles DELETE /api/v1/admin/trips/{trip_id}
func (h *AdminHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "trip_id")

	ownerID, err := h.tripService.AdminDeleteTrip(r.Context(), tripID)
	if err != nil {
		log.Error().Err(err).Str("trip_id", tripID).Msg("Failed to remove trip")
		respondServiceError(w, err)
		return
	}

	if err := h.notifications.Notify(r.Context(), ownerID, services.NotifyTripRemoved,
		"One of your trips was removed by a moderator"); err != nil {
		log.Warn().Err(err).Str("user_id", ownerID).Msg("Failed to notify owner about trip removal")
	}

	log.Info().Str("trip_id", tripID).Str("owner_id", ownerID).Msg("Trip removed by moderator")
	w.WriteHeader(http.StatusNoContent)
}
