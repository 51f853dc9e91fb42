package handlers

import (
	"encoding/json"
	"net/http"

	"globetrotter-backend/internal/middleware"
	"globetrotter-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userService *services.UserService
	uploads     *services.UploadService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, uploads *services.UploadService) *UserHandler {
	return &UserHandler{userService: userService, uploads: uploads}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMeRequest represents the profile update payload
type UpdateMeRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.Name, req.Bio)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// AvatarUploadRequest represents the avatar upload payload
type AvatarUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadAvatar handles POST /api/v1/users/me/avatar
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		respondError(w, "filename is required", http.StatusBadRequest)
		return
	}

	ticket, err := h.uploads.PresignPut(r.Context(), "avatars/"+userID, req.Filename, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to presign avatar upload")
		respondServiceError(w, err)
		return
	}
	if err := h.userService.SetAvatarURL(r.Context(), userID, ticket.PublicURL); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to record avatar url")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}
