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
	"github.com/rs/zerolog/log"
)

// Notification types pushed by the backend.
const (
	NotifyTripRemoved    = "trip_removed"
	NotifyAccountStatus  = "account_status"
	NotifyItineraryReady = "itinerary_ready"
)

// NotificationService persists notifications and pushes them to
// connected websocket clients.
type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *WSHub
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo *repository.NotificationRepository, hub *WSHub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Notify stores a notification and delivers it live when the user
// is connected. Delivery failures are logged, never propagated: the
// stored row is the source of truth.
func (s *NotificationService) Notify(ctx context.Context, userID, notifType, message string) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.hub != nil && s.hub.IsOnline(userID) {
		if err := s.hub.SendToUser(userID, WSMessage{Type: "notification", Data: n}); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to push notification")
		}
	}
	return nil
}

// List returns a user's notifications, unread first
func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.repo.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
