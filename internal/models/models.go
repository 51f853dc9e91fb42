package models

import "time"

// Roles assigned to users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account statuses.
const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Trip represents a named journey owned by a user
type Trip struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Description string    `json:"description"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	Cost        float64   `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// Activity is a timed, optionally priced item within a Stop.
// A nil Cost means free/unspecified.
type Activity struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Time string   `json:"time"`
	Cost *float64 `json:"cost,omitempty"`
}

// Stop is a single city stay within an itinerary. The ID is
// client-generated and stable across reorders. Dates are ISO
// "2006-01-02" strings; activities are kept in display order.
type Stop struct {
	ID         string     `json:"id"`
	City       string     `json:"city"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the persisted plan record. Destinations is the
// ordered stop list, stored normalized and reassembled on read.
type Itinerary struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Cost         float64   `json:"cost"`
	Information  *string   `json:"information"`
	Destinations []Stop    `json:"destinations"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Notification represents an in-app notification for a user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
