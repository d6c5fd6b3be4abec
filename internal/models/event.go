package models

import (
	"time"

	"github.com/google/uuid"
)

// Event rows are populated by the external ingestion job; this service
// only reads them. Coordinates are nullable because some upstream feeds
// omit them.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Venue         *string   `json:"location"`
	Latitude      *float64  `json:"lat"`
	Longitude     *float64  `json:"lon"`
	Date          time.Time `json:"date"`
	Category      *string   `json:"category"`
	ExternalLink  string    `json:"external_link"`
	ImageURL      *string   `json:"image_url"`
	Source        *string   `json:"-"`
	SourceEventID string    `json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// SavedEvent marks an event a user bookmarked. One row per (user, event).
type SavedEvent struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	EventID uuid.UUID `json:"event_id"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedEventSummary is the trimmed event shape returned by the saved
// events listing.
type SavedEventSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	Venue     *string   `json:"location"`
	Latitude  *float64  `json:"lat"`
	Longitude *float64  `json:"lon"`
	Date      time.Time `json:"date"`
}
