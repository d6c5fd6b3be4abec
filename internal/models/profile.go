package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds a user's last-known location. Every user has exactly one
// profile; it is created in the same transaction as the user row.
type Profile struct {
	UserID      uuid.UUID  `json:"user_id"`
	Longitude   *float64   `json:"longitude"`
	Latitude    *float64   `json:"latitude"`
	LastUpdated *time.Time `json:"last_updated"`
}

// HasLocation reports whether a location has ever been recorded.
func (p *Profile) HasLocation() bool {
	return p.Longitude != nil && p.Latitude != nil
}

// Location is the public projection of a point, latitude first to match
// the shape the map frontend consumes.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
