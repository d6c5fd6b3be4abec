package models

import "github.com/google/uuid"

// AudiotourCategories is the set of categories a tour point may carry.
var AudiotourCategories = []string{"art", "history", "tourist", "nature", "education"}

// AudiotourPoint is a stop on a self-guided audio tour.
type AudiotourPoint struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Longitude   float64             `json:"lon"`
	Latitude    float64             `json:"lat"`
	Category    string              `json:"category"`
	Subpoints   []AudiotourSubpoint `json:"subpoints"`
}

// AudiotourSubpoint is a secondary marker attached to a tour point.
type AudiotourSubpoint struct {
	ID        uuid.UUID `json:"-"`
	PointID   uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Longitude float64   `json:"lon"`
	Latitude  float64   `json:"lat"`
}
