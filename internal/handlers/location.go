package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MK-CIAN/AWM/internal/logging"
	"github.com/MK-CIAN/AWM/internal/models"
	"github.com/MK-CIAN/AWM/internal/services"
)

type LocationHandler struct {
	profileService services.ProfileServiceInterface
}

func NewLocationHandler(profileService services.ProfileServiceInterface) *LocationHandler {
	return &LocationHandler{profileService: profileService}
}

// Coordinate accepts both JSON numbers and quoted strings; older clients
// send coordinates as form-style strings. Missing and non-numeric values
// reach ParseCoordinates and come back as InvalidCoordinates.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Coordinate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Coordinate(n)
	return nil
}

func (c Coordinate) String() string { return string(c) }

type UpdateLocationRequest struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

type UpdateLocationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, UpdateLocationResponse{Success: false, Error: "Invalid request"})
		return
	}

	lat, lon, err := services.ParseCoordinates(req.Latitude.String(), req.Longitude.String())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, UpdateLocationResponse{Success: false, Error: "Invalid coordinates"})
		return
	}

	if err := h.profileService.UpdateLocation(r.Context(), user.ID, lat, lon); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, UpdateLocationResponse{Success: false, Error: "Profile not found"})
			return
		}
		logging.Error("Failed to update location", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UpdateLocationResponse{Success: true})
}

type OwnLocationResponse struct {
	Location    *models.Location `json:"location"`
	LastUpdated *time.Time       `json:"last_updated"`
}

// Get returns the caller's own last-known location, null if none has
// been recorded yet.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.profileService.Get(r.Context(), user.ID)
	if err != nil {
		logging.Error("Failed to load profile", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := OwnLocationResponse{LastUpdated: profile.LastUpdated}
	if profile.HasLocation() {
		response.Location = &models.Location{
			Latitude:  *profile.Latitude,
			Longitude: *profile.Longitude,
		}
	}
	writeJSON(w, http.StatusOK, response)
}
