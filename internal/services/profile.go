package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MK-CIAN/AWM/internal/models"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type ProfileService struct {
	db DBConn
}

func NewProfileService(db DBConn) *ProfileService {
	return &ProfileService{db: db}
}

// ParseCoordinates validates a lat/lon pair sent as strings. Both values
// must be present and numeric, and within the WGS84 ranges.
func ParseCoordinates(latitude, longitude string) (float64, float64, error) {
	if latitude == "" || longitude == "" {
		return 0, 0, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, ErrInvalidCoordinates
	}
	return lat, lon, nil
}

// UpdateLocation stores the user's position and refreshes last_updated.
// The profile row always exists (created with the user), so this is a
// plain update.
func (s *ProfileService) UpdateLocation(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE profiles
		 SET latitude = $1, longitude = $2, last_updated = now()
		 WHERE user_id = $3`,
		latitude, longitude, userID,
	)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Get returns the user's profile. A missing row is reported as a profile
// with no location rather than an error.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{UserID: userID}
	err := s.db.QueryRow(ctx,
		`SELECT latitude, longitude, last_updated FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&profile.Latitude, &profile.Longitude, &profile.LastUpdated)

	if errors.Is(err, pgx.ErrNoRows) {
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return profile, nil
}
