package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MK-CIAN/AWM/internal/models"
)

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrEventCoordinatesMissing = errors.New("event coordinates are missing")
)

const eventColumns = `id, name, description, venue, latitude, longitude, date,
	category, external_link, image_url, source, source_event_id, created_at, updated_at`

// EventService reads the events table populated by the ingestion job and
// manages per-user saved events.
type EventService struct {
	db DBConn
}

func NewEventService(db DBConn) *EventService {
	return &EventService{db: db}
}

// List returns events, optionally filtered by category. The category
// "all" (or empty) disables the filter.
func (s *EventService) List(ctx context.Context, category string) ([]models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events ORDER BY date"
	args := []any{}
	if category != "" && category != "all" {
		query = "SELECT " + eventColumns + " FROM events WHERE category = $1 ORDER BY date"
		args = append(args, category)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	if events == nil {
		events = []models.Event{}
	}

	return events, nil
}

// Get returns a single event. Events without coordinates cannot be
// placed on the map and are reported as such.
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := scanEvent(s.db.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = $1", id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	if event.Latitude == nil || event.Longitude == nil {
		return nil, ErrEventCoordinatesMissing
	}

	return event, nil
}

// Save bookmarks an event for the user. The bool reports whether a new
// bookmark was created.
func (s *EventService) Save(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking event: %w", err)
	}
	if !exists {
		return false, ErrEventNotFound
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO saved_events (user_id, event_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, event_id) DO NOTHING`,
		userID, eventID,
	)
	if err != nil {
		return false, fmt.Errorf("saving event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListSaved returns the user's bookmarked events, most recently saved
// first.
func (s *EventService) ListSaved(ctx context.Context, userID uuid.UUID) ([]models.SavedEventSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT e.id, e.name, e.image_url, e.venue, e.latitude, e.longitude, e.date
		 FROM saved_events s
		 JOIN events e ON s.event_id = e.id
		 WHERE s.user_id = $1
		 ORDER BY s.saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing saved events: %w", err)
	}
	defer rows.Close()

	var events []models.SavedEventSummary
	for rows.Next() {
		var e models.SavedEventSummary
		if err := rows.Scan(&e.ID, &e.Name, &e.ImageURL, &e.Venue, &e.Latitude, &e.Longitude, &e.Date); err != nil {
			return nil, fmt.Errorf("scanning saved event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading saved events: %w", err)
	}

	if events == nil {
		events = []models.SavedEventSummary{}
	}

	return events, nil
}

func scanEvent(row Row) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID, &event.Name, &event.Description, &event.Venue,
		&event.Latitude, &event.Longitude, &event.Date, &event.Category,
		&event.ExternalLink, &event.ImageURL, &event.Source,
		&event.SourceEventID, &event.CreatedAt, &event.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	return event, nil
}
