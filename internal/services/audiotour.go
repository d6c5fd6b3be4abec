package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MK-CIAN/AWM/internal/models"
)

type AudiotourService struct {
	db DBConn
}

func NewAudiotourService(db DBConn) *AudiotourService {
	return &AudiotourService{db: db}
}

// ListPoints returns tour points with their subpoints nested, optionally
// filtered by category ("all" or empty disables the filter).
func (s *AudiotourService) ListPoints(ctx context.Context, category string) ([]models.AudiotourPoint, error) {
	query := `SELECT id, name, description, longitude, latitude, category
	          FROM audiotour_points ORDER BY name`
	args := []any{}
	if category != "" && category != "all" {
		query = `SELECT id, name, description, longitude, latitude, category
		         FROM audiotour_points WHERE category = $1 ORDER BY name`
		args = append(args, category)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audiotour points: %w", err)
	}
	defer rows.Close()

	var points []models.AudiotourPoint
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var p models.AudiotourPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Longitude, &p.Latitude, &p.Category); err != nil {
			return nil, fmt.Errorf("scanning audiotour point: %w", err)
		}
		p.Subpoints = []models.AudiotourSubpoint{}
		index[p.ID] = len(points)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading audiotour points: %w", err)
	}
	rows.Close()

	if len(points) == 0 {
		return []models.AudiotourPoint{}, nil
	}

	ids := make([]uuid.UUID, 0, len(points))
	for _, p := range points {
		ids = append(ids, p.ID)
	}

	subRows, err := s.db.Query(ctx,
		`SELECT id, point_id, name, longitude, latitude
		 FROM audiotour_subpoints
		 WHERE point_id = ANY($1)
		 ORDER BY name`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("listing audiotour subpoints: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var sp models.AudiotourSubpoint
		if err := subRows.Scan(&sp.ID, &sp.PointID, &sp.Name, &sp.Longitude, &sp.Latitude); err != nil {
			return nil, fmt.Errorf("scanning audiotour subpoint: %w", err)
		}
		if i, ok := index[sp.PointID]; ok {
			points[i].Subpoints = append(points[i].Subpoints, sp)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("reading audiotour subpoints: %w", err)
	}

	return points, nil
}
