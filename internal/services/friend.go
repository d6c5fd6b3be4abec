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
	ErrDuplicateRequest = errors.New("friend request already sent")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrInvalidAction    = errors.New("invalid action")
)

// Actions accepted by Respond.
const (
	ActionAccept = "accept"
	ActionDeny   = "deny"
)

// FriendService owns the friend-request ledger, the friendship graph and
// the location visibility filter built on top of them.
type FriendService struct {
	db DBConn
}

func NewFriendService(db DBConn) *FriendService {
	return &FriendService{db: db}
}

// SendRequest records a pending request from one user to another. Only an
// identical pending (from, to) pair is rejected as a duplicate; a reverse
// pending request or an existing friendship does not block a new request.
func (s *FriendService) SendRequest(ctx context.Context, fromUser, toUser uuid.UUID) (*models.FriendRequest, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
		toUser,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking recipient: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var pending bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE from_user = $1 AND to_user = $2 AND status = 'pending'
		)`,
		fromUser, toUser,
	).Scan(&pending)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	request := &models.FriendRequest{}
	err = tx.QueryRow(ctx,
		`INSERT INTO friend_requests (from_user, to_user, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, from_user, to_user, status, created_at`,
		fromUser, toUser,
	).Scan(&request.ID, &request.FromUser, &request.ToUser, &request.Status, &request.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing friend request: %w", err)
	}

	return request, nil
}

// ListPending returns the requests waiting on the given user, oldest
// first, each joined with the requester's username.
func (s *FriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.PendingRequest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, u.username, r.from_user, r.created_at
		 FROM friend_requests r
		 JOIN users u ON r.from_user = u.id
		 WHERE r.to_user = $1 AND r.status = 'pending'
		 ORDER BY r.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}
	defer rows.Close()

	var requests []models.PendingRequest
	for rows.Next() {
		var r models.PendingRequest
		if err := rows.Scan(&r.ID, &r.FromUser, &r.FromUserID, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning pending request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading pending requests: %w", err)
	}

	if requests == nil {
		requests = []models.PendingRequest{}
	}

	return requests, nil
}

// Respond resolves a request targeting the acting user. Accepting creates
// the friendship and marks the request accepted; denying marks it
// rejected. There is deliberately no guard against re-resolving an
// already-resolved request; see the product notes in DESIGN.md.
func (s *FriendService) Respond(ctx context.Context, requestID, actingUser uuid.UUID, action string) error {
	if action != ActionAccept && action != ActionDeny {
		return ErrInvalidAction
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var fromUser uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT from_user FROM friend_requests
		 WHERE id = $1 AND to_user = $2`,
		requestID, actingUser,
	).Scan(&fromUser)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("getting friend request: %w", err)
	}

	if action == ActionAccept {
		_, err = tx.Exec(ctx,
			"INSERT INTO friendships (user1, user2) VALUES ($1, $2)",
			actingUser, fromUser,
		)
		if err != nil {
			return fmt.Errorf("creating friendship: %w", err)
		}
		_, err = tx.Exec(ctx,
			"UPDATE friend_requests SET status = 'accepted' WHERE id = $1",
			requestID,
		)
		if err != nil {
			return fmt.Errorf("accepting friend request: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx,
			"UPDATE friend_requests SET status = 'rejected' WHERE id = $1",
			requestID,
		)
		if err != nil {
			return fmt.Errorf("rejecting friend request: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing response: %w", err)
	}

	return nil
}

// Friends returns the distinct users connected to the given user by a
// friendship row in either direction, never including the user itself.
func (s *FriendService) Friends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT CASE WHEN f.user1 = $1 THEN f.user2 ELSE f.user1 END
		 FROM friendships f
		 WHERE f.user1 = $1 OR f.user2 = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	var friends []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		if id == userID {
			// a self-friendship row must never surface the caller
			continue
		}
		friends = append(friends, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading friends: %w", err)
	}

	if friends == nil {
		friends = []uuid.UUID{}
	}

	return friends, nil
}

// FriendsLocations projects the profiles of the user's friends that have
// a recorded location. This is the only query that exposes another
// user's profile, so the friendship join and the null-location filter
// both live in the SQL rather than in the caller.
func (s *FriendService) FriendsLocations(ctx context.Context, userID uuid.UUID) ([]models.FriendLocation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT u.username, p.latitude, p.longitude, p.last_updated
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.user1 = $1 THEN f.user2 ELSE f.user1 END
		 JOIN profiles p ON p.user_id = u.id
		 WHERE (f.user1 = $1 OR f.user2 = $1)
		   AND u.id != $1
		   AND p.latitude IS NOT NULL
		   AND p.longitude IS NOT NULL
		 GROUP BY u.id, u.username, p.latitude, p.longitude, p.last_updated
		 ORDER BY u.username`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friend locations: %w", err)
	}
	defer rows.Close()

	var locations []models.FriendLocation
	for rows.Next() {
		var (
			loc models.FriendLocation
			lat float64
			lon float64
		)
		if err := rows.Scan(&loc.Username, &lat, &lon, &loc.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning friend location: %w", err)
		}
		loc.Location = &models.Location{Latitude: lat, Longitude: lon}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading friend locations: %w", err)
	}

	if locations == nil {
		locations = []models.FriendLocation{}
	}

	return locations, nil
}
