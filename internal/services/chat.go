package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MK-CIAN/AWM/internal/models"
)

var (
	ErrEmptyContent = errors.New("message cannot be empty")
	ErrRoomNotFound = errors.New("chat room not found")
)

type ChatService struct {
	db DBConn
}

func NewChatService(db DBConn) *ChatService {
	return &ChatService{db: db}
}

// GetOrCreateRoom returns the event's chat room, creating it on first
// access. The unique constraint on event_id makes concurrent first
// accesses converge on a single row.
func (s *ChatService) GetOrCreateRoom(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", eventID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking event: %w", err)
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO chat_rooms (event_id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (event_id) DO NOTHING`,
		eventID, fmt.Sprintf("Chat for Event %s", eventID),
	)
	if err != nil {
		return nil, fmt.Errorf("creating chat room: %w", err)
	}

	room := &models.ChatRoom{}
	err = s.db.QueryRow(ctx,
		"SELECT id, event_id, name FROM chat_rooms WHERE event_id = $1",
		eventID,
	).Scan(&room.ID, &room.EventID, &room.Name)
	if err != nil {
		return nil, fmt.Errorf("getting chat room: %w", err)
	}

	return room, nil
}

// GetRoom returns the event's room without creating it.
func (s *ChatService) GetRoom(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error) {
	room := &models.ChatRoom{}
	err := s.db.QueryRow(ctx,
		"SELECT id, event_id, name FROM chat_rooms WHERE event_id = $1",
		eventID,
	).Scan(&room.ID, &room.EventID, &room.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting chat room: %w", err)
	}
	return room, nil
}

// PostMessage appends a message with a server-side timestamp. Content
// that is empty after trimming is rejected.
func (s *ChatService) PostMessage(ctx context.Context, roomID, userID uuid.UUID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	msg := &models.Message{}
	var ts time.Time
	err := s.db.QueryRow(ctx,
		`INSERT INTO messages (room_id, user_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, room_id, user_id,
		           (SELECT username FROM users WHERE id = $2),
		           content, created_at`,
		roomID, userID, content,
	).Scan(&msg.ID, &msg.RoomID, &msg.UserID, &msg.Username, &msg.Content, &ts)
	if err != nil {
		return nil, fmt.Errorf("posting message: %w", err)
	}
	msg.Timestamp = models.ChatTime(ts)

	return msg, nil
}

// ListMessages returns the room's log in timestamp order, insertion
// order breaking ties.
func (s *ChatService) ListMessages(ctx context.Context, roomID uuid.UUID) ([]models.Message, error) {
	rows, err := s.db.Query(ctx,
		`SELECT m.id, m.room_id, m.user_id, u.username, m.content, m.created_at
		 FROM messages m
		 JOIN users u ON m.user_id = u.id
		 WHERE m.room_id = $1
		 ORDER BY m.created_at, m.id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var (
			msg models.Message
			ts  time.Time
		)
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.UserID, &msg.Username, &msg.Content, &ts); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Timestamp = models.ChatTime(ts)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}

	if messages == nil {
		messages = []models.Message{}
	}

	return messages, nil
}
