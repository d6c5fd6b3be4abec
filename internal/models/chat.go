package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// chatTimeLayout matches the timestamp format the frontend chat view
// expects (no timezone, second precision).
const chatTimeLayout = "2006-01-02 15:04:05"

// ChatTime renders as "YYYY-MM-DD HH:MM:SS" in JSON.
type ChatTime time.Time

func (t ChatTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(t).Format(chatTimeLayout))), nil
}

func (t *ChatTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(chatTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parsing chat timestamp: %w", err)
	}
	*t = ChatTime(parsed)
	return nil
}

func (t ChatTime) Time() time.Time {
	return time.Time(t)
}

// ChatRoom is the per-event conversation. Exactly one room exists per
// event, created lazily on first access.
type ChatRoom struct {
	ID      uuid.UUID `json:"id"`
	EventID uuid.UUID `json:"event"`
	Name    string    `json:"name"`
}

// Message is an immutable chat entry. Ordering is by Timestamp ascending
// with insertion order breaking ties.
type Message struct {
	ID        uuid.UUID `json:"-"`
	RoomID    uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"user"`
	Content   string    `json:"content"`
	Timestamp ChatTime  `json:"timestamp"`
}
