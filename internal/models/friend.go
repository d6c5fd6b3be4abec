package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directed invitation from one user to another. A
// request is created pending and is resolved by the recipient to
// accepted or rejected.
type FriendRequest struct {
	ID        uuid.UUID           `json:"id"`
	FromUser  uuid.UUID           `json:"from_user_id"`
	ToUser    uuid.UUID           `json:"to_user_id"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"timestamp"`
}

// PendingRequest is a FriendRequest joined with the requester's username,
// as shown in the recipient's inbox.
type PendingRequest struct {
	ID         uuid.UUID `json:"id"`
	FromUser   string    `json:"from_user"`
	FromUserID uuid.UUID `json:"from_user_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Friendship is the undirected relation created when a request is
// accepted. User1 is the accepting recipient, user2 the requester; the
// ordering carries no meaning and lookups always check both directions.
type Friendship struct {
	ID        uuid.UUID `json:"id"`
	User1     uuid.UUID `json:"user1_id"`
	User2     uuid.UUID `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendLocation is the only projection of another user's profile that
// leaves the service. Location is nil-safe in shape but the visibility
// query never emits a row without one.
type FriendLocation struct {
	Username    string     `json:"username"`
	Location    *Location  `json:"location"`
	LastUpdated *time.Time `json:"last_updated"`
}
