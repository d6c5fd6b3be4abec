package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/MK-CIAN/AWM/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	DeleteToken(ctx context.Context, token string) error
}

// ProfileServiceInterface defines the contract for location operations.
type ProfileServiceInterface interface {
	UpdateLocation(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// FriendServiceInterface defines the contract for the friend-request
// ledger, the friendship graph and the location visibility filter.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, fromUser, toUser uuid.UUID) (*models.FriendRequest, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]models.PendingRequest, error)
	Respond(ctx context.Context, requestID, actingUser uuid.UUID, action string) error
	Friends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FriendsLocations(ctx context.Context, userID uuid.UUID) ([]models.FriendLocation, error)
}

// ChatServiceInterface defines the contract for per-event chat rooms.
type ChatServiceInterface interface {
	GetOrCreateRoom(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error)
	GetRoom(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error)
	PostMessage(ctx context.Context, roomID, userID uuid.UUID, content string) (*models.Message, error)
	ListMessages(ctx context.Context, roomID uuid.UUID) ([]models.Message, error)
}

// EventServiceInterface defines the contract for event reads and saves.
type EventServiceInterface interface {
	List(ctx context.Context, category string) ([]models.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Save(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]models.SavedEventSummary, error)
}

// AudiotourServiceInterface defines the contract for audio tour reads.
type AudiotourServiceInterface interface {
	ListPoints(ctx context.Context, category string) ([]models.AudiotourPoint, error)
}
