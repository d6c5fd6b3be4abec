package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/MK-CIAN/AWM/internal/models"
)

type mockUserService struct {
	CreateFunc        func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

type mockAuthService struct {
	HashPasswordFunc   func(password string) (string, error)
	VerifyPasswordFunc func(hash, password string) bool
	LoginFunc          func(ctx context.Context, username, password string) (string, *models.User, error)
	ValidateTokenFunc  func(ctx context.Context, token string) (*models.User, error)
	DeleteTokenFunc    func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return "test_token", &models.User{ID: uuid.New(), Username: username}, nil
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteToken(ctx context.Context, token string) error {
	if m.DeleteTokenFunc != nil {
		return m.DeleteTokenFunc(ctx, token)
	}
	return nil
}

type mockProfileService struct {
	UpdateLocationFunc func(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error
	GetFunc            func(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

func (m *mockProfileService) UpdateLocation(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error {
	if m.UpdateLocationFunc != nil {
		return m.UpdateLocationFunc(ctx, userID, latitude, longitude)
	}
	return nil
}

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return &models.Profile{UserID: userID}, nil
}

type mockFriendService struct {
	SendRequestFunc      func(ctx context.Context, fromUser, toUser uuid.UUID) (*models.FriendRequest, error)
	ListPendingFunc      func(ctx context.Context, userID uuid.UUID) ([]models.PendingRequest, error)
	RespondFunc          func(ctx context.Context, requestID, actingUser uuid.UUID, action string) error
	FriendsFunc          func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FriendsLocationsFunc func(ctx context.Context, userID uuid.UUID) ([]models.FriendLocation, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, fromUser, toUser uuid.UUID) (*models.FriendRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, fromUser, toUser)
	}
	return &models.FriendRequest{ID: uuid.New(), FromUser: fromUser, ToUser: toUser, Status: models.FriendRequestStatusPending}, nil
}

func (m *mockFriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.PendingRequest, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, userID)
	}
	return []models.PendingRequest{}, nil
}

func (m *mockFriendService) Respond(ctx context.Context, requestID, actingUser uuid.UUID, action string) error {
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, requestID, actingUser, action)
	}
	return nil
}

func (m *mockFriendService) Friends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.FriendsFunc != nil {
		return m.FriendsFunc(ctx, userID)
	}
	return []uuid.UUID{}, nil
}

func (m *mockFriendService) FriendsLocations(ctx context.Context, userID uuid.UUID) ([]models.FriendLocation, error) {
	if m.FriendsLocationsFunc != nil {
		return m.FriendsLocationsFunc(ctx, userID)
	}
	return []models.FriendLocation{}, nil
}

type mockChatService struct {
	GetOrCreateRoomFunc func(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error)
	GetRoomFunc         func(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error)
	PostMessageFunc     func(ctx context.Context, roomID, userID uuid.UUID, content string) (*models.Message, error)
	ListMessagesFunc    func(ctx context.Context, roomID uuid.UUID) ([]models.Message, error)
}

func (m *mockChatService) GetOrCreateRoom(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error) {
	if m.GetOrCreateRoomFunc != nil {
		return m.GetOrCreateRoomFunc(ctx, eventID)
	}
	return &models.ChatRoom{ID: uuid.New(), EventID: eventID}, nil
}

func (m *mockChatService) GetRoom(ctx context.Context, eventID uuid.UUID) (*models.ChatRoom, error) {
	if m.GetRoomFunc != nil {
		return m.GetRoomFunc(ctx, eventID)
	}
	return &models.ChatRoom{ID: uuid.New(), EventID: eventID}, nil
}

func (m *mockChatService) PostMessage(ctx context.Context, roomID, userID uuid.UUID, content string) (*models.Message, error) {
	if m.PostMessageFunc != nil {
		return m.PostMessageFunc(ctx, roomID, userID, content)
	}
	return &models.Message{ID: uuid.New(), RoomID: roomID, UserID: userID, Content: content}, nil
}

func (m *mockChatService) ListMessages(ctx context.Context, roomID uuid.UUID) ([]models.Message, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, roomID)
	}
	return []models.Message{}, nil
}

type mockEventService struct {
	ListFunc      func(ctx context.Context, category string) ([]models.Event, error)
	GetFunc       func(ctx context.Context, id uuid.UUID) (*models.Event, error)
	SaveFunc      func(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	ListSavedFunc func(ctx context.Context, userID uuid.UUID) ([]models.SavedEventSummary, error)
}

func (m *mockEventService) List(ctx context.Context, category string) ([]models.Event, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category)
	}
	return []models.Event{}, nil
}

func (m *mockEventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Event{ID: id}, nil
}

func (m *mockEventService) Save(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, eventID)
	}
	return true, nil
}

func (m *mockEventService) ListSaved(ctx context.Context, userID uuid.UUID) ([]models.SavedEventSummary, error) {
	if m.ListSavedFunc != nil {
		return m.ListSavedFunc(ctx, userID)
	}
	return []models.SavedEventSummary{}, nil
}

type mockAudiotourService struct {
	ListPointsFunc func(ctx context.Context, category string) ([]models.AudiotourPoint, error)
}

func (m *mockAudiotourService) ListPoints(ctx context.Context, category string) ([]models.AudiotourPoint, error) {
	if m.ListPointsFunc != nil {
		return m.ListPointsFunc(ctx, category)
	}
	return []models.AudiotourPoint{}, nil
}
