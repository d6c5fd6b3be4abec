package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/MK-CIAN/AWM/internal/models"
)

func TestUserContextRoundTrip(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "alice"}

	ctx := SetUserInContext(context.Background(), user)

	got := GetUserFromContext(ctx)
	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != user.ID || got.Username != user.Username {
		t.Errorf("expected %v, got %v", user, got)
	}
}

func TestGetUserFromContext_Empty(t *testing.T) {
	if got := GetUserFromContext(context.Background()); got != nil {
		t.Errorf("expected nil user, got %v", got)
	}
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), userContextKey, "not a user")

	if got := GetUserFromContext(ctx); got != nil {
		t.Errorf("expected nil user for mismatched value, got %v", got)
	}
}
