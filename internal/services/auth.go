package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MK-CIAN/AWM/internal/models"
)

const (
	bcryptCost     = 12
	tokenDuration  = 30 * 24 * time.Hour
	tokenKeyPrefix = "authtoken:"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenNotFound      = errors.New("token not found")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit")
)

// AuthService issues opaque bearer tokens. Only a SHA-256 hash of the
// token is stored, keyed in redis with a sliding 30-day TTL.
type AuthService struct {
	users *UserService
	store KVStore
}

func NewAuthService(users *UserService, store KVStore) *AuthService {
	return &AuthService{users: users, store: store}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the registration password rules.
func ValidatePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.createToken(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ValidateToken resolves a bearer token to its user and extends the TTL.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	key := tokenKeyPrefix + hashToken(token)

	userIDStr, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up token: %w", err)
	}

	if err := s.store.Expire(ctx, key, tokenDuration); err != nil {
		return nil, fmt.Errorf("extending token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("parsing user id: %w", err)
	}

	return s.users.GetByID(ctx, userID)
}

// DeleteToken revokes the presented token.
func (s *AuthService) DeleteToken(ctx context.Context, token string) error {
	return s.store.Del(ctx, tokenKeyPrefix+hashToken(token))
}

func (s *AuthService) createToken(ctx context.Context, userID uuid.UUID) (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}

	token := hex.EncodeToString(bytes)
	key := tokenKeyPrefix + hashToken(token)

	if err := s.store.Set(ctx, key, userID.String(), tokenDuration); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}

	return token, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
