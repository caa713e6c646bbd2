package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/yukikurage/flock-console/internal/models"
	"github.com/yukikurage/flock-console/internal/querycache"
	"github.com/yukikurage/flock-console/internal/upstream"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoginFailed        = errors.New("login failed")
)

// Session is what a successful login yields for the caller's session store.
type Session struct {
	User      models.User
	Token     string
	SessionID string
}

// AuthService signs users in against the API server.
type AuthService struct {
	api   API
	cache *querycache.Cache
}

// NewAuthService creates a new AuthService.
func NewAuthService(api API, cache *querycache.Cache) *AuthService {
	return &AuthService{
		api:   api,
		cache: cache,
	}
}

// Login verifies credentials upstream and opens a new cache namespace.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		if upstream.IsStatus(err, http.StatusUnauthorized) || upstream.IsStatus(err, http.StatusBadRequest) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrLoginFailed)
	}

	return &Session{
		User:      result.User,
		Token:     result.Token,
		SessionID: uuid.NewString(),
	}, nil
}

// Logout drops everything cached for the session.
func (s *AuthService) Logout(sessionID string) {
	if sessionID == "" {
		return
	}
	s.cache.Clear(sessionID)
}
