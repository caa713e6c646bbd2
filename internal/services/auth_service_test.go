package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/flock-console/internal/models"
	"github.com/yukikurage/flock-console/internal/upstream"
)

func TestAuthService_Login(t *testing.T) {
	api := &fakeAPI{login: &models.LoginResult{User: models.User{ID: "u1", Email: "pastor@grace.org"}, Token: "tok"}}
	svc := NewAuthService(api, newTestCache())

	first, err := svc.Login(context.Background(), "pastor@grace.org", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", first.Token)
	require.Equal(t, "u1", first.User.ID)
	require.NotEmpty(t, first.SessionID)

	second, err := svc.Login(context.Background(), "pastor@grace.org", "secret")
	require.NoError(t, err)
	require.NotEqual(t, first.SessionID, second.SessionID, "every login gets its own cache namespace")
}

func TestAuthService_LoginRejected(t *testing.T) {
	api := &fakeAPI{loginErr: &upstream.StatusError{Method: http.MethodPost, Path: "/auth/login", StatusCode: http.StatusUnauthorized}}
	svc := NewAuthService(api, newTestCache())

	_, err := svc.Login(context.Background(), "pastor@grace.org", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUpstreamDown(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("connection refused")}
	svc := NewAuthService(api, newTestCache())

	_, err := svc.Login(context.Background(), "pastor@grace.org", "secret")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestAuthService_LogoutClearsNamespace(t *testing.T) {
	api := &fakeAPI{org: growthOrg()}
	cache := newTestCache()
	orgs := NewOrganizationService(api, cache)
	svc := NewAuthService(api, cache)

	_, err := orgs.Organization(context.Background(), testCaller)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len(testCaller.SessionID))

	svc.Logout(testCaller.SessionID)

	require.Zero(t, cache.Len(testCaller.SessionID))
}
