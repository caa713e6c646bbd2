package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
)

func TestAuthHandler_Login(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscription: growthSubscription})

	status, body := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "pastor@grace.org",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["authenticated"])
	user := body["user"].(map[string]any)
	require.Equal(t, "u1", user["id"])
	require.NotContains(t, body, "token", "the bearer token stays server side")

	status, body = env.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "pastor@grace.org", body["user"].(map[string]any)["email"])
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg})

	status, body := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "pastor@grace.org",
		"password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, body["code"])
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg})

	status, body := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})

	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, apierrors.ErrCodeInvalidInput, body["code"])
	require.Empty(t, env.upstream.Calls(http.MethodPost, "/auth/login"))
}

func TestAuthHandler_LogoutClearsPersistedState(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscription: growthSubscription})
	env.login(t)

	env.do(t, http.MethodPost, "/api/branches/scope", map[string]any{"branchId": "b2"})
	env.do(t, http.MethodPost, "/api/branches/scope/confirm", nil)
	status, _ := env.do(t, http.MethodPut, "/api/onboarding/steps/2", map[string]any{"churchName": "Grace"})
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	env.login(t)

	_, scope := env.do(t, http.MethodGet, "/api/branches", nil)
	require.Nil(t, scope["selectedBranchId"], "the previous user's scope must not leak")
	_, onboarding := env.do(t, http.MethodGet, "/api/onboarding", nil)
	require.Equal(t, float64(0), onboarding["step"])
	require.Empty(t, onboarding["answers"])
}
