package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
)

func TestEntitlements_GrowthPlan(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscription: growthSubscription})
	env.login(t)

	status, body := env.do(t, http.MethodGet, "/api/entitlements", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["loading"])
	require.Equal(t, "growth", body["planId"])
	require.Equal(t, "Growth Plan", body["planName"])
	require.Len(t, body["features"], 4)

	status, body = env.do(t, http.MethodGet, "/api/entitlements/event_sharing", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["granted"])
	require.Equal(t, "granted", body["state"])
	require.Nil(t, body["prompt"])

	status, body = env.do(t, http.MethodGet, "/api/entitlements/advanced_financial_reporting", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["granted"])
	prompt := body["prompt"].(map[string]any)
	require.Equal(t, "Financial Reports", prompt["featureName"])
	require.Equal(t, "Growth Plan", prompt["planName"])
	require.Equal(t, "/settings/subscription", prompt["upgradePath"])
}

func TestEntitlements_CheckFeatureNameOverride(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscription: growthSubscription})
	env.login(t)

	_, body := env.do(t, http.MethodGet, "/api/entitlements/department_management?name=Ministries", nil)

	prompt := body["prompt"].(map[string]any)
	require.Equal(t, "Ministries", prompt["featureName"])
}

func TestFeatureRoutes_GrantedAndDenied(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscription: growthSubscription})
	env.login(t)

	status, _ := env.do(t, http.MethodPost, "/api/events/e1/share", map[string]any{"channels": []string{"email"}})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.upstream.Calls(http.MethodPost, "/events/e1/share"), 1)

	status, body := env.do(t, http.MethodGet, "/api/reports/financial/advanced", nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, apierrors.ErrCodeUpgradeRequired, body["code"])
	details := body["details"].(map[string]any)
	require.Equal(t, "Financial Reports", details["featureName"])
	require.Equal(t, "Growth Plan", details["planName"])
	require.Equal(t, true, details["locked"])
	require.Empty(t, env.upstream.Calls(http.MethodGet, "/reports/financial/advanced"))

	status, _ = env.do(t, http.MethodGet, "/api/reports/financial", nil)
	require.Equal(t, http.StatusOK, status)
}

func TestEntitlements_MissingSubscriptionDeniesAll(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscriptionStatus: http.StatusNotFound})
	env.login(t)

	status, body := env.do(t, http.MethodGet, "/api/entitlements", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["loading"])
	require.Nil(t, body["planName"])
	require.Nil(t, body["planId"])
	require.Empty(t, body["features"])

	status, body = env.do(t, http.MethodPost, "/api/events/e1/share", map[string]any{"channels": []string{"email"}})
	require.Equal(t, http.StatusForbidden, status)
	details := body["details"].(map[string]any)
	require.Equal(t, "Event Sharing", details["featureName"])
	require.Equal(t, "your current plan", details["planName"])
}

func TestEntitlements_RequireLogin(t *testing.T) {
	env := setupConsole(t, &fakeUpstream{organization: twoBranchOrg, subscription: growthSubscription})

	status, body := env.do(t, http.MethodGet, "/api/entitlements", nil)

	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, apierrors.ErrCodeUnauthorized, body["code"])
	require.Empty(t, env.upstream.Calls(http.MethodGet, "/organizations/me"))
}
