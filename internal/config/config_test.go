package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("QUERY_RETRY", "")
	t.Setenv("QUERY_STALE_TIME", "")
	t.Setenv("SESSION_BACKEND", "")

	cfg := Load()

	require.Equal(t, 1, cfg.QueryRetry)
	require.Equal(t, 5*time.Minute, cfg.QueryStaleTime)
	require.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	require.Equal(t, "/settings/subscription", cfg.UpgradePath)
	require.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("QUERY_RETRY", "3")
	t.Setenv("QUERY_STALE_TIME", "90s")
	t.Setenv("SESSION_BACKEND", SessionBackendCookie)
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	require.Equal(t, 3, cfg.QueryRetry)
	require.Equal(t, 90*time.Second, cfg.QueryStaleTime)
	require.Equal(t, SessionBackendCookie, cfg.SessionBackend)
	require.True(t, cfg.IsProduction())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("QUERY_RETRY", "many")
	t.Setenv("UPSTREAM_TIMEOUT", "-5s")

	cfg := Load()

	require.Equal(t, 1, cfg.QueryRetry)
	require.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
}
