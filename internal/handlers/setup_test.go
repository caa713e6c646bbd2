package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/flock-console/internal/config"
	"github.com/yukikurage/flock-console/internal/constants"
	"github.com/yukikurage/flock-console/internal/entitlement"
	"github.com/yukikurage/flock-console/internal/logging"
	"github.com/yukikurage/flock-console/internal/querycache"
	"github.com/yukikurage/flock-console/internal/services"
	"github.com/yukikurage/flock-console/internal/sessionstore"
	"github.com/yukikurage/flock-console/internal/upstream"
)

const (
	twoBranchOrg = `{
		"organization": {"id": "org-1", "name": "Grace Chapel", "structure": "multi"},
		"branches": [
			{"id": "b1", "name": "Head Office", "isHeadOffice": true},
			{"id": "b2", "name": "Riverside"}
		]
	}`
	singleBranchOrg = `{
		"organization": {"id": "org-1", "name": "Grace Chapel", "structure": "single"},
		"branches": [{"id": "b1", "name": "Head Office", "isHeadOffice": true}]
	}`
	growthSubscription = `{
		"subscription": {"planId": "growth", "status": "active", "billingCycle": "monthly"},
		"plan": {
			"id": "growth",
			"name": "Growth Plan",
			"features": [
				{"key": "event_management", "text": "Events", "included": true},
				{"key": "event_sharing", "text": "Share events", "included": true},
				{"key": "financial_reporting", "text": "Reports", "included": true},
				{"key": "advanced_financial_reporting", "text": "Advanced reports", "included": false}
			]
		}
	}`
)

type upstreamCall struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// fakeUpstream stands in for the API server and records every call.
type fakeUpstream struct {
	mu    sync.Mutex
	calls []upstreamCall

	organization string
	subscription string

	// subscriptionStatus overrides the subscription response when non-zero.
	subscriptionStatus int
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := upstreamCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &call.Body)
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	org, sub, subStatus := f.organization, f.subscription, f.subscriptionStatus
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/auth/login":
		if call.Body["password"] == "wrong" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"user":{"id":"u1","email":"pastor@grace.org","firstName":"Ada"},"token":"tok-1"}`)
	case r.URL.Path == "/organizations/me":
		_, _ = io.WriteString(w, org)
	case strings.HasPrefix(r.URL.Path, "/subscriptions/"):
		if subStatus != 0 {
			w.WriteHeader(subStatus)
			_, _ = io.WriteString(w, `{"message":"no active subscription"}`)
			return
		}
		_, _ = io.WriteString(w, sub)
	case r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"rec-1"}`)
	default:
		_, _ = io.WriteString(w, `{"items":[]}`)
	}
}

// Calls returns the recorded calls matching method and path.
func (f *fakeUpstream) Calls(method, path string) []upstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []upstreamCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

type consoleEnv struct {
	upstream *fakeUpstream
	cache    *querycache.Cache
	server   *httptest.Server
	client   *http.Client
}

func setupConsole(t *testing.T, up *fakeUpstream) *consoleEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.InitWithWriter(logging.Config{Format: "json", Level: "error"}, io.Discard)

	upstreamServer := httptest.NewServer(up)
	t.Cleanup(upstreamServer.Close)

	api := upstream.NewClient(upstreamServer.URL, 5*time.Second)
	cache := querycache.New(querycache.Options{StaleTime: time.Minute})

	orgService := services.NewOrganizationService(api, cache)
	branchService := services.NewBranchService(orgService, cache)
	routes := Routes{
		Auth:         NewAuthHandler(services.NewAuthService(api, cache)),
		Organization: NewOrganizationHandler(orgService),
		Entitlement:  NewEntitlementHandler(orgService, entitlement.DefaultUpgradePath),
		Branch:       NewBranchHandler(branchService),
		Record:       NewRecordHandler(services.NewRecordService(api, cache), branchService),
		Entitlements: orgService,
		UpgradePath:  entitlement.DefaultUpgradePath,
	}

	store, err := sessionstore.New(&config.Config{
		SessionBackend: config.SessionBackendCookie,
		SessionSecret:  "secret",
		SessionMaxAge:  3600,
		GinMode:        gin.TestMode,
	}, nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(logging.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	routes.Register(r.Group("/api"))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &consoleEnv{
		upstream: up,
		cache:    cache,
		server:   server,
		client:   &http.Client{Jar: jar},
	}
}

func (e *consoleEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func (e *consoleEnv) login(t *testing.T) {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "pastor@grace.org",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, status, body)
}
