package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/yukikurage/flock-console/internal/models"
	"github.com/yukikurage/flock-console/internal/querycache"
	"github.com/yukikurage/flock-console/internal/upstream"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	login    *models.LoginResult
	loginErr error
	org      *models.OrganizationEnvelope
	orgErr   error
	sub      *models.SubscriptionEnvelope
	subErr   error
	records  json.RawMessage
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	f.record("POST /auth/login")
	return f.login, f.loginErr
}

func (f *fakeAPI) MyOrganization(ctx context.Context, token string) (*models.OrganizationEnvelope, error) {
	f.record("GET /organizations/me")
	return f.org, f.orgErr
}

func (f *fakeAPI) Subscription(ctx context.Context, token, organizationID string) (*models.SubscriptionEnvelope, error) {
	f.record("GET /subscriptions/" + organizationID)
	return f.sub, f.subErr
}

func (f *fakeAPI) Get(ctx context.Context, token, path string, query url.Values) (json.RawMessage, error) {
	call := "GET " + path
	if encoded := query.Encode(); encoded != "" {
		call += "?" + encoded
	}
	f.record(call)
	return f.records, nil
}

func (f *fakeAPI) Post(ctx context.Context, token, path string, body any) (json.RawMessage, error) {
	f.record("POST " + path)
	return json.RawMessage(`{"id":"new"}`), nil
}

func notFound(path string) error {
	return &upstream.StatusError{Method: http.MethodGet, Path: path, StatusCode: http.StatusNotFound}
}

func newTestCache() *querycache.Cache {
	return querycache.New(querycache.Options{StaleTime: time.Minute, Retry: 1})
}

var testCaller = Caller{Token: "tok", SessionID: "sess-1"}
