package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/yukikurage/flock-console/internal/models"
)

// API is the subset of the upstream client the services depend on.
type API interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	MyOrganization(ctx context.Context, token string) (*models.OrganizationEnvelope, error)
	Subscription(ctx context.Context, token, organizationID string) (*models.SubscriptionEnvelope, error)
	Get(ctx context.Context, token, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, token, path string, body any) (json.RawMessage, error)
}

// Caller identifies the authenticated session a request runs for.
type Caller struct {
	Token string
	// SessionID is the query cache namespace of the session.
	SessionID string
}
