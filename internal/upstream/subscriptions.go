package upstream

import (
	"context"
	"net/url"

	"github.com/yukikurage/flock-console/internal/models"
)

// Subscription fetches the active subscription and plan of an organization.
// A missing subscription arrives as a *StatusError (typically 404).
func (c *Client) Subscription(ctx context.Context, token, organizationID string) (*models.SubscriptionEnvelope, error) {
	var env models.SubscriptionEnvelope
	path := "/subscriptions/" + url.PathEscape(organizationID)
	if err := c.as(token).GetJSON(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
