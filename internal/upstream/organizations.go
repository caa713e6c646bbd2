package upstream

import (
	"context"

	"github.com/yukikurage/flock-console/internal/models"
)

const pathMyOrganization = "/organizations/me"

// MyOrganization fetches the caller's organization with its branches.
func (c *Client) MyOrganization(ctx context.Context, token string) (*models.OrganizationEnvelope, error) {
	var env models.OrganizationEnvelope
	if err := c.as(token).GetJSON(ctx, pathMyOrganization, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
