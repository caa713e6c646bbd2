package upstream

import (
	"context"

	"github.com/yukikurage/flock-console/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := c.transport.PostJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
