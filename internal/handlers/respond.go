package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/services"
	"github.com/yukikurage/flock-console/internal/upstream"
)

// respondUpstreamError maps a failed API server call to a console error.
func respondUpstreamError(c *gin.Context, err error) {
	zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Upstream request failed")

	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, "Organization not found")
	case errors.As(err, &statusErr):
		switch statusErr.StatusCode {
		case http.StatusUnauthorized:
			apierrors.Unauthorized(c, "Session expired")
		case http.StatusForbidden:
			apierrors.RespondWithError(c, http.StatusForbidden, apierrors.NewAPIError(apierrors.ErrCodeForbidden, "Access denied"))
		case http.StatusNotFound:
			apierrors.NotFound(c, "")
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			apierrors.BadRequestWithDetails(c, "Request rejected by the API server", rawDetails(statusErr.Body))
		default:
			apierrors.UpstreamError(c, "")
		}
	default:
		apierrors.UpstreamError(c, "")
	}
}

// rawDetails passes a JSON error body through untouched.
func rawDetails(body string) any {
	if body == "" {
		return nil
	}
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	return body
}

// respondAuthError maps login failures.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrLoginFailed):
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Login failed")
		apierrors.UpstreamError(c, "Login is unavailable")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
