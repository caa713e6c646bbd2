package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/clientstate"
	"github.com/yukikurage/flock-console/internal/constants"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/services"
)

// RequireAuth checks if the session carries an authenticated login
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := clientstate.FromContext(c).Auth()
		if !state.Authenticated || state.Token == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		// Store auth state in context for easy access in handlers
		c.Set(constants.ContextKeyAuth, state)
		c.Next()
	}
}

// GetAuth retrieves the auth state stored by RequireAuth
func GetAuth(c *gin.Context) (clientstate.AuthState, bool) {
	v, exists := c.Get(constants.ContextKeyAuth)
	if !exists {
		return clientstate.AuthState{}, false
	}
	state, ok := v.(clientstate.AuthState)
	return state, ok
}

// GetCaller returns the upstream identity of the authenticated session
func GetCaller(c *gin.Context) (services.Caller, bool) {
	state, ok := GetAuth(c)
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{Token: state.Token, SessionID: state.SessionID}, true
}
