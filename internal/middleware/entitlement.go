package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/constants"
	"github.com/yukikurage/flock-console/internal/entitlement"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/services"
)

// EntitlementSource resolves the plan entitlements of a caller.
type EntitlementSource interface {
	Entitlements(ctx context.Context, caller services.Caller) *entitlement.Resolver
}

// Resolver returns the request's resolver, resolving it on first use. The
// result is settled; an unauthenticated request gets a deny-all resolver.
func Resolver(c *gin.Context, src EntitlementSource) *entitlement.Resolver {
	if v, ok := c.Get(constants.ContextKeyResolver); ok {
		if r, ok := v.(*entitlement.Resolver); ok {
			return r
		}
	}

	var r *entitlement.Resolver
	if caller, ok := GetCaller(c); ok {
		r = src.Entitlements(c.Request.Context(), caller)
	} else {
		r = entitlement.NewResolver()
		r.Settle(nil)
	}
	c.Set(constants.ContextKeyResolver, r)
	return r
}

// RequireFeature lets the request through only when the caller's plan
// includes feature. Denied requests get a 403 carrying the upgrade prompt.
func RequireFeature(src EntitlementSource, feature string, opts ...entitlement.GateOption) gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := entitlement.NewGate(feature, opts...)

		switch gate.Evaluate(Resolver(c, src)) {
		case entitlement.GateGranted:
			c.Next()
		case entitlement.GateDenied:
			prompt := gate.Prompt()
			apierrors.UpgradeRequired(c, prompt.Message, prompt)
		default:
			apierrors.ServiceUnavailable(c, "Entitlements are still loading")
		}
	}
}
