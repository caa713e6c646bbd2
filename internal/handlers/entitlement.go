package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/dto"
	"github.com/yukikurage/flock-console/internal/entitlement"
	"github.com/yukikurage/flock-console/internal/middleware"
)

// EntitlementHandler exposes the caller's plan entitlements.
type EntitlementHandler struct {
	source      middleware.EntitlementSource
	upgradePath string
}

// NewEntitlementHandler creates a new EntitlementHandler.
func NewEntitlementHandler(source middleware.EntitlementSource, upgradePath string) *EntitlementHandler {
	return &EntitlementHandler{
		source:      source,
		upgradePath: upgradePath,
	}
}

// GetEntitlements returns the resolver snapshot.
func (h *EntitlementHandler) GetEntitlements(c *gin.Context) {
	r := middleware.Resolver(c, h.source)
	c.JSON(http.StatusOK, dto.ToEntitlementsDTO(r))
}

// CheckFeature evaluates a gate for one feature. A denied feature is a
// normal answer here, not an error.
func (h *EntitlementHandler) CheckFeature(c *gin.Context) {
	opts := []entitlement.GateOption{entitlement.WithUpgradePath(h.upgradePath)}
	if name := c.Query("name"); name != "" {
		opts = append(opts, entitlement.WithFeatureName(name))
	}

	gate := entitlement.NewGate(c.Param("feature"), opts...)
	gate.Evaluate(middleware.Resolver(c, h.source))

	c.JSON(http.StatusOK, dto.ToFeatureDecisionDTO(gate))
}
