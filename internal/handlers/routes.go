package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/entitlement"
	"github.com/yukikurage/flock-console/internal/middleware"
)

// Routes groups the console handlers for registration under /api.
type Routes struct {
	Auth         *AuthHandler
	Organization *OrganizationHandler
	Entitlement  *EntitlementHandler
	Branch       *BranchHandler
	Record       *RecordHandler

	Entitlements middleware.EntitlementSource
	UpgradePath  string
}

func (rt Routes) requireFeature(feature string) gin.HandlerFunc {
	return middleware.RequireFeature(rt.Entitlements, feature, entitlement.WithUpgradePath(rt.UpgradePath))
}

// Register mounts every console route on api.
func (rt Routes) Register(api *gin.RouterGroup) {
	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", rt.Auth.Login)
		auth.POST("/logout", rt.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), rt.Auth.GetCurrentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())

	protected.GET("/organization", rt.Organization.GetOrganization)

	onboarding := protected.Group("/onboarding")
	{
		onboarding.GET("", rt.Organization.GetOnboarding)
		onboarding.PUT("", rt.Organization.SaveOnboarding)
		onboarding.DELETE("", rt.Organization.ResetOnboarding)
		onboarding.PUT("/steps/:step", rt.Organization.SaveOnboardingStep)
	}

	entitlements := protected.Group("/entitlements")
	{
		entitlements.GET("", rt.Entitlement.GetEntitlements)
		entitlements.GET("/:feature", rt.Entitlement.CheckFeature)
	}

	branches := protected.Group("/branches")
	{
		branches.GET("", rt.Branch.ListBranches)
		branches.POST("/scope", rt.Branch.StageScope)
		branches.POST("/scope/confirm", rt.Branch.ConfirmScope)
		branches.DELETE("/scope/pending", rt.Branch.CancelScope)
		branches.POST("/field", rt.Branch.BindField)
	}

	protected.GET("/members/birthdays", rt.requireFeature(entitlement.FeatureBirthdayNotifications), rt.Record.Birthdays)
	protected.POST("/events/:id/share", rt.requireFeature(entitlement.FeatureEventSharing), rt.Record.ShareEvent)
	reports := protected.Group("/reports/financial")
	{
		reports.GET("", rt.requireFeature(entitlement.FeatureFinancialReporting), rt.Record.FinancialReport)
		reports.GET("/advanced", rt.requireFeature(entitlement.FeatureAdvancedFinancialReporting), rt.Record.AdvancedFinancialReport)
	}

	for _, res := range Resources {
		group := protected.Group("/" + res.Name)
		if res.Feature != "" {
			group.Use(rt.requireFeature(res.Feature))
		}
		group.GET("", rt.Record.List(res))
		group.POST("", rt.Record.Create(res))
	}
}
