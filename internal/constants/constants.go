package constants

// Session
const (
	SessionCookieName = "flock_session"

	SessionKeyAuth        = "auth"
	SessionKeyBranchScope = "branch_scope"
	SessionKeyOnboarding  = "onboarding"
)

// Gin context keys
const (
	ContextKeyAuth      = "auth"
	ContextKeyResolver  = "entitlement_resolver"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
