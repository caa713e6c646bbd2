package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yukikurage/flock-console/internal/entitlement"
	"github.com/yukikurage/flock-console/internal/metrics"
	"github.com/yukikurage/flock-console/internal/models"
	"github.com/yukikurage/flock-console/internal/querycache"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNoActivePlan         = errors.New("no active plan")
)

const queryKeyMyOrganization = "/organizations/me"

// OrganizationService loads the caller's organization and subscription
// through the query cache and resolves entitlements from them.
type OrganizationService struct {
	api   API
	cache *querycache.Cache
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(api API, cache *querycache.Cache) *OrganizationService {
	return &OrganizationService{
		api:   api,
		cache: cache,
	}
}

// Organization returns the caller's organization with branches.
func (s *OrganizationService) Organization(ctx context.Context, caller Caller) (*models.OrganizationEnvelope, error) {
	env, err := querycache.Fetch(ctx, s.cache, caller.SessionID, queryKeyMyOrganization,
		func(ctx context.Context) (*models.OrganizationEnvelope, error) {
			return s.api.MyOrganization(ctx, caller.Token)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if env == nil || env.Organization == nil || env.Organization.ID == "" {
		return nil, ErrOrganizationNotFound
	}
	return env, nil
}

// Branches returns the caller's branch list.
func (s *OrganizationService) Branches(ctx context.Context, caller Caller) ([]models.Branch, error) {
	env, err := s.Organization(ctx, caller)
	if err != nil {
		return nil, err
	}
	return env.Branches, nil
}

// Subscription returns the active subscription and plan of organizationID.
func (s *OrganizationService) Subscription(ctx context.Context, caller Caller, organizationID string) (*models.SubscriptionEnvelope, error) {
	env, err := querycache.Fetch(ctx, s.cache, caller.SessionID, "/subscriptions/"+organizationID,
		func(ctx context.Context) (*models.SubscriptionEnvelope, error) {
			return s.api.Subscription(ctx, caller.Token, organizationID)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if env == nil || env.Plan == nil {
		return nil, ErrNoActivePlan
	}
	return env, nil
}

// Entitlements resolves a fresh resolver for the caller. It never fails:
// any upstream problem settles the resolver without a plan.
func (s *OrganizationService) Entitlements(ctx context.Context, caller Caller) *entitlement.Resolver {
	r := entitlement.NewResolver()
	s.ResolveInto(ctx, caller, r)
	return r
}

// ResolveInto runs the two-stage fetch into r. The subscription is only
// requested once the organization fetch produced an id.
func (s *OrganizationService) ResolveInto(ctx context.Context, caller Caller, r *entitlement.Resolver) {
	logger := zerolog.Ctx(ctx)
	r.Begin()

	org, err := s.Organization(ctx, caller)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("organization").Inc()
		logger.Warn().Err(err).Msg("Entitlements unresolved: organization fetch failed")
		r.Settle(nil)
		return
	}

	sub, err := s.Subscription(ctx, caller, org.Organization.ID)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("subscription").Inc()
		logger.Warn().Err(err).Str("organization_id", org.Organization.ID).Msg("Entitlements unresolved: subscription fetch failed")
		r.Settle(nil)
		return
	}

	r.Settle(sub.Plan)
}
