package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yukikurage/flock-console/internal/branchscope"
	"github.com/yukikurage/flock-console/internal/metrics"
	"github.com/yukikurage/flock-console/internal/querycache"
)

// BranchService keeps a session's branch scope in line with the
// organization's current branch list.
type BranchService struct {
	orgs  *OrganizationService
	cache *querycache.Cache
}

// NewBranchService creates a new BranchService.
func NewBranchService(orgs *OrganizationService, cache *querycache.Cache) *BranchService {
	return &BranchService{
		orgs:  orgs,
		cache: cache,
	}
}

// Sync loads the branch list into m. It reports whether m's scope changed
// and needs persisting.
func (s *BranchService) Sync(ctx context.Context, caller Caller, m *branchscope.Manager) (bool, error) {
	branches, err := s.orgs.Branches(ctx, caller)
	if err != nil {
		return false, err
	}
	before := m.Scope()
	changed := m.SetBranches(branches)
	if changed {
		zerolog.Ctx(ctx).Debug().
			Str("from", scopeString(before)).
			Str("to", scopeString(m.Scope())).
			Msg("Branch scope corrected from branch list")
	}
	return changed, nil
}

// Confirm commits m's pending change and clears the session's whole query
// cache namespace so every later read is scoped to the new branch.
func (s *BranchService) Confirm(ctx context.Context, caller Caller, m *branchscope.Manager) branchscope.SwitchResult {
	res := m.Confirm(func() {
		s.cache.Clear(caller.SessionID)
	})
	if res.Committed {
		metrics.ScopeSwitches.Inc()
		zerolog.Ctx(ctx).Info().Str("scope", scopeString(res.Scope)).Msg("Branch scope switched")
	}
	return res
}

func scopeString(s branchscope.Scope) string {
	if s.IsBranch() {
		return s.BranchID
	}
	if s.Selection == branchscope.SelectionUnset {
		return "unset"
	}
	return "all"
}
