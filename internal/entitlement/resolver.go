// Package entitlement decides which plan features an organization may use.
//
// Decisions fail closed: while data is loading, or when no plan could be
// resolved, every feature is denied.
package entitlement

import (
	"sync"

	"github.com/yukikurage/flock-console/internal/models"
)

// Decide is the entitlement rule. It is recomputed on every call.
func Decide(loading bool, plan *models.Plan, key string) bool {
	if loading || plan == nil || key == "" {
		return false
	}
	for _, f := range plan.Features {
		if f.Key == models.FeatureAllFeatures && f.Included {
			return true
		}
	}
	for _, f := range plan.Features {
		if f.Key == key {
			return f.Included
		}
	}
	return false
}

// Reader is the read side of a resolver, as consumed by gates.
type Reader interface {
	IsLoading() bool
	HasFeature(key string) bool
	PlanName() *string
}

// Resolver holds the loading flag and the active plan for one organization.
// It is safe for concurrent readers.
type Resolver struct {
	mu      sync.RWMutex
	loading bool
	plan    *models.Plan
}

// NewResolver returns a resolver that is neither loading nor resolved.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Begin marks the resolver as loading. A previously settled plan is kept
// but not consulted until Settle is called again.
func (r *Resolver) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = true
}

// Settle ends loading. A nil plan means the plan could not be resolved.
func (r *Resolver) Settle(plan *models.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	r.plan = plan
}

func (r *Resolver) HasFeature(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Decide(r.loading, r.plan, key)
}

func (r *Resolver) IsLoading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

// PlanID is nil until a plan has resolved.
func (r *Resolver) PlanID() *string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.plan == nil {
		return nil
	}
	id := r.plan.ID
	return &id
}

// PlanName is nil until a plan has resolved.
func (r *Resolver) PlanName() *string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.plan == nil {
		return nil
	}
	name := r.plan.Name
	return &name
}

// Features returns a copy of the plan's feature list, empty until resolved.
func (r *Resolver) Features() []models.Feature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.plan == nil {
		return []models.Feature{}
	}
	out := make([]models.Feature, len(r.plan.Features))
	copy(out, r.plan.Features)
	return out
}
