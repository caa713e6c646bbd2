package dto

import (
	"github.com/yukikurage/flock-console/internal/branchscope"
	"github.com/yukikurage/flock-console/internal/entitlement"
	"github.com/yukikurage/flock-console/internal/models"
)

// SessionDTO represents the auth state returned to the browser
type SessionDTO struct {
	User          *models.User `json:"user"`
	Authenticated bool         `json:"authenticated"`
}

// EntitlementsDTO is a snapshot of the caller's resolver
type EntitlementsDTO struct {
	Loading  bool             `json:"loading"`
	PlanID   *string          `json:"planId"`
	PlanName *string          `json:"planName"`
	Features []models.Feature `json:"features"`
}

// FeatureDecisionDTO is the gate outcome for one feature
type FeatureDecisionDTO struct {
	Feature string                     `json:"feature"`
	State   string                     `json:"state"`
	Granted bool                       `json:"granted"`
	Prompt  *entitlement.UpgradePrompt `json:"prompt,omitempty"`
}

// BranchScopeDTO represents the branch list and the session's scope
type BranchScopeDTO struct {
	Branches         []models.Branch    `json:"branches"`
	SelectedBranchID *string            `json:"selectedBranchId"`
	Scope            branchscope.Scope  `json:"scope"`
	Pending          *branchscope.Scope `json:"pending"`
}

// ToEntitlementsDTO converts a resolver to DTO
func ToEntitlementsDTO(r *entitlement.Resolver) EntitlementsDTO {
	return EntitlementsDTO{
		Loading:  r.IsLoading(),
		PlanID:   r.PlanID(),
		PlanName: r.PlanName(),
		Features: r.Features(),
	}
}

// ToFeatureDecisionDTO converts an evaluated gate to DTO
func ToFeatureDecisionDTO(g *entitlement.Gate) FeatureDecisionDTO {
	return FeatureDecisionDTO{
		Feature: g.Feature(),
		State:   g.State().String(),
		Granted: g.State() == entitlement.GateGranted,
		Prompt:  g.Prompt(),
	}
}

// ToBranchScopeDTO converts a branch scope manager to DTO
func ToBranchScopeDTO(m *branchscope.Manager) BranchScopeDTO {
	branches := m.Branches()
	if branches == nil {
		branches = []models.Branch{}
	}
	return BranchScopeDTO{
		Branches:         branches,
		SelectedBranchID: m.SelectedBranchID(),
		Scope:            m.Scope(),
		Pending:          m.Pending(),
	}
}
