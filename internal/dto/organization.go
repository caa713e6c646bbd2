package dto

import (
	"encoding/json"

	"github.com/yukikurage/flock-console/internal/clientstate"
	"github.com/yukikurage/flock-console/internal/models"
)

// OnboardingDTO represents the onboarding wizard progress
type OnboardingDTO struct {
	Step           int                        `json:"step"`
	Answers        map[string]json.RawMessage `json:"answers"`
	OrganizationID string                     `json:"organizationId,omitempty"`
}

// OrganizationResponse represents the caller's organization with branches
type OrganizationResponse struct {
	Organization *models.Organization `json:"organization"`
	Branches     []models.Branch      `json:"branches"`
	Onboarding   OnboardingDTO        `json:"onboarding"`
}

// ToOnboardingDTO converts the persisted onboarding blob to DTO
func ToOnboardingDTO(st clientstate.OnboardingState) OnboardingDTO {
	answers := st.Answers
	if answers == nil {
		answers = map[string]json.RawMessage{}
	}
	return OnboardingDTO{
		Step:           st.Step,
		Answers:        answers,
		OrganizationID: st.OrganizationID,
	}
}

// ToOrganizationResponse converts an organization envelope to DTO
func ToOrganizationResponse(env *models.OrganizationEnvelope, onboarding clientstate.OnboardingState) OrganizationResponse {
	branches := env.Branches
	if branches == nil {
		branches = []models.Branch{}
	}
	return OrganizationResponse{
		Organization: env.Organization,
		Branches:     branches,
		Onboarding:   ToOnboardingDTO(onboarding),
	}
}
