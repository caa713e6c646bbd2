package models

import "encoding/json"

type OrganizationStructure string

const (
	StructureSingle OrganizationStructure = "single"
	StructureMulti  OrganizationStructure = "multi"
)

// Organization is a tenant (a church) as returned by the API server.
type Organization struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Structure          OrganizationStructure `json:"structure"`
	OnboardingComplete bool                  `json:"onboardingComplete"`
	OnboardingStep     int                   `json:"onboardingStep"`
	Currency           string                `json:"currency"`
	PaymentGateway     string                `json:"paymentGateway"`
}

// Branch is a location under an organization. At most one branch should be
// the head office; nothing here enforces it.
type Branch struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address,omitempty"`
	City           string  `json:"city,omitempty"`
	State          string  `json:"state,omitempty"`
	Country        string  `json:"country,omitempty"`
	GeofenceRadius float64 `json:"geofenceRadius,omitempty"`
	IsHeadOffice   bool    `json:"isHeadOffice"`
}

// OrganizationEnvelope is the body of GET /organizations/me.
type OrganizationEnvelope struct {
	Organization *Organization     `json:"organization"`
	Branches     []Branch          `json:"branches"`
	FundBuckets  []json.RawMessage `json:"fundBuckets"`
}
