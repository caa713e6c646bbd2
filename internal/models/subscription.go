package models

type PlanTier string

const (
	PlanSeed   PlanTier = "seed"
	PlanGrowth PlanTier = "growth"
	PlanAscend PlanTier = "ascend"
)

// FeatureAllFeatures grants every feature when included.
const FeatureAllFeatures = "all_features"

// Feature is one entry of a plan's feature list.
type Feature struct {
	Key      string `json:"key"`
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

type Plan struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Features []Feature      `json:"features"`
	Limits   map[string]int `json:"limits,omitempty"`
}

type Subscription struct {
	PlanID       string `json:"planId"`
	Status       string `json:"status"`
	BillingCycle string `json:"billingCycle"`
}

// SubscriptionEnvelope is the body of GET /subscriptions/{organizationId}.
type SubscriptionEnvelope struct {
	Subscription *Subscription `json:"subscription"`
	Plan         *Plan         `json:"plan"`
}
