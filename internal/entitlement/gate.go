package entitlement

import (
	"fmt"

	"github.com/yukikurage/flock-console/internal/metrics"
)

// GateState is the lifecycle of a single gate.
type GateState int

const (
	GateLoading GateState = iota
	GateGranted
	GateDenied
)

func (s GateState) String() string {
	switch s {
	case GateGranted:
		return "granted"
	case GateDenied:
		return "denied"
	default:
		return "loading"
	}
}

const (
	// DefaultUpgradePath is where the upgrade prompt sends the user.
	DefaultUpgradePath = "/settings/subscription"

	unknownPlanPhrase = "your current plan"
)

// UpgradePrompt is the default content shown in place of a locked feature.
type UpgradePrompt struct {
	Feature     string `json:"feature"`
	FeatureName string `json:"featureName"`
	PlanName    string `json:"planName"`
	Message     string `json:"message"`
	UpgradePath string `json:"upgradePath"`
	Locked      bool   `json:"locked"`
}

// NewUpgradePrompt builds the prompt for feature under the given plan name.
func NewUpgradePrompt(feature, featureName string, planName *string, upgradePath string) UpgradePrompt {
	name := FeatureDisplayName(feature, featureName)
	plan := unknownPlanPhrase
	if planName != nil && *planName != "" {
		plan = *planName
	}
	if upgradePath == "" {
		upgradePath = DefaultUpgradePath
	}
	return UpgradePrompt{
		Feature:     feature,
		FeatureName: name,
		PlanName:    plan,
		Message:     fmt.Sprintf("%s is not available on %s. Upgrade your subscription to unlock it.", name, plan),
		UpgradePath: upgradePath,
		Locked:      true,
	}
}

// Gate guards one feature. It starts in GateLoading and moves to granted or
// denied once the resolver stops loading; after that it never changes. A new
// Gate starts over.
type Gate struct {
	feature     string
	featureName string
	upgradePath string

	state  GateState
	prompt *UpgradePrompt
}

// GateOption customises a Gate.
type GateOption func(*Gate)

// WithFeatureName overrides the label shown in the upgrade prompt.
func WithFeatureName(name string) GateOption {
	return func(g *Gate) { g.featureName = name }
}

// WithUpgradePath overrides where the upgrade prompt links to.
func WithUpgradePath(path string) GateOption {
	return func(g *Gate) { g.upgradePath = path }
}

func NewGate(feature string, opts ...GateOption) *Gate {
	g := &Gate{feature: feature, upgradePath: DefaultUpgradePath}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate advances the gate from GateLoading when r has finished loading and
// returns the current state.
func (g *Gate) Evaluate(r Reader) GateState {
	if g.state != GateLoading || r.IsLoading() {
		return g.state
	}

	if r.HasFeature(g.feature) {
		g.state = GateGranted
	} else {
		g.state = GateDenied
		prompt := NewUpgradePrompt(g.feature, g.featureName, r.PlanName(), g.upgradePath)
		g.prompt = &prompt
	}
	metrics.GateDecisions.WithLabelValues(metricLabel(g.feature), g.state.String()).Inc()
	return g.state
}

// metricLabel keeps the feature label bounded to the known keys.
func metricLabel(feature string) string {
	if _, ok := LookupLabel(feature); ok {
		return feature
	}
	return "other"
}

func (g *Gate) State() GateState {
	return g.state
}

func (g *Gate) Feature() string {
	return g.feature
}

// Prompt is non-nil only in GateDenied.
func (g *Gate) Prompt() *UpgradePrompt {
	return g.prompt
}
