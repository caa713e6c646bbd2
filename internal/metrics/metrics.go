// Package metrics holds the console's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts query cache lookups by result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flock_console",
		Name:      "query_cache_lookups_total",
		Help:      "Query cache lookups by result.",
	}, []string{"result"})

	// GateDecisions counts feature gate outcomes by feature key and decision.
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flock_console",
		Name:      "feature_gate_decisions_total",
		Help:      "Feature gate decisions by feature and outcome.",
	}, []string{"feature", "decision"})

	// ScopeSwitches counts confirmed branch scope changes.
	ScopeSwitches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "flock_console",
		Name:      "branch_scope_switches_total",
		Help:      "Confirmed branch scope switches.",
	})

	// UpstreamFailures counts entitlement fetch stages that settled without data.
	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flock_console",
		Name:      "entitlement_upstream_failures_total",
		Help:      "Entitlement fetch stages that failed after retries.",
	}, []string{"stage"})
)
