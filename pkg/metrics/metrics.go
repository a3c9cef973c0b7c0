package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// TriggersTotal counts activity events received, by kind.
	TriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_triggers_total",
			Help: "Total number of activity triggers received",
		},
		[]string{"kind"},
	)

	// TriggersDebouncedTotal counts triggers suppressed by the cooldown.
	TriggersDebouncedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "achievement_triggers_debounced_total",
			Help: "Total number of triggers suppressed by the per-user cooldown",
		},
	)

	// PassesTotal counts evaluation passes by outcome.
	PassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_passes_total",
			Help: "Total number of evaluation passes",
		},
		[]string{"outcome"},
	)

	// GrantsTotal counts grant attempts by result.
	GrantsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_grants_total",
			Help: "Total number of achievement grant attempts",
		},
		[]string{"result"},
	)

	// NotificationsTotal counts notification batches by outcome.
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_notifications_total",
			Help: "Total number of unlock notification batches",
		},
		[]string{"outcome"},
	)

	// RewardsTotal counts reward item grants by outcome.
	RewardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_rewards_total",
			Help: "Total number of reward item grants",
		},
		[]string{"outcome"},
	)

	// PassDuration observes evaluation pass latency.
	PassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "achievement_pass_duration_seconds",
			Help:    "Duration of achievement evaluation passes",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Pass outcomes.
const (
	OutcomeUnlocked = "unlocked"
	OutcomeNone     = "none"
	OutcomeAborted  = "aborted"
	OutcomePartial  = "partial"
)

// Grant results.
const (
	GrantInserted  = "inserted"
	GrantDuplicate = "duplicate"
	GrantFailed    = "failed"
)

// Notification and reward outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collectors returns all application metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		TriggersTotal,
		TriggersDebouncedTotal,
		PassesTotal,
		GrantsTotal,
		NotificationsTotal,
		RewardsTotal,
		PassDuration,
	}
}

// Register registers all application metrics with the registry.
func Register(registry prometheus.Registerer) {
	registry.MustRegister(Collectors()...)
}
