// Package metrics holds the prometheus collectors of the matching pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lostandfound"

var (
	// TriggerInvocations counts controller invocations by outcome
	// (skipped_lost, matched, unmatched, read_failed, abandoned).
	TriggerInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trigger_invocations_total",
			Help:      "Item creation events handled by the trigger controller.",
		},
		[]string{"status"},
	)

	// Matches counts found items matched with a lost report.
	Matches = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Found items matched with an earlier lost report.",
		},
	)

	// Notifications counts dispatch results by recipient role.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Push notifications by recipient role and result.",
		},
		[]string{"role", "result"},
	)

	// PointsAwarded sums the points credited by the ledger.
	PointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Points credited to users reporting found items.",
		},
	)

	// EventRedeliveries counts change log events rescheduled by the worker.
	EventRedeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_redeliveries_total",
			Help:      "Item events rescheduled after an abandoned invocation.",
		},
	)
)
