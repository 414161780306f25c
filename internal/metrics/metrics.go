// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BirthdayUpdates counts birthday updates by resolved mode and outcome.
	BirthdayUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "birthday_updates_total",
		Help: "Total number of birthday information updates by mode and outcome",
	}, []string{"mode", "outcome"})

	// AuditEventsEnqueued counts audit entries handed to the queue.
	AuditEventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_events_enqueued_total",
		Help: "Total number of audit entries handed to the audit queue",
	})

	// AuditEnqueueFailures counts audit entries that could not be handed to the queue.
	AuditEnqueueFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_enqueue_failures_total",
		Help: "Total number of audit entries dropped because the queue rejected them",
	})
)

// Outcome labels of BirthdayUpdates.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)
