package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activitiesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_created_total",
			Help: "Total number of activities created",
		},
	)

	requestTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_request_transitions_total",
			Help: "Join request state transitions by kind",
		},
		[]string{"transition"},
	)

	discoveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "activity_discovery_duration_seconds",
			Help: "Latency of discovery queries",
		},
		[]string{"operation"},
	)
)
