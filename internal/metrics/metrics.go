package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PhaseTransitionsTotal counts pipeline phase changes, labelled by
	// the phase entered (on_enquiry, on_quote, on_booking).
	PhaseTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_phase_transitions_total",
			Help: "Total pipeline phase transitions by target phase",
		},
		[]string{"phase"},
	)

	// SectorWritesTotal counts reconciler row writes by sector type and
	// operation (insert, update, delete).
	SectorWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_sector_writes_total",
			Help: "Sector rows written by the reconciler",
		},
		[]string{"sector", "op"},
	)
)
