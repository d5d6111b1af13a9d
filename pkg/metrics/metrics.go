package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SuggestionsTotal counts category lookups by result (match, fallback)
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_suggestions_total",
			Help: "Total number of category option suggestions",
		},
		[]string{"result"},
	)

	// VariantsGeneratedTotal counts variants appended by generate actions
	VariantsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "variant_generated_total",
			Help: "Total number of variants created from option combinations",
		},
	)

	// ModeAutoCorrectionsTotal counts forced stock-by-variant corrections
	ModeAutoCorrectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "variant_mode_autocorrections_total",
			Help: "Total number of pricing/stock mode auto-corrections",
		},
	)

	// SubmissionsTotal counts draft submissions by result (accepted, rejected, failed)
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variant_draft_submissions_total",
			Help: "Total number of draft submissions",
		},
		[]string{"result"},
	)

	// HTTPRequestsTotal counts served requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests being served
	HTTPRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
		[]string{"service"},
	)
)

// Submission results
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
	ResultMatch    = "match"
	ResultFallback = "fallback"
)
