package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "underwriting_assessments_total",
			Help: "Total number of completed assessments by decision",
		},
		[]string{"decision"},
	)

	AssessmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "underwriting_assessment_failures_total",
			Help: "Total number of rejected assessment requests by error code",
		},
		[]string{"error_code"},
	)

	OverallRiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "underwriting_overall_risk_score",
			Help:    "Distribution of overall risk scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	EMICalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emi_calculations_total",
			Help: "Total number of EMI calculations by cache outcome",
		},
		[]string{"cache"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route", "status"},
	)
)
