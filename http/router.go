package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-underwriter/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Loans        *LoanHandler
	Terms        *TermRecommendationHandler
	Applications *ApplicationHandler
	Health       *HealthHandler
	RateLimiter  *RateLimiter
}

// NewRouter registers all routes. POST routes are rate limited and every API
// route records its latency.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	limited := func(route string, fn http.HandlerFunc) http.Handler {
		return instrument(route, RateLimitMiddleware(h.RateLimiter, route, fn))
	}
	open := func(route string, fn http.HandlerFunc) http.Handler {
		return instrument(route, fn)
	}

	mux.Handle("POST /api/loan-applications", limited("submit_application", h.Applications.Submit))
	mux.Handle("GET /api/loan-applications", open("list_applications", h.Applications.List))
	mux.Handle("GET /api/loan-applications/{id}", open("get_application", h.Applications.Get))
	mux.Handle("GET /api/active-loans", open("active_loans", h.Applications.ActiveLoans))
	mux.Handle("GET /api/active-loans/{id}/schedule", open("loan_schedule", h.Applications.Schedule))
	mux.Handle("GET /api/dashboard/stats", open("dashboard_stats", h.Applications.DashboardStats))

	mux.Handle("POST /api/calculate-emi", limited("calculate_emi", h.Loans.CalculateEMI))
	mux.Handle("POST /api/recommend-tenure", limited("recommend_tenure", h.Terms.RecommendTenure))

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		metrics.HTTPRequestDuration.
			WithLabelValues(route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
