package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"loan-underwriter/metrics"
)

// RateLimitMiddleware rejects callers that used up their window on route
// with 429. Callers carrying a user id are limited per user, anonymous
// callers per remote IP.
func RateLimitMiddleware(limiter *RateLimiter, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := limiter.Reserve(route + "|" + clientKey(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			metrics.RateLimited.WithLabelValues(route).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(res)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if id := r.Header.Get(UserIDHeader); id != "" {
		return "user:" + id
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func retryAfterSeconds(res Reservation) int {
	return max(1, int(math.Ceil(res.RetryAfter.Seconds())))
}
