package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models/dto"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware rejects requests with 429 once the shared token
// bucket is empty. It throttles all traffic alike and never tracks failed
// logins per account.
func RateLimitMiddleware(limiter *rate.Limiter, metrics interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if metrics != nil {
					metrics.IncCounter(RateLimitedRequestsTotal)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				resp := dto.RateLimitResponse{Message: MsgTooManyRequests}
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
