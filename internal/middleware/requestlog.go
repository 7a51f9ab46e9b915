package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/haguru/sakura/internal/interfaces"
)

// RequestLogMiddleware tags every request with an ID, echoed in the
// X-Request-ID response header, and logs method, path, status and
// duration once the handler returns. An incoming X-Request-ID is kept.
func RequestLogMiddleware(logger interfaces.Logger, metrics interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, requestID)

			m := httpsnoop.CaptureMetrics(next, w, r)

			if metrics != nil {
				metrics.IncCounterVec(HTTPRequestsTotal, r.Method, strconv.Itoa(m.Code))
			}
			logger.Info("Request handled",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"bytes", m.Written,
				"duration", m.Duration.String(),
			)
		})
	}
}
