package middleware

const (
	HeaderRequestID = "X-Request-ID"

	MsgTooManyRequests = "Too many requests. Please try again later."

	// metrics constants
	RateLimitedRequestsTotal     = "rate_limited_requests_total"
	RateLimitedRequestsTotalHelp = "Total number of requests rejected by the rate limiter"
	HTTPRequestsTotal            = "http_requests_total"
	HTTPRequestsTotalHelp        = "Total number of HTTP requests by method and status code"
)

// HTTPRequestsTotalLabels are the labels of HTTPRequestsTotal.
var HTTPRequestsTotalLabels = []string{"method", "code"}
