package routes

var (
	SignupDurationSecondsBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1}
	LoginDurationSecondsBuckets  = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1}
)

const (
	// page route constants
	LandingRoute  = "/"
	LoginRoute    = "/login"
	RegisterRoute = "/register"

	// API route constants
	LoginRouteAPI    = "/api/login"
	RegisterRouteAPI = "/api/register"
	MetricsRouteAPI  = "/metrics"
	HealthRouteAPI   = "/healthz"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"

	// form submit actions
	ActionField  = "action"
	ActionToggle = "toggle"
	ActionSubmit = "submit"

	// form names used as metric labels
	FormLogin    = "login"
	FormRegister = "register"

	// health statuses
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	// message constants
	MsgSomethingWentWrong = "Something went wrong. Please try again."

	// Error messages
	ErrMethodNotAllowed         = "method not allowed"
	ErrMethodNotAllowedFormat   = "method %s not allowed"
	ErrInvalidContentType       = "Request Content-Type must be application/json"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrInvalidRequestBody       = "Invalid request body"
	ErrFailedToParseForm        = "failed to parse form"
	ErrUnknownFormAction        = "unknown form action"
	ErrFailedToRenderPage       = "failed to render page"
	ErrFailedToEncodeResponse   = "failed to encode response"
	ErrFailedToParseTemplates   = "failed to parse templates"
	ErrStorageUnavailable       = "storage unavailable"

	// metrics constants
	SignupRequestsTotal       = "signup_requests_total"
	SignupRequestsTotalHelp   = "Total number of signup requests received"
	SignupSuccessTotal        = "signup_success_total"
	SignupSuccessTotalHelp    = "Total number of successful signup requests"
	SignupErrorsTotal         = "signup_errors_total"
	SignupErrorsTotalHelp     = "Total number of errors during signup requests"
	SignupDurationSeconds     = "signup_duration_seconds"
	SignupDurationSecondsHelp = "Duration of signup requests in seconds"
	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login requests received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login requests"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login requests"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login requests in seconds"
	ValidationErrorsTotal     = "validation_errors_total"
	ValidationErrorsTotalHelp = "Total number of rejected form fields by form and field"
)

// ValidationErrorsTotalLabels are the labels of ValidationErrorsTotal.
var ValidationErrorsTotalLabels = []string{"form", "field"}
