package routes

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLanding  = "landing"
	pageLogin    = "login"
	pageRegister = "register"
)

type Route struct {
	Metrics     interfaces.Metrics
	UserService interfaces.UserService
	Storage     interfaces.KVStore
	Logger      interfaces.Logger
	pages       map[string]*template.Template
}

// NewRoute creates a new Route instance and parses the page templates.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService,
	storage interfaces.KVStore, logger interfaces.Logger,
) (*Route, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageLanding, pageLogin, pageRegister} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFailedToParseTemplates, err)
		}
		pages[name] = tmpl
	}

	return &Route{
		Metrics:     metrics,
		UserService: userService,
		Storage:     storage,
		Logger:      logger,
		pages:       pages,
	}, nil
}

func (r *Route) incCounter(name string) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(name)
	}
}

func (r *Route) observeSince(name string, start time.Time) {
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(name, time.Since(start).Seconds())
	}
}

// countValidation records one validation_errors_total sample per failing
// field and returns the field errors, or nil when err is not a validation
// failure.
func (r *Route) countValidation(form string, err error) validation.Errors {
	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		return nil
	}
	if r.Metrics != nil {
		for _, field := range fieldErrors.Fields() {
			r.Metrics.IncCounterVec(ValidationErrorsTotal, form, string(field))
		}
	}
	return fieldErrors
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, err error, message string) {
	r.writeJSON(w, status, map[string]string{
		"error":   err.Error(),
		"message": message,
	})
}
