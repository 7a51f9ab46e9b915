package interfaces

import (
	"context"
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) error
	Use(middleware ...func(http.Handler) http.Handler)
	Handler() http.Handler
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
