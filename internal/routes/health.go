package routes

import (
	"net/http"

	"github.com/haguru/sakura/internal/models/dto"
)

// Health reports whether the storage backend answers a ping.
func (r *Route) Health(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w, req, http.MethodGet)
		return
	}

	if err := r.Storage.Ping(req.Context()); err != nil {
		r.Logger.Warn(ErrStorageUnavailable, "error", err)
		r.writeJSON(w, http.StatusServiceUnavailable, &dto.HealthResponseDTO{Status: StatusUnavailable, Error: err.Error()})
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.HealthResponseDTO{Status: StatusOK})
}
