package handlers

import "net/http"

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// Handle implements GET /healthz. The mux restricts the method.
func (HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	respondData(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "cliptube",
	}, "healthy")
}
