package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cubbyhole/cubby/pkg/blob"
	"github.com/cubbyhole/cubby/pkg/store"
)

// healthCheckTimeout bounds each dependency ping during readiness checks.
const healthCheckTimeout = 5 * time.Second

// HealthResponse is the body of health endpoint responses.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func healthyResponse(data interface{}) HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func unhealthyResponse(errMsg string) HealthResponse {
	return HealthResponse{
		Status:    "unhealthy",
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
	}
}

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Are the metadata and blob stores reachable?
type HealthHandler struct {
	store store.Store
	blobs blob.Store
}

// NewHealthHandler creates a new health handler.
//
// Either store may be nil, in which case readiness reports unhealthy.
func NewHealthHandler(s store.Store, b blob.Store) *HealthHandler {
	return &HealthHandler{store: s, blobs: b}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. Designed for Kubernetes
// liveness probes; succeeds as long as the HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"service": "cubby",
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK when both the metadata store and the blob store answer a
// ping, 503 Service Unavailable otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("metadata store not initialized"))
		return
	}
	if h.blobs == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("blob store not initialized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("metadata store unreachable: "+err.Error()))
		return
	}
	if err := h.blobs.Ping(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("blob store unreachable: "+err.Error()))
		return
	}

	WriteJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"metadata_store": "ok",
		"blob_store":     "ok",
	}))
}
