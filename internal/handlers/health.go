package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"slidestudy-ai/internal/contextutil"
)

// CollectionChecker reports whether the embedding collection is reachable.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	store              CollectionChecker
	collectionName     string
	generationReady    bool
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. generationReady reflects
// whether a model credential is configured; without one the service still
// runs but every expansion returns a placeholder note.
func NewHealthHandler(store CollectionChecker, collectionName string, generationReady bool) *HealthHandler {
	return &HealthHandler{
		store:              store,
		collectionName:     collectionName,
		generationReady:    generationReady,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health. The embedding index is the critical
// dependency: without it uploads and expansions cannot work, so its failure
// makes the service unhealthy. A missing generation credential only degrades.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	status := "healthy"
	httpStatus := http.StatusOK

	if h.checkVectorStore(checkCtx, logger) {
		checks["vector_store"] = "ok"
	} else {
		checks["vector_store"] = "error"
		issues = append(issues, "vector_store_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.generationReady {
		checks["generation"] = "ok"
	} else {
		checks["generation"] = "unconfigured"
		issues = append(issues, "generation_unconfigured")
		if status == "healthy" {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	writeJSON(w, httpStatus, response)
}

// checkVectorStore checks if the embedding collection is accessible.
func (h *HealthHandler) checkVectorStore(ctx context.Context, logger *slog.Logger) bool {
	exists, err := h.store.CollectionExists(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist", "collection", h.collectionName)
		return false
	}
	return true
}
