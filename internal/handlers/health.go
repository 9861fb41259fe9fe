package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"lesson-shelf/internal/contextutil"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/storage"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	manager            *library.Manager
	lessonRepo         storage.LessonStore
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(manager *library.Manager, lessonRepo storage.LessonStore) *HealthHandler {
	return &HealthHandler{
		manager:            manager,
		lessonRepo:         lessonRepo,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	// Lessons root must exist and be a directory
	if info, err := os.Stat(h.manager.RootPath()); err != nil || !info.IsDir() {
		checks["lessons_root"] = "error"
		issues = append(issues, "lessons_root_unavailable")
		logger.WarnContext(ctx, "lessons root check failed", "path", h.manager.RootPath(), "error", err)
	} else {
		checks["lessons_root"] = "ok"
	}

	// Database must answer a query
	if _, err := h.lessonRepo.ListByShelf(checkCtx, h.manager.Shelf().ID); err != nil {
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
		logger.WarnContext(ctx, "database health check failed", "error", err)
	} else {
		checks["database"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
