package handlers

import (
	"encoding/json"
	"net/http"

	"lesson-shelf/internal/contextutil"
	"lesson-shelf/internal/indexer"
)

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	pipeline *indexer.Pipeline
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(pipeline *indexer.Pipeline) *IndexHandler {
	return &IndexHandler{pipeline: pipeline}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP re-indexes the shelf synchronously.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	response := IndexResponse{Status: "ok", Message: "indexing completed"}
	httpStatus := http.StatusOK

	if err := h.pipeline.IndexAll(ctx); err != nil {
		logger.ErrorContext(ctx, "indexing completed with errors", "error", err)
		response = IndexResponse{Status: "error", Message: err.Error()}
		httpStatus = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode index response", "error", err)
	}
}

// StatsHandler serves index coverage statistics.
type StatsHandler struct {
	pipeline *indexer.Pipeline
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(pipeline *indexer.Pipeline) *StatsHandler {
	return &StatsHandler{pipeline: pipeline}
}

// ServeHTTP returns coverage statistics for the indexed shelf.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	stats, err := h.pipeline.CoverageStats(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to compute stats", "error", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		logger.ErrorContext(ctx, "failed to encode stats response", "error", err)
	}
}
