package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lesson-shelf/internal/contextutil"
	"lesson-shelf/internal/integrity"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/storage"
)

// LessonIntegrityHandler runs the per-document integrity checks for one lesson.
type LessonIntegrityHandler struct {
	manager    *library.Manager
	lessonRepo storage.LessonStore
	checker    *integrity.Checker
}

// NewLessonIntegrityHandler creates a new LessonIntegrityHandler.
func NewLessonIntegrityHandler(manager *library.Manager, lessonRepo storage.LessonStore, checker *integrity.Checker) *LessonIntegrityHandler {
	return &LessonIntegrityHandler{
		manager:    manager,
		lessonRepo: lessonRepo,
		checker:    checker,
	}
}

// ServeHTTP checks one lesson and returns its integrity report.
func (h *LessonIntegrityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	lesson, err := h.lessonRepo.GetByID(ctx, id)
	if err == storage.ErrNotFound {
		http.Error(w, "lesson not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to get lesson", "id", id, "error", err)
		http.Error(w, "failed to get lesson", http.StatusInternalServerError)
		return
	}

	absPath, err := h.manager.AbsPath(lesson.RelPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve lesson path", "rel_path", lesson.RelPath, "error", err)
		http.Error(w, "failed to check lesson", http.StatusInternalServerError)
		return
	}

	report := &integrity.Report{CheckedDocuments: 1}
	report.Issues = append(report.Issues, h.checker.CheckStableRead(lesson.RelPath, absPath)...)

	content, err := h.manager.ReadLesson(lesson.RelPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read lesson", "rel_path", lesson.RelPath, "error", err)
		http.Error(w, "failed to check lesson", http.StatusInternalServerError)
		return
	}
	report.Issues = append(report.Issues, h.checker.CheckDocument(lesson.RelPath, content)...)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.ErrorContext(ctx, "failed to encode integrity response", "error", err)
	}
}

// ShelfIntegrityHandler runs the whole integrity suite over the lessons root,
// including the structural duplicate comparison across lesson variants.
type ShelfIntegrityHandler struct {
	manager *library.Manager
	checker *integrity.Checker
}

// NewShelfIntegrityHandler creates a new ShelfIntegrityHandler.
func NewShelfIntegrityHandler(manager *library.Manager, checker *integrity.Checker) *ShelfIntegrityHandler {
	return &ShelfIntegrityHandler{manager: manager, checker: checker}
}

// ServeHTTP checks every lesson on the shelf and returns the combined report.
func (h *ShelfIntegrityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	report, err := h.checker.CheckDir(ctx, h.manager.RootPath())
	if err != nil {
		logger.ErrorContext(ctx, "integrity run failed", "error", err)
		http.Error(w, "integrity run failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.ErrorContext(ctx, "failed to encode integrity response", "error", err)
	}
}
