package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lesson-shelf/internal/contextutil"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/storage"
)

// LessonResponse represents one lesson record in API responses.
type LessonResponse struct {
	ID           string `json:"id"`
	RelPath      string `json:"rel_path"`
	Folder       string `json:"folder"`
	Title        string `json:"title"`
	Variant      string `json:"variant,omitempty"`
	CanonicalURL string `json:"canonical_url,omitempty"`
	UpdatedAt    string `json:"updated_at"`
	Hash         string `json:"hash"`
}

// BlockResponse represents one content block in API responses.
type BlockResponse struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Level    int    `json:"level,omitempty"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Text     string `json:"text"`
}

// LessonDetailResponse is a lesson with its ordered content blocks.
type LessonDetailResponse struct {
	LessonResponse
	Blocks []BlockResponse `json:"blocks"`
}

func toLessonResponse(lesson *storage.LessonRecord) LessonResponse {
	return LessonResponse{
		ID:           lesson.ID,
		RelPath:      lesson.RelPath,
		Folder:       lesson.Folder,
		Title:        lesson.Title,
		Variant:      lesson.Variant,
		CanonicalURL: lesson.CanonicalURL,
		UpdatedAt:    lesson.UpdatedAt.UTC().Format(time.RFC3339),
		Hash:         lesson.Hash,
	}
}

// ListLessonsHandler handles HTTP requests for the lesson inventory.
type ListLessonsHandler struct {
	manager    *library.Manager
	lessonRepo storage.LessonStore
}

// NewListLessonsHandler creates a new ListLessonsHandler.
func NewListLessonsHandler(manager *library.Manager, lessonRepo storage.LessonStore) *ListLessonsHandler {
	return &ListLessonsHandler{manager: manager, lessonRepo: lessonRepo}
}

// ServeHTTP lists all indexed lessons ordered by relative path.
func (h *ListLessonsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	lessons, err := h.lessonRepo.ListByShelf(ctx, h.manager.Shelf().ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list lessons", "error", err)
		http.Error(w, "failed to list lessons", http.StatusInternalServerError)
		return
	}

	response := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		response = append(response, toLessonResponse(lesson))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode lessons response", "error", err)
	}
}

// GetLessonHandler handles HTTP requests for one lesson with its blocks.
type GetLessonHandler struct {
	lessonRepo storage.LessonStore
	blockRepo  storage.BlockStore
}

// NewGetLessonHandler creates a new GetLessonHandler.
func NewGetLessonHandler(lessonRepo storage.LessonStore, blockRepo storage.BlockStore) *GetLessonHandler {
	return &GetLessonHandler{lessonRepo: lessonRepo, blockRepo: blockRepo}
}

// ServeHTTP returns one lesson and its ordered block sequence.
func (h *GetLessonHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	blocks, err := h.blockRepo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list blocks", "id", id, "error", err)
		http.Error(w, "failed to get lesson", http.StatusInternalServerError)
		return
	}

	response := LessonDetailResponse{
		LessonResponse: toLessonResponse(lesson),
		Blocks:         make([]BlockResponse, 0, len(blocks)),
	}
	for _, block := range blocks {
		response.Blocks = append(response.Blocks, BlockResponse{
			Index:    block.BlockIndex,
			Kind:     block.Kind,
			Level:    block.Level,
			Language: block.Language,
			URL:      block.URL,
			Alt:      block.Alt,
			Text:     block.Text,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode lesson response", "error", err)
	}
}

// RawLessonHandler serves the complete original text of a lesson.
type RawLessonHandler struct {
	manager    *library.Manager
	lessonRepo storage.LessonStore
}

// NewRawLessonHandler creates a new RawLessonHandler.
func NewRawLessonHandler(manager *library.Manager, lessonRepo storage.LessonStore) *RawLessonHandler {
	return &RawLessonHandler{manager: manager, lessonRepo: lessonRepo}
}

// ServeHTTP returns the full ordered content of a lesson as markdown.
// This is a pure read of the static source document.
func (h *RawLessonHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	content, err := h.manager.ReadLesson(lesson.RelPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read lesson file", "rel_path", lesson.RelPath, "error", err)
		http.Error(w, "failed to read lesson", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write(content); err != nil {
		logger.ErrorContext(ctx, "failed to write lesson content", "error", err)
	}
}
