package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lesson-shelf/internal/handlers"
	"lesson-shelf/internal/indexer"
	"lesson-shelf/internal/integrity"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Manager    *library.Manager
	LessonRepo storage.LessonStore
	BlockRepo  storage.BlockStore
	Pipeline   *indexer.Pipeline
	Checker    *integrity.Checker
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	healthHandler := handlers.NewHealthHandler(deps.Manager, deps.LessonRepo)
	listHandler := handlers.NewListLessonsHandler(deps.Manager, deps.LessonRepo)
	getHandler := handlers.NewGetLessonHandler(deps.LessonRepo, deps.BlockRepo)
	rawHandler := handlers.NewRawLessonHandler(deps.Manager, deps.LessonRepo)
	lessonIntegrityHandler := handlers.NewLessonIntegrityHandler(deps.Manager, deps.LessonRepo, deps.Checker)
	shelfIntegrityHandler := handlers.NewShelfIntegrityHandler(deps.Manager, deps.Checker)
	indexHandler := handlers.NewIndexHandler(deps.Pipeline)
	statsHandler := handlers.NewStatsHandler(deps.Pipeline)
	viewHandler := handlers.NewViewHandler(deps.Manager)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/lessons", listHandler)
		r.Method(http.MethodGet, "/lessons/{id}", getHandler)
		r.Method(http.MethodGet, "/lessons/{id}/raw", rawHandler)
		r.Method(http.MethodGet, "/lessons/{id}/integrity", lessonIntegrityHandler)
		r.Method(http.MethodGet, "/integrity", shelfIntegrityHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
	})

	r.Method(http.MethodGet, "/view/*", viewHandler)

	return r
}
