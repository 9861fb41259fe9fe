package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"lesson-shelf/internal/config"
	"lesson-shelf/internal/http"
	"lesson-shelf/internal/indexer"
	"lesson-shelf/internal/integrity"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	shelfRepo := storage.NewShelfRepo(db)
	lessonRepo := storage.NewLessonRepo(db)
	blockRepo := storage.NewBlockRepo(db)

	ctx := context.Background()

	// Initialize the library manager over the lessons root
	manager, err := library.NewManager(ctx, shelfRepo, cfg.LessonsPath)
	if err != nil {
		log.Fatalf("Failed to initialize library manager: %v", err)
	}
	slog.Info("Library manager initialized", "root", manager.RootPath())

	// Create indexing pipeline
	pipeline := indexer.NewPipeline(manager, lessonRepo, blockRepo)

	// Create integrity checker
	checker := integrity.NewChecker()

	// Create router with dependencies
	deps := &http.Deps{
		Manager:    manager,
		LessonRepo: lessonRepo,
		BlockRepo:  blockRepo,
		Pipeline:   pipeline,
		Checker:    checker,
	}
	router := http.NewRouter(deps)

	// Start indexing in background after router is ready
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing of lessons")
		if err := pipeline.IndexAll(indexCtx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}
	}()

	// Watch for lesson changes and re-index
	if cfg.WatchEnabled {
		watcher := library.NewWatcher(manager, func(watchCtx context.Context) {
			if err := pipeline.IndexAll(watchCtx); err != nil {
				slog.Error("Re-indexing completed with errors", "error", err)
			}
		})
		go func() {
			if err := watcher.Run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("File watcher stopped", "error", err)
			}
		}()
		slog.Info("File watcher started", "root", manager.RootPath())
	}

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
