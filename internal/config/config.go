package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LessonsPath  string
	DBPath       string
	APIPort      string
	WatchEnabled bool
	LogLevel     slog.Level
	LogFormat    string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LessonsPath: getEnv("LESSONS_PATH", ""),
		DBPath:      getEnv("DB_PATH", "./data/lesson-shelf.db"),
		APIPort:     getEnv("API_PORT", "9000"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	// Validate required fields
	if cfg.LessonsPath == "" {
		return nil, fmt.Errorf("LESSONS_PATH is required")
	}
	info, err := os.Stat(cfg.LessonsPath)
	if err != nil {
		return nil, fmt.Errorf("LESSONS_PATH is not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("LESSONS_PATH must be a directory: %s", cfg.LessonsPath)
	}

	// Parse WATCH_ENABLED (default true: re-index when lesson files change on disk)
	watchStr := getEnv("WATCH_ENABLED", "true")
	watch, err := strconv.ParseBool(watchStr)
	if err != nil {
		return nil, fmt.Errorf("WATCH_ENABLED must be a boolean: %w", err)
	}
	cfg.WatchEnabled = watch

	// Parse LOG_LEVEL
	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", cfg.LogFormat)
	}

	// Create ./data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
