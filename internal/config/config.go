// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI and HTTP server need.
type Config struct {
	// ListenAddr is the HTTP listen address for `serve`.
	ListenAddr string
	// StaticDir serves the review SPA when non-empty.
	StaticDir string
	// OCRLanguage is passed to tesseract -l.
	OCRLanguage string
	// MaxUploadMB bounds multipart uploads.
	MaxUploadMB int
}

// Load reads configuration from the environment. If envFile is non-empty it
// must exist; otherwise a .env in the working directory is loaded when
// present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	} else {
		// Best-effort: local development convenience only.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		StaticDir:   getenv("STATIC_DIR", ""),
		OCRLanguage: getenv("OCR_LANGUAGE", "eng"),
		MaxUploadMB: getenvInt("MAX_UPLOAD_MB", 32),
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
