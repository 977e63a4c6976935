// Package config loads service configuration from the environment. A .env
// file in the working directory is honored for local development; real
// environments set variables directly.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/finsight-app/finsight/internal/domain"
)

// Config carries every environment knob the service consumes.
type Config struct {
	// HTTP server
	Port string

	// Store (BigQuery)
	GCPProject string
	BQDataset  string

	// Completion service
	GeminiAPIKey string
	GeminiModel  string

	// Ingestion workflow
	IngestWebhookURL string

	// Optional raw-upload archival; empty disables it.
	GCSBucket string
}

// Load reads the environment, after best-effort loading of a local .env
// file. Missing required values are not an error here: each component
// validates its own keys at call time so the fault surfaces as a
// ConfigError on the request that needs it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		GCPProject:       getEnv("GCP_PROJECT", ""),
		BQDataset:        getEnv("BQ_DATASET", "finsight"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", ""),
		IngestWebhookURL: getEnv("INGEST_WEBHOOK_URL", ""),
		GCSBucket:        getEnv("GCS_BUCKET", ""),
	}
}

// RequireStore validates the Store Gateway configuration.
func (c *Config) RequireStore() error {
	if c.GCPProject == "" {
		return &domain.ConfigError{Missing: "store project ID (GCP_PROJECT)"}
	}
	if c.BQDataset == "" {
		return &domain.ConfigError{Missing: "store dataset ID (BQ_DATASET)"}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
