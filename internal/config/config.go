// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the HTTP server, assistant data, storage, and optional integrations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Translation Configuration
	GeminiAPIKey         string // Gemini API key for the input translator (empty = disabled)
	GeminiTranslateModel string // Gemini model for translation (empty = default)

	// Speech Configuration
	SpeechAPIKey  string // API key for the Whisper-compatible transcription endpoint (empty = disabled)
	SpeechBaseURL string // Base URL for the transcription endpoint (empty = OpenAI default)
	SpeechModel   string // Transcription model name (default: "whisper-1")

	// Observability Configuration
	SentryDSN           string // Sentry DSN for error reporting (empty = disabled)
	BetterstackToken    string // Better Stack source token for log shipping (empty = disabled)
	BetterstackEndpoint string // Better Stack ingest endpoint (required when token set)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir           string        // Data directory for the SQLite database
	AssistantDataFile string        // Optional JSON file overriding intent keywords and response pools
	HistoryRetention  time.Duration // Chat history rows older than this are purged (default: 30 days)

	// Rate Limit Configuration (Token Bucket Algorithm)
	ClientRateLimitBurst        float64 // Maximum burst tokens per client (default: 20)
	ClientRateLimitRefillPerSec float64 // Tokens refilled per second (default: 1)

	// Snapshot Configuration (S3-compatible export, all empty = disabled)
	SnapshotBucket    string
	SnapshotEndpoint  string
	SnapshotAccessKey string
	SnapshotSecretKey string
	SnapshotInterval  time.Duration // How often the knowledge snapshot is exported (default: 24h)

	// Request Limits
	MaxTextLength int   // Maximum accepted text input length in bytes (default: 2000)
	MaxAudioBytes int64 // Maximum accepted audio upload size (default: 10 MiB)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Translation Configuration
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiTranslateModel: getEnv("GEMINI_TRANSLATE_MODEL", ""),

		// Speech Configuration
		SpeechAPIKey:  getEnv("SPEECH_API_KEY", ""),
		SpeechBaseURL: getEnv("SPEECH_BASE_URL", ""),
		SpeechModel:   getEnv("SPEECH_MODEL", "whisper-1"),

		// Observability Configuration
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		BetterstackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterstackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),

		// Metrics Authentication
		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		// Server Configuration
		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		// Data Configuration
		DataDir:           getEnv("DATA_DIR", getDefaultDataDir()),
		AssistantDataFile: getEnv("ASSISTANT_DATA_FILE", ""),
		HistoryRetention:  getDurationEnv("HISTORY_RETENTION", 30*24*time.Hour),

		// Rate Limit Configuration
		ClientRateLimitBurst:        getFloatEnv("CLIENT_RATE_LIMIT_BURST", 20.0),
		ClientRateLimitRefillPerSec: getFloatEnv("CLIENT_RATE_LIMIT_REFILL_PER_SEC", 1.0),

		// Snapshot Configuration
		SnapshotBucket:    getEnv("SNAPSHOT_BUCKET", ""),
		SnapshotEndpoint:  getEnv("SNAPSHOT_ENDPOINT", ""),
		SnapshotAccessKey: getEnv("SNAPSHOT_ACCESS_KEY", ""),
		SnapshotSecretKey: getEnv("SNAPSHOT_SECRET_KEY", ""),
		SnapshotInterval:  getDurationEnv("SNAPSHOT_INTERVAL", 24*time.Hour),

		// Request Limits
		MaxTextLength: getIntEnv("MAX_TEXT_LENGTH", 2000),
		MaxAudioBytes: int64(getIntEnv("MAX_AUDIO_BYTES", 10*1024*1024)),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.HistoryRetention <= 0 {
		errs = append(errs, fmt.Errorf("HISTORY_RETENTION must be positive, got %v", c.HistoryRetention))
	}
	if c.ClientRateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("CLIENT_RATE_LIMIT_BURST must be positive, got %v", c.ClientRateLimitBurst))
	}
	if c.ClientRateLimitRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("CLIENT_RATE_LIMIT_REFILL_PER_SEC must be positive, got %v", c.ClientRateLimitRefillPerSec))
	}
	if c.MaxTextLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_TEXT_LENGTH must be positive, got %d", c.MaxTextLength))
	}
	if c.MaxAudioBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_AUDIO_BYTES must be positive, got %d", c.MaxAudioBytes))
	}
	if c.BetterstackToken != "" && c.BetterstackEndpoint == "" {
		errs = append(errs, errors.New("BETTERSTACK_ENDPOINT is required when BETTERSTACK_TOKEN is set"))
	}
	if c.HasSnapshot() {
		if c.SnapshotBucket == "" {
			errs = append(errs, errors.New("SNAPSHOT_BUCKET is required when snapshot export is configured"))
		}
		if c.SnapshotAccessKey == "" || c.SnapshotSecretKey == "" {
			errs = append(errs, errors.New("SNAPSHOT_ACCESS_KEY and SNAPSHOT_SECRET_KEY are required when snapshot export is configured"))
		}
		if c.SnapshotInterval <= 0 {
			errs = append(errs, fmt.Errorf("SNAPSHOT_INTERVAL must be positive, got %v", c.SnapshotInterval))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "assistant.db")
}

// HasTranslator returns true if the Gemini translator is configured.
func (c *Config) HasTranslator() bool {
	return c.GeminiAPIKey != ""
}

// HasTranscriber returns true if audio transcription is configured.
func (c *Config) HasTranscriber() bool {
	return c.SpeechAPIKey != ""
}

// HasSnapshot returns true if any snapshot export setting is present.
func (c *Config) HasSnapshot() bool {
	return c.SnapshotBucket != "" || c.SnapshotEndpoint != "" ||
		c.SnapshotAccessKey != "" || c.SnapshotSecretKey != ""
}
