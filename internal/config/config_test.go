package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "10000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "10000")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.HistoryRetention != 30*24*time.Hour {
		t.Errorf("HistoryRetention = %v, want 720h", cfg.HistoryRetention)
	}
	if cfg.SpeechModel != "whisper-1" {
		t.Errorf("SpeechModel = %q, want %q", cfg.SpeechModel, "whisper-1")
	}
	if cfg.MaxTextLength != 2000 {
		t.Errorf("MaxTextLength = %d, want 2000", cfg.MaxTextLength)
	}
	if cfg.HasTranslator() || cfg.HasTranscriber() || cfg.HasSnapshot() {
		t.Error("optional integrations should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("CLIENT_RATE_LIMIT_BURST", "50")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SPEECH_API_KEY", "speech-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.ClientRateLimitBurst != 50 {
		t.Errorf("ClientRateLimitBurst = %v, want 50", cfg.ClientRateLimitBurst)
	}
	if !cfg.HasTranslator() {
		t.Error("HasTranslator() = false with GEMINI_API_KEY set")
	}
	if !cfg.HasTranscriber() {
		t.Error("HasTranscriber() = false with SPEECH_API_KEY set")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("MAX_TEXT_LENGTH", "banana")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 30s", cfg.ShutdownTimeout)
	}
	if cfg.MaxTextLength != 2000 {
		t.Errorf("MaxTextLength = %d, want default 2000", cfg.MaxTextLength)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, "DATA_DIR is required"},
		{"negative retention", func(c *Config) { c.HistoryRetention = -time.Hour }, "HISTORY_RETENTION"},
		{"zero burst", func(c *Config) { c.ClientRateLimitBurst = 0 }, "CLIENT_RATE_LIMIT_BURST"},
		{"betterstack endpoint", func(c *Config) { c.BetterstackToken = "tok" }, "BETTERSTACK_ENDPOINT"},
		{"snapshot creds", func(c *Config) { c.SnapshotBucket = "b" }, "SNAPSHOT_ACCESS_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want message containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSQLitePath(t *testing.T) {
	cfg := validConfig()
	cfg.DataDir = "/data"
	got := cfg.SQLitePath()
	if !strings.HasSuffix(got, "assistant.db") {
		t.Errorf("SQLitePath() = %q, want assistant.db suffix", got)
	}
}

func validConfig() *Config {
	return &Config{
		Port:                        "10000",
		LogLevel:                    "info",
		ShutdownTimeout:             30 * time.Second,
		DataDir:                     "/data",
		HistoryRetention:            30 * 24 * time.Hour,
		ClientRateLimitBurst:        20,
		ClientRateLimitRefillPerSec: 1,
		SnapshotInterval:            24 * time.Hour,
		MaxTextLength:               2000,
		MaxAudioBytes:               10 << 20,
	}
}
