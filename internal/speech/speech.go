// Package speech transcribes uploaded audio through a Whisper-compatible
// API so voice input can flow into the same text pipeline. It is optional:
// without an API key the transcriber is nil and voice requests are
// rejected upstream.
package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apperrors "github.com/voicerag/campus-assistant-go/internal/errors"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "whisper-1"

// requestTimeout bounds one transcription call.
const requestTimeout = 30 * time.Second

// Transcriber converts audio uploads to text.
type Transcriber struct {
	client openai.Client
	model  string
}

// New creates a Whisper-backed transcriber. baseURL may point at any
// OpenAI-compatible endpoint; empty uses the OpenAI default.
// Returns nil if apiKey is empty (transcription disabled).
func New(apiKey, baseURL, model string) (*Transcriber, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no API key
	}

	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Transcriber{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Transcribe sends the audio to the transcription endpoint and returns the
// recognized text. filename carries the container format hint (for example
// "clip.wav").
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if t == nil {
		return "", apperrors.ErrTranscriptionUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, filename, "application/octet-stream"),
		Model: openai.AudioModel(t.model),
	})
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "transcription API call failed",
			"model", t.model,
			"filename", filename,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperrors.ErrEmptyAudio
	}
	return text, nil
}

// IsEnabled returns true if the transcriber is configured.
func (t *Transcriber) IsEnabled() bool {
	return t != nil
}
