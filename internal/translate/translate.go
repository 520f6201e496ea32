// Package translate normalizes non-English input to English before the
// keyword pipeline runs. It is optional: without an API key the
// translator is nil and inputs pass through untouched.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const translatePrompt = `Translate the following user message to English.
If the message is already English, return it unchanged.
Return ONLY the translated text, with no explanation or quotes.

Message: %s`

// Translator converts user input to English using Gemini.
type Translator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini-backed translator.
// Returns nil if apiKey is empty (translation disabled).
func New(ctx context.Context, apiKey, model string) (*Translator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no API key
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Translator{
		client: client,
		model:  model,
	}, nil
}

// Translate returns the English rendering of text. On any failure the
// original text comes back along with the error so callers can proceed
// with the untranslated input.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if t == nil || t.client == nil {
		return text, nil
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1), // Translation should be literal
		MaxOutputTokens: 500,
	}

	start := time.Now()
	resp, err := t.client.Models.GenerateContent(ctx, t.model,
		genai.Text(fmt.Sprintf(translatePrompt, text)), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "translation API call failed",
			"model", t.model,
			"text_length", len(text),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return text, fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return text, nil
	}

	var translated strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			translated.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(translated.String())
	if result == "" {
		return text, nil
	}
	return result, nil
}

// IsEnabled returns true if the translator is configured.
func (t *Translator) IsEnabled() bool {
	return t != nil && t.client != nil
}
