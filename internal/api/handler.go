// Package api exposes the assistant over HTTP: text and voice input,
// chat history, and knowledge base search.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voicerag/campus-assistant-go/internal/assistant"
	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/metrics"
	"github.com/voicerag/campus-assistant-go/internal/sentry"
	"github.com/voicerag/campus-assistant-go/internal/speech"
	"github.com/voicerag/campus-assistant-go/internal/storage"
	"github.com/voicerag/campus-assistant-go/internal/translate"
)

// HandlerConfig holds the dependencies for creating a Handler.
type HandlerConfig struct {
	Pipeline      *assistant.Pipeline
	DB            *storage.DB
	KB            *knowledge.KB
	Translator    *translate.Translator // nil = translation disabled
	Transcriber   *speech.Transcriber   // nil = voice input disabled
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
	MaxTextLength int
	MaxAudioBytes int64
}

// Handler serves the assistant API endpoints.
type Handler struct {
	pipeline      *assistant.Pipeline
	db            *storage.DB
	kb            *knowledge.KB
	translator    *translate.Translator
	transcriber   *speech.Transcriber
	metrics       *metrics.Metrics
	logger        *logger.Logger
	maxTextLength int
	maxAudioBytes int64
}

// New creates an API handler.
func New(cfg HandlerConfig) *Handler {
	return &Handler{
		pipeline:      cfg.Pipeline,
		db:            cfg.DB,
		kb:            cfg.KB,
		translator:    cfg.Translator,
		transcriber:   cfg.Transcriber,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger.WithModule("api"),
		maxTextLength: cfg.MaxTextLength,
		maxAudioBytes: cfg.MaxAudioBytes,
	}
}

type textRequest struct {
	Text     string `json:"text"`
	ClientID string `json:"client_id"`
}

// HandleText processes one text input through the pipeline.
//
// POST /api/text
// Request: {"text": "...", "client_id": "..."}
// Response: {"status": "success", "input": "...", "response": {...}, "timestamp": "..."}
func (h *Handler) HandleText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		h.recordError("bad_request", "/api/text")
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Missing required field: text",
		})
		return
	}
	if h.maxTextLength > 0 && len(req.Text) > h.maxTextLength {
		h.recordError("bad_request", "/api/text")
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Text input too long",
		})
		return
	}

	record := h.process(c.Request.Context(), req.Text, "text")
	h.saveHistory(c, clientID(c, req.ClientID), "text", req.Text, record)

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"input":     req.Text,
		"response":  record,
		"timestamp": record.Timestamp,
	})
}

// HandleVoice transcribes an uploaded audio file and runs the result
// through the text pipeline.
//
// POST /api/voice (multipart form, field "audio")
func (h *Handler) HandleVoice(c *gin.Context) {
	if !h.transcriber.IsEnabled() {
		h.recordError("unavailable", "/api/voice")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "Voice input is not configured",
		})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		h.recordError("bad_request", "/api/voice")
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Missing required file: audio",
		})
		return
	}
	if h.maxAudioBytes > 0 && fileHeader.Size > h.maxAudioBytes {
		h.recordError("bad_request", "/api/voice")
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Audio upload too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.recordError("internal", "/api/voice")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Could not read audio upload",
		})
		return
	}
	defer func() { _ = file.Close() }()

	start := time.Now()
	text, err := h.transcriber.Transcribe(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordTranscription("error", time.Since(start).Seconds())
		}
		h.recordError("transcription", "/api/voice")
		h.logger.WithError(err).Warn("Transcription failed")
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status": "error",
			"error":  "Could not transcribe audio",
		})
		return
	}
	if h.metrics != nil {
		h.metrics.RecordTranscription("success", time.Since(start).Seconds())
	}

	record := h.process(c.Request.Context(), text, "voice")
	h.saveHistory(c, clientID(c, c.PostForm("client_id")), "voice", text, record)

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"transcribed_text": text,
		"response":         record,
		"timestamp":        record.Timestamp,
	})
}

// HandleHistory returns recent exchanges, newest first.
//
// GET /api/chat/history?limit=20&client_id=...
func (h *Handler) HandleHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.recordError("bad_request", "/api/chat/history")
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	entries, err := h.db.ListHistory(c.Request.Context(), c.Query("client_id"), limit)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordHistoryOperation("list", "error")
		}
		h.recordError("internal", "/api/chat/history")
		h.logger.WithError(err).Error("History listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Could not load chat history",
		})
		return
	}
	if h.metrics != nil {
		h.metrics.RecordHistoryOperation("list", "success")
	}
	if entries == nil {
		entries = []*storage.HistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"history": entries,
		"count":   len(entries),
	})
}

// HandleKnowledgeSearch queries the knowledge base.
//
// GET /api/knowledge/search?q=library&category=building
func (h *Handler) HandleKnowledgeSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		h.recordError("bad_request", "/api/knowledge/search")
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Missing required parameter: q",
		})
		return
	}

	category := c.Query("category")
	switch category {
	case "", "all", knowledge.CategoryBuilding, knowledge.CategoryEvent,
		knowledge.CategoryClub, knowledge.CategoryService, knowledge.CategoryFAQ:
	default:
		h.recordError("bad_request", "/api/knowledge/search")
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Unknown category: " + category,
		})
		return
	}

	results, err := h.kb.Search(c.Request.Context(), category, query, 0)
	if err != nil {
		h.recordError("internal", "/api/knowledge/search")
		h.logger.WithError(err).Error("Knowledge search failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Knowledge search failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"query":   query,
		"results": results,
	})
}

// process translates (best effort) and runs the pipeline, recording
// metrics for the exchange.
func (h *Handler) process(ctx context.Context, text, source string) assistant.ResponseRecord {
	input := text
	if h.translator.IsEnabled() {
		translated, err := h.translator.Translate(ctx, text)
		if err != nil {
			// Keep the original input; the keyword pipeline still works
			// for English and falls back to general_inquiry otherwise.
			h.logger.WithError(err).Warn("Translation failed, using original input")
		} else {
			input = translated
		}
	}

	start := time.Now()
	record := h.pipeline.Process(input)
	if h.metrics != nil {
		h.metrics.RecordPipelineRequest(string(record.Intent), string(record.InputType), source, time.Since(start).Seconds())
		h.metrics.RecordIntentConfidence(string(record.Intent), record.Confidence)
	}
	return record
}

// saveHistory persists the exchange. Failures are logged but never fail
// the request; the response already exists.
func (h *Handler) saveHistory(c *gin.Context, client, source, input string, record assistant.ResponseRecord) {
	entry := &storage.HistoryEntry{
		ClientID:     client,
		Source:       source,
		InputText:    input,
		ResponseText: record.ResponseText,
		FollowUp:     record.FollowUp,
		Intent:       string(record.Intent),
		Confidence:   record.Confidence,
		InputType:    string(record.InputType),
	}
	if err := h.db.SaveHistory(c.Request.Context(), entry); err != nil {
		if h.metrics != nil {
			h.metrics.RecordHistoryOperation("save", "error")
		}
		h.logger.WithError(err).Error("Failed to save history entry")
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordHistoryOperation("save", "success")
	}
}

// clientID picks the caller-supplied client ID, falling back to the
// client IP so history stays attributable.
func clientID(c *gin.Context, requested string) string {
	if requested != "" {
		return requested
	}
	return c.ClientIP()
}

func (h *Handler) recordError(errorType, endpoint string) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError(errorType, endpoint)
	}
}
