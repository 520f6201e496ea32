package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicerag/campus-assistant-go/internal/assistant"
	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/ratelimit"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

func newTestHandler(t *testing.T) (*Handler, *storage.DB) {
	t.Helper()

	db, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.New("error")

	kb := knowledge.New(db, log, nil)
	require.NoError(t, kb.Initialize(context.Background()))

	pipeline := assistant.NewPipeline(assistant.PipelineConfig{
		Logger: log,
		Clock:  func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) },
	})

	h := New(HandlerConfig{
		Pipeline:      pipeline,
		DB:            db,
		KB:            kb,
		Logger:        log,
		MaxTextLength: 2000,
		MaxAudioBytes: 1 << 20,
	})
	return h, db
}

func newTestRouter(t *testing.T) (*gin.Engine, *storage.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	h, db := newTestHandler(t)

	router := gin.New()
	router.POST("/api/text", h.HandleText)
	router.POST("/api/voice", h.HandleVoice)
	router.GET("/api/chat/history", h.HandleHistory)
	router.GET("/api/knowledge/search", h.HandleKnowledgeSearch)
	return router, db
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleTextSuccess(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(router, "/api/text", gin.H{"text": "Where is the library?"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Where is the library?", body["input"])
	assert.NotEmpty(t, body["timestamp"])

	response, ok := body["response"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "library_inquiry", response["intent"])
	assert.Equal(t, "question", response["input_type"])
	assert.NotEmpty(t, response["response"])
}

func TestHandleTextMissingField(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"NoText", gin.H{"client_id": "abc"}},
		{"EmptyText", gin.H{"text": ""}},
		{"WhitespaceText", gin.H{"text": "   "}},
		{"NotJSON", "plain string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/text", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, "Missing required field: text", body["error"])
		})
	}
}

func TestHandleTextTooLong(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(router, "/api/text", gin.H{"text": strings.Repeat("a", 2001)})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "too long")
}

func TestHandleTextSavesHistory(t *testing.T) {
	router, db := newTestRouter(t)

	w := postJSON(router, "/api/text", gin.H{"text": "When do dining halls open?", "client_id": "client-1"})
	require.Equal(t, http.StatusOK, w.Code)

	entries, err := db.ListHistory(context.Background(), "client-1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "text", entries[0].Source)
	assert.Equal(t, "When do dining halls open?", entries[0].InputText)
	assert.Equal(t, "dining_inquiry", entries[0].Intent)
	assert.NotEmpty(t, entries[0].ResponseText)
}

func TestHandleVoiceDisabled(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/voice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
}

func TestHandleHistoryOrderAndLimit(t *testing.T) {
	router, db := newTestRouter(t)

	for i, text := range []string{"hello", "where is the library?", "help me"} {
		entry := &storage.HistoryEntry{
			ClientID:  "client-1",
			Source:    "text",
			InputText: text,
			Intent:    "general_inquiry",
			CreatedAt: int64(1700000000 + i),
		}
		require.NoError(t, db.SaveHistory(context.Background(), entry))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history?limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 2, body["count"])

	history, ok := body["history"].([]any)
	require.True(t, ok)
	require.Len(t, history, 2)
	first := history[0].(map[string]any)
	assert.Equal(t, "help me", first["input"])
}

func TestHandleHistoryBadLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history?limit=nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistoryEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["count"])

	history, ok := body["history"].([]any)
	require.True(t, ok)
	assert.Empty(t, history)
}

func TestHandleKnowledgeSearch(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge/search?q=library&category=building", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "library", body["query"])

	results, ok := body["results"].(map[string]any)
	require.True(t, ok)
	buildings, ok := results["buildings"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, buildings)
	assert.Nil(t, results["events"])
}

func TestHandleKnowledgeSearchValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"MissingQuery", "/api/knowledge/search", "Missing required parameter: q"},
		{"UnknownCategory", "/api/knowledge/search?q=wifi&category=dorms", "Unknown category: dorms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "existing-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "existing-id", w.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     2,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer limiter.Stop()

	router := gin.New()
	router.Use(RateLimitMiddleware(limiter, nil))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
}
