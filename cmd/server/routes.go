// Package main provides the campus assistant server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voicerag/campus-assistant-go/internal/api"
	"github.com/voicerag/campus-assistant-go/internal/config"
	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/metrics"
	"github.com/voicerag/campus-assistant-go/internal/ratelimit"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

// setupRoutes configures all HTTP routes
func setupRoutes(
	router *gin.Engine,
	handler *api.Handler,
	db *storage.DB,
	kb *knowledge.KB,
	registry *prometheus.Registry,
	cfg *config.Config,
	limiter *ratelimit.PerKeyLimiter,
	m *metrics.Metrics,
) {
	// Root endpoint - redirect to project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/voicerag/campus-assistant-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		historyCount, _ := db.CountHistory(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"knowledge": gin.H{
				"faqs": kb.FAQCount(),
			},
			"history": gin.H{
				"entries": historyCount,
			},
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Assistant API endpoints, rate limited per client IP
	apiGroup := router.Group("/api", api.RateLimitMiddleware(limiter, m))
	apiGroup.POST("/text", handler.HandleText)
	apiGroup.POST("/voice", handler.HandleVoice)
	apiGroup.GET("/chat/history", handler.HandleHistory)
	apiGroup.GET("/knowledge/search", handler.HandleKnowledgeSearch)

	// Prometheus metrics endpoint, behind Basic Auth when configured
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}

	// JSON 404 for unknown routes
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Endpoint not found",
			"available_endpoints": []string{
				"POST /api/text",
				"POST /api/voice",
				"GET /api/chat/history",
				"GET /api/knowledge/search",
				"GET /healthz",
				"GET /ready",
			},
		})
	})
}
