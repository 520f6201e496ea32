// Package main provides the campus assistant server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/voicerag/campus-assistant-go/internal/api"
	"github.com/voicerag/campus-assistant-go/internal/assistant"
	"github.com/voicerag/campus-assistant-go/internal/buildinfo"
	"github.com/voicerag/campus-assistant-go/internal/config"
	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/metrics"
	"github.com/voicerag/campus-assistant-go/internal/ratelimit"
	"github.com/voicerag/campus-assistant-go/internal/sentry"
	"github.com/voicerag/campus-assistant-go/internal/snapshot"
	"github.com/voicerag/campus-assistant-go/internal/speech"
	"github.com/voicerag/campus-assistant-go/internal/storage"
	"github.com/voicerag/campus-assistant-go/internal/translate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterstackToken:    cfg.BetterstackToken,
		BetterstackEndpoint: cfg.BetterstackEndpoint,
	})
	log.Info("Starting Campus Assistant Server")

	// Initialize Sentry error reporting (optional)
	if err := sentry.Initialize(sentry.Config{
		DSN:     cfg.SentryDSN,
		Release: buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error reporting disabled")
	} else if sentry.IsEnabled() {
		defer sentry.Flush(2 * time.Second)
		log.Info("Sentry error reporting enabled")
	}

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Initialize knowledge base (seeds sample data on first run)
	kb := knowledge.New(db, log, m)
	if err := kb.Initialize(context.Background()); err != nil {
		log.WithError(err).Fatal("Failed to initialize knowledge base")
	}
	log.WithField("faq_count", kb.FAQCount()).Info("Knowledge base initialized")

	// Load assistant configuration, optionally overlaid from a data file
	assistantCfg := assistant.DefaultConfig()
	if cfg.AssistantDataFile != "" {
		assistantCfg, err = assistant.LoadConfig(cfg.AssistantDataFile)
		if err != nil {
			log.WithError(err).Fatal("Failed to load assistant data file")
		}
		log.WithField("path", cfg.AssistantDataFile).Info("Assistant data file loaded")
	}

	pipeline := assistant.NewPipeline(assistant.PipelineConfig{
		Config: assistantCfg,
		Logger: log,
	})
	log.Info("Assistant pipeline created")

	// Create input translator (optional - requires Gemini API key)
	var translator *translate.Translator
	if cfg.HasTranslator() {
		translator, err = translate.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiTranslateModel)
		if err != nil {
			log.WithError(err).Warn("Failed to create translator, translation disabled")
		} else {
			log.Info("Input translator enabled")
		}
	} else {
		log.Info("Gemini API key not configured, translation disabled")
	}

	// Create transcriber (optional - requires speech API key)
	var transcriber *speech.Transcriber
	if cfg.HasTranscriber() {
		transcriber, err = speech.New(cfg.SpeechAPIKey, cfg.SpeechBaseURL, cfg.SpeechModel)
		if err != nil {
			log.WithError(err).Warn("Failed to create transcriber, voice input disabled")
		} else {
			log.Info("Voice transcription enabled")
		}
	} else {
		log.Info("Speech API key not configured, voice input disabled")
	}

	// Create snapshot exporter (optional - requires bucket configuration)
	var exporter *snapshot.Exporter
	if cfg.HasSnapshot() {
		exporter, err = snapshot.New(context.Background(), snapshot.Config{
			Endpoint:  cfg.SnapshotEndpoint,
			AccessKey: cfg.SnapshotAccessKey,
			SecretKey: cfg.SnapshotSecretKey,
			Bucket:    cfg.SnapshotBucket,
		}, log)
		if err != nil {
			log.WithError(err).Warn("Failed to create snapshot exporter, exports disabled")
		} else {
			log.WithField("bucket", cfg.SnapshotBucket).Info("Knowledge snapshot export enabled")
		}
	}

	// Per-client rate limiter for the API endpoints
	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     cfg.ClientRateLimitBurst,
		RefillRate:    cfg.ClientRateLimitRefillPerSec,
		CleanupPeriod: 5 * time.Minute,
	})
	defer limiter.Stop()

	apiHandler := api.New(api.HandlerConfig{
		Pipeline:      pipeline,
		DB:            db,
		KB:            kb,
		Translator:    translator,
		Transcriber:   transcriber,
		Metrics:       m,
		Logger:        log,
		MaxTextLength: cfg.MaxTextLength,
		MaxAudioBytes: cfg.MaxAudioBytes,
	})

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(api.RequestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, apiHandler, db, kb, registry, cfg, limiter, m)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// History retention goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in history retention goroutine")
			}
		}()
		purgeHistoryLoop(ctx, db, cfg.HistoryRetention, m, log)
	}()

	// Knowledge snapshot export goroutine (only when exporter is configured)
	if exporter.IsEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("Panic in snapshot export goroutine")
				}
			}()
			exportSnapshotLoop(ctx, kb, exporter, cfg.SnapshotInterval, m, log)
		}()
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Cancel context to stop background goroutines
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}
