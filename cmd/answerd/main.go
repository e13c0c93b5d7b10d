package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/raglab/answerd/internal/config"
	"github.com/raglab/answerd/internal/domain"
	"github.com/raglab/answerd/internal/index"
	logpkg "github.com/raglab/answerd/internal/logger"
	"github.com/raglab/answerd/internal/metrics"
	corpusrepo "github.com/raglab/answerd/internal/repository/corpus"
	chiTransport "github.com/raglab/answerd/internal/transport/chi"
	answeruc "github.com/raglab/answerd/internal/usecase/answer"
	guardrailuc "github.com/raglab/answerd/internal/usecase/guardrail"
	healthuc "github.com/raglab/answerd/internal/usecase/health"
	retrievaluc "github.com/raglab/answerd/internal/usecase/retrieval"
	"github.com/raglab/answerd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting answerd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("default_preset", cfg.Retrieval.DefaultPreset),
	)

	// Load the corpus: configured file or the built-in seed.
	docs := corpusrepo.Default()
	if cfg.Retrieval.CorpusFile != "" {
		docs, err = corpusrepo.LoadFile(cfg.Retrieval.CorpusFile)
		if err != nil {
			logger.Fatal("Failed to load corpus file", zap.Error(err))
		}
	}
	repo := corpusrepo.New(docs)

	// Fit the shared vector space. Everything downstream projects through it.
	// An empty corpus means the system must not start.
	space, err := index.Fit(repo.Texts(), cfg.Retrieval.MaxFeatures)
	if err != nil {
		logger.Fatal("Failed to build vector space", zap.Error(err))
	}
	logger.Info("Vector space fitted",
		zap.Int("documents", repo.Count()),
		zap.Int("vocabulary", space.VocabularySize()),
	)

	// Load the denylist and build the matcher from the same fitted space.
	phrases := guardrailuc.DefaultDenylist()
	if cfg.Guardrail.DenylistFile != "" {
		phrases, err = guardrailuc.LoadFile(cfg.Guardrail.DenylistFile)
		if err != nil {
			logger.Fatal("Failed to load denylist file", zap.Error(err))
		}
	}
	guard := guardrailuc.New(space, phrases, cfg.Guardrail.SemanticThreshold)
	logger.Info("Guardrail matcher ready",
		zap.Int("denylist_entries", guard.Size()),
		zap.Float64("semantic_threshold", cfg.Guardrail.SemanticThreshold),
	)

	defaultConfig, err := domain.ConfigFromPreset(cfg.Retrieval.DefaultPreset)
	if err != nil {
		// Validate already checked the preset; this is unreachable on a loaded config.
		logger.Fatal("Invalid default preset", zap.Error(err))
	}

	// Register retrieval metrics explicitly (no init())
	metrics.RegisterRetrievalMetrics()

	// Create use case services
	retrievalSvc := retrievaluc.New(space, repo.All(), cfg.Retrieval.LowConfidenceThreshold)
	answerSvc := answeruc.New()
	healthSvc := healthuc.New(repo, space)
	aggregator := metrics.NewAggregator(cfg.Metrics.MaxLatencySamples)

	// Create chi server
	server := chiTransport.NewServer(
		space, guard, retrievalSvc, answerSvc, aggregator, healthSvc,
		defaultConfig, cfg.Retrieval.MaxTopK, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
