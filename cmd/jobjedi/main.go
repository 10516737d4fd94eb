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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jobjedi/jobjedi/internal/config"
	"github.com/jobjedi/jobjedi/internal/db"
	dbRedis "github.com/jobjedi/jobjedi/internal/db/redis"
	"github.com/jobjedi/jobjedi/internal/domain"
	logpkg "github.com/jobjedi/jobjedi/internal/logger"
	"github.com/jobjedi/jobjedi/internal/metrics"
	"github.com/jobjedi/jobjedi/internal/repository/embcache"
	jobrepo "github.com/jobjedi/jobjedi/internal/repository/job"
	resumerepo "github.com/jobjedi/jobjedi/internal/repository/resume"
	vectorrepo "github.com/jobjedi/jobjedi/internal/repository/vector"
	chiTransport "github.com/jobjedi/jobjedi/internal/transport/chi"
	openaiEmb "github.com/jobjedi/jobjedi/internal/transport/openai"
	healthuc "github.com/jobjedi/jobjedi/internal/usecase/health"
	jobuc "github.com/jobjedi/jobjedi/internal/usecase/job"
	"github.com/jobjedi/jobjedi/internal/usecase/rank"
	resumeuc "github.com/jobjedi/jobjedi/internal/usecase/resume"
	vectoruc "github.com/jobjedi/jobjedi/internal/usecase/vector"
	"github.com/jobjedi/jobjedi/internal/version"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

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

	logger.Info("Starting jobjedi API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterVectorMetrics()

	// Build embedder chain and vector client — composition root.
	// No API key means the vector client starts Disabled and every
	// similarity feature degrades to its benign fallback.
	embedder, healthEmbedder := buildEmbedder(cfg, store, logger)
	vecClient := buildVectorClient(cfg, store, embedder, logger)

	// Fire the one-shot index initialization in the background; requests
	// arriving before it completes get the not-initialized fallback.
	go func() {
		vecClient.Init(ctx)
		if vecClient.Ready() {
			logger.Info("Vector index ready", zap.String("index", cfg.Vector.IndexName))
		} else {
			logger.Warn("Vector index unavailable", zap.String("state", vecClient.State().String()))
		}
	}()

	jobRepo := jobrepo.New(store, cfg.Storage.KeyPrefix)
	resumeRepo := resumerepo.New(store, cfg.Storage.KeyPrefix)

	ranker := rank.New(rank.Config{
		ScoreScale:    cfg.Rank.ScoreScale,
		ExcerptLength: cfg.Rank.ExcerptLength,
		DefaultLimit:  cfg.Rank.DefaultLimit,
		MaxLimit:      cfg.Rank.MaxLimit,
	})

	jobSvc := jobuc.New(jobRepo, vecClient, jobuc.Config{
		MinQueryLength: cfg.Rank.MinQueryLength,
		TopK:           cfg.Vector.TopK,
	}, logger)
	resumeSvc := resumeuc.New(resumeRepo, ranker, resumeuc.Config{
		MinQueryLength: cfg.Rank.MinQueryLength,
	}, logger)
	healthSvc := healthuc.New(store, healthEmbedder, vecClient)

	server := chiTransport.NewServer(jobSvc, resumeSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

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

// buildEmbedder assembles the decorator chain: OpenAI -> Cached. Returns the
// chain plus a health checker over the base provider, or (nil, nil) when no
// API key is configured.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) (domain.Embedder, healthuc.EmbeddingChecker) {
	if cfg.Embedding.APIKey == "" {
		logger.Warn("No embedding API key configured; semantic search disabled")
		return nil, nil
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, cfg.Storage.KeyPrefix, metrics.EmbeddingCacheTotal, logger)
	}

	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)
	return embedder, base
}

// buildVectorClient wires the vector repository and the resilience client.
func buildVectorClient(cfg config.Config, store db.Store, embedder domain.Embedder, logger *zap.Logger) *vectoruc.Client {
	var index vectoruc.Index
	if embedder != nil {
		index = vectorrepo.New(store, cfg.Storage.KeyPrefix, cfg.Vector.IndexName, cfg.Embedding.Dimensions).
			WithHNSW(cfg.Vector.HNSWM, cfg.Vector.HNSWEFConstruct)
	}

	return vectoruc.NewClient(index, embedder, vectoruc.Config{
		InitTimeout:  time.Duration(cfg.Vector.InitTimeoutSec) * time.Second,
		QueryTimeout: time.Duration(cfg.Vector.QueryTimeoutSec) * time.Second,
		TopK:         cfg.Vector.TopK,
	}, logger)
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

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
