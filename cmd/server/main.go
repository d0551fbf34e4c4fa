package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"vogelgpt-backend/internal/config"
	"vogelgpt-backend/internal/database"
	"vogelgpt-backend/internal/handlers"
	"vogelgpt-backend/internal/logger"
	"vogelgpt-backend/internal/middleware"
	"vogelgpt-backend/internal/router"
	"vogelgpt-backend/internal/services"
	"vogelgpt-backend/internal/telemetry"
	"vogelgpt-backend/internal/websocket"
)

func main() {
	err := run()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		logger.With().Error("✗ Configuration invalid", zap.Error(err))
		return err
	}
	logger.Init(cfg.Env)
	log := logger.With()
	log.Info("🚀 Starting VogelGPT backend...")
	log.Info("✓ Environment variables loaded")

	ctx := context.Background()

	// ──── Step 2: Tracing ────
	shutdownTracing, err := telemetry.Init(ctx, cfg.OTelEndpoint, cfg.Env)
	if err != nil {
		log.Error("✗ Tracing initialization failed", zap.Error(err))
		return err
	}

	// ──── Step 3: Upstream Clients ────
	httpClient := services.NewHTTPClient()
	openAI := services.NewOpenAIService(httpClient, services.OpenAIOptions{
		BaseURL:    cfg.OpenAIBaseURL,
		APIKey:     cfg.OpenAIAPIKey,
		ChatModel:  cfg.OpenAIChatModel,
		ImageModel: cfg.OpenAIImageModel,
		ImageSize:  cfg.ImageSize,
	})

	var completer services.Completer = openAI
	if cfg.LLMProvider == config.ProviderGemini {
		gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("✗ Gemini client initialization failed", zap.Error(err))
			return err
		}
		defer gemini.Close()
		completer = gemini
	}
	log.Info("✓ Completion provider ready", zap.String("provider", cfg.LLMProvider))

	var images services.ImageGenerator = openAI
	if cfg.ImageProvider == config.ProviderImagen {
		imagen, err := services.NewImagenService(ctx, httpClient, services.ImagenOptions{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.ImagenModel,
		})
		if err != nil {
			log.Error("✗ Imagen client initialization failed", zap.Error(err))
			return err
		}
		images = imagen
	}
	log.Info("✓ Image provider ready", zap.String("provider", cfg.ImageProvider))

	lyrics := services.NewLyricsService(httpClient, cfg.LyricsAPIURL)
	search := services.NewSearchService(httpClient, cfg.SerpAPIURL, cfg.SerpAPIKey)
	if cfg.SerpAPIKey == "" {
		log.Warn("SERPAPI_KEY is not set; web search replies will report a failure")
	}

	dispatcher := services.NewDispatcher(completer, images, lyrics, search)

	// ──── Step 4: Optional Rate Limiting ────
	var limiter middleware.Limiter
	if cfg.RateLimitPerMinute > 0 {
		if cfg.RedisURL != "" {
			redisClient, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				log.Error("✗ Redis connection failed", zap.Error(err))
				return err
			}
			defer redisClient.Close()
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
			log.Info("✓ Redis rate limiter enabled", zap.Int("per_minute", cfg.RateLimitPerMinute))
		} else {
			memLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
			defer memLimiter.Close()
			limiter = memLimiter
			log.Info("✓ In-memory rate limiter enabled", zap.Int("per_minute", cfg.RateLimitPerMinute))
		}
	}

	// ──── Step 5: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(dispatcher)
	wsHub := websocket.NewHub(chatHandler)
	r := router.New(chatHandler, wsHub, limiter)

	// No write timeout: a slow upstream holds its request open.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...", zap.Int("websocket_connections", wsHub.Count()))
		wsHub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
		shutdownTracing(ctx)
	}()

	log.Info(fmt.Sprintf("✓ VogelGPT backend ready on http://localhost:%s", cfg.Port))
	log.Info(fmt.Sprintf("  Chat: POST http://localhost:%s/chat", cfg.Port))
	log.Info(fmt.Sprintf("  WS:   ws://localhost:%s/ws", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("Server error", zap.Error(err))
		shutdownTracing(context.Background())
		return err
	}
	<-shutdownDone
	return nil
}
