package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"vogelgpt-backend/internal/handlers"
	"vogelgpt-backend/internal/middleware"
	"vogelgpt-backend/internal/websocket"
)

// New wires the HTTP surface. limiter may be nil to disable rate limiting.
func New(
	chatHandler *handlers.ChatHandler,
	wsHub *websocket.Hub,
	limiter middleware.Limiter,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter))
		}
		r.Post("/chat", chatHandler.Chat)
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return otelhttp.NewHandler(r, "vogelgpt")
}
