package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"userd/internal/config"
	"userd/internal/handlers"
	"userd/internal/middleware"
	"userd/internal/store"
)

// New creates a fully-configured chi router with the middleware chain
// and all route handlers wired together. The chain order is fixed:
// CORS, request id, logging, timing, admin guard, then the handler —
// so even a guard 401 carries CORS and timing headers.
func New(cfg *config.Config, st store.Store, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Timing)
	r.Use(middleware.AdminGuard(cfg.APIKey))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	// ── Handlers ────────────────────────────────────────────
	systemH := handlers.NewSystemHandler()
	usersH := handlers.NewUsersHandler(st)

	r.Get("/health", systemH.Health)
	r.Get("/admin/secret", systemH.AdminSecret)
	r.Route("/users", usersH.Routes)

	return r
}

// requestLogger logs each HTTP request with method, path, status code,
// duration, and the request id assigned upstream.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
		})
	}
}
