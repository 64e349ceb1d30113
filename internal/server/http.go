package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"quizdeck/internal/auth"
	"quizdeck/internal/config"
	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
	"quizdeck/internal/scores"
)

// Handlers bundles the per-area HTTP handlers the server mounts.
type Handlers struct {
	Auth     *auth.HTTPHandlers
	Quiz     *quiz.HTTPHandlers
	Scores   *scores.HTTPHandlers
	Question *question.HTTPHandlers
}

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, authSvc *auth.Service, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	// Same payload under the API prefix for front-end probes.
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	requireAuth := auth.RequireAuth(authSvc, logger)
	authed := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(handler)
	}
	admin := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(auth.RequireAdmin(handler))
	}

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.Handle("GET /api/auth/me", authed(h.Auth.Me))

	// Quiz endpoints
	mux.Handle("GET /api/quiz/questions", authed(h.Quiz.Questions))
	mux.Handle("POST /api/quiz/submit", authed(h.Quiz.Submit))

	// Score endpoints (leaderboard is public)
	mux.HandleFunc("GET /api/scores/leaderboard", h.Scores.Leaderboard)
	mux.Handle("GET /api/scores/history", authed(h.Scores.History))

	// Admin question bank
	mux.Handle("GET /api/admin/questions", admin(h.Question.List))
	mux.Handle("POST /api/admin/questions", admin(h.Question.Create))
	mux.Handle("PUT /api/admin/questions/{id}", admin(h.Question.Update))
	mux.Handle("DELETE /api/admin/questions/{id}", admin(h.Question.Delete))

	handler := corsMiddleware(cfg.CORS)(metricsMiddleware(requestLogger(logger)(mux)))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}
