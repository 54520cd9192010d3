package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	// JWTSecret enables bearer auth on /prompts when set.
	JWTSecret string
	RateRPS   float64
	RateBurst int
	Logger    *slog.Logger
}

func NewRouter(h *PromptHandler, cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthCheck)

	r.Route("/prompts", func(r chi.Router) {
		if cfg.RateRPS > 0 && cfg.RateBurst > 0 {
			r.Use(NewRateLimiter(cfg.RateRPS, cfg.RateBurst).Middleware)
		}
		if cfg.JWTSecret != "" {
			r.Use(JWTAuth([]byte(cfg.JWTSecret)))
		}
		r.Post("/", h.CreatePrompt)
		r.Post("/text", h.CreatePromptText)
	})

	return r
}
