package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"football-sim/internal/config"
	"football-sim/internal/store"
)

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
type RouterConfig struct {
	// Store is the result database (required)
	Store *store.Store

	// Hub receives live snapshots; required for the websocket routes.
	Hub *WebSocketHub

	// Sim is the simulation configuration.
	Sim config.SimConfig

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// Origins validates CORS and websocket origins; nil allows localhost only.
	Origins *OriginChecker

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - it has no side effects:
//   - No goroutines are started
//   - No network listeners are opened
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	origins := cfg.Origins
	if origins == nil {
		origins = NewOriginChecker(nil)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins.Origins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := newRouterHandlers(cfg.Store, cfg.Hub, cfg.Sim)

	r.Route("/api", func(r chi.Router) {
		r.Post("/matches", h.handleSimulate)
		r.Get("/matches", h.handleRecentMatches)
		r.Get("/matches/{id}", h.handleMatchByID)
		r.Get("/matches/{id}/positions", h.handleMatchPositions)
		r.Get("/matches/{id}/frame", h.handleMatchFrame)

		r.Get("/table", h.handleTable)
		r.Get("/players/{id}/season", h.handlePlayerSeason)
	})

	r.Get("/healthz", h.handleHealth)

	return r
}
