package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"football-sim/internal/config"
	"football-sim/internal/store"
)

// Server is the HTTP API server with WebSocket support for live match
// viewing.
type Server struct {
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates the API server.
//
// IMPORTANT: Background workers do NOT start until Start() is called. This
// enables testing by allowing the server to be constructed without starting
// goroutines or opening network listeners. For testing HTTP endpoints without
// WebSocket support, use NewRouter() directly.
func NewServer(st *store.Store, cfg config.AppConfig) *Server {
	origins := NewOriginChecker(cfg.Server.CORSOrigins)
	s := &Server{
		wsHub: NewWebSocketHub(origins),
		rateLimiter: NewIPRateLimiter(RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimitPerSecond,
			Burst:             cfg.Server.RateLimitBurst,
			CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
		}),
	}

	s.router = NewRouter(RouterConfig{
		Store:       st,
		Hub:         s.wsHub,
		Sim:         cfg.Sim,
		RateLimiter: s.rateLimiter,
		Origins:     origins,
	})

	s.router.Get("/ws", s.handleWS)

	return s
}

// Start runs the hub loop and serves HTTP. This is the only method that
// starts goroutines or opens network listeners; call it once.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()

	log.Info().Str("addr", addr).Msg("api server starting")
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop shuts down background workers. Call before process exit.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
