package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP API server with WebSocket support.
// It combines the HTTP router with the WebSocket hub for real-time updates.
type Server struct {
	session     SessionInterface
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server with default production configuration.
//
// IMPORTANT: Background workers do NOT start until Start() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter() directly.
func NewServer(cfg RouterConfig) *Server {
	s := &Server{
		session: cfg.Session,
		wsHub:   NewWebSocketHub(),
	}

	// Track the rate limiter for cleanup on Stop
	if cfg.RateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		cfg.RateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	s.rateLimiter = cfg.RateLimiter

	// Socket input feeds the same driver as POST /api/input
	if cfg.Input != nil {
		s.wsHub.InputSink = cfg.Input.SetInput
	}

	s.router = NewRouter(cfg)
	s.setupWebSocketRoutes()

	return s
}

// setupWebSocketRoutes adds WebSocket-specific routes to the router.
// These need the wsHub instance, so they can't be part of the generic
// NewRouter factory.
func (s *Server) setupWebSocketRoutes() {
	s.router.Get("/ws", s.handleWS)
}

// Hub returns the WebSocket hub so the tick loop can push event batches.
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// Start begins the HTTP server AND starts background workers.
// This is the ONLY method that starts goroutines or opens network listeners.
//
// Call this method only once. To stop the server, signal the process.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.session)

	log.Printf("🌐 API server starting on %s", addr)
	log.Printf("🏓 Overlay: http://localhost%s/overlay", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
// Use this in integration tests instead of calling Start().
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop performs graceful shutdown of background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
