package api

import (
	"context"
	"net/http"

	"rallyball/internal/game"
	"rallyball/internal/persist"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SessionInterface defines the session methods used by the API.
// This interface enables mocking for tests without spinning up the tick loop.
// Keep this minimal - only include methods the API layer actually calls.
type SessionInterface interface {
	// Snapshot returns a detached copy of the full session state
	Snapshot() game.Snapshot
	// StartMatch resets match state and enters the serve countdown
	StartMatch(mode game.Mode, p1Name, p2Name string) []game.Event
	// TogglePause flips the pause gate and reports the resulting state
	TogglePause() bool
	// History returns the session-lifetime match ledger
	History() []game.MatchHistoryEntry
}

// InputInterface is how the API hands held controls to the tick driver.
type InputInterface interface {
	SetInput(game.InputSample)
	Input() game.InputSample
}

// LeaderboardInterface abstracts the persisted ranking queries. Nil when
// persistence is disabled; handlers fall back to the in-memory ledger.
type LeaderboardInterface interface {
	TopMatches(ctx context.Context, limit int) ([]persist.MatchRecord, error)
	WinTallies(ctx context.Context, limit int) ([]persist.WinTally, error)
}

// RendererInterface produces a still frame of the current state.
type RendererInterface interface {
	RenderPNG(snap game.Snapshot) ([]byte, error)
}

// StatsProvider exposes internal counters for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Session: session,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Session is the live simulation (required)
	Session SessionInterface

	// Input receives control samples from POST /api/input. Optional; when
	// nil the endpoint reports the controls as unavailable.
	Input InputInterface

	// Leaderboard serves persisted rankings. Optional.
	Leaderboard LeaderboardInterface

	// Renderer backs GET /frame.png. Optional.
	Renderer RendererInterface

	// EventLog exposes event sink counters on the stats endpoint. Optional.
	EventLog StatsProvider

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, uses the default development origins.
	CORSOrigins []string

	// StaticFilesDir is the directory to serve the overlay page from.
	// If empty, defaults to "./overlay".
	StaticFilesDir string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	session     SessionInterface
	input       InputInterface
	leaderboard LeaderboardInterface
	renderer    RendererInterface
	eventLog    StatsProvider
	rateLimiter *IPRateLimiter
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - it has no side effects beyond the rate
// limiter's cleanup goroutine:
//   - No network listeners are opened
//   - No background workers are launched
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
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

	// CORS configuration
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		session:     cfg.Session,
		input:       cfg.Input,
		leaderboard: cfg.Leaderboard,
		renderer:    cfg.Renderer,
		eventLog:    cfg.EventLog,
		rateLimiter: rateLimiter,
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Session state
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
		r.Get("/history", h.handleGetHistory)
		r.Get("/standings", h.handleGetStandings)
		r.Get("/leaderboard", h.handleGetLeaderboard)

		// Match control
		r.Post("/match", h.handleStartMatch)
		r.Post("/input", h.handleInput)
		r.Post("/pause", h.handlePause)
	})

	// Still frame for overlays and thumbnails
	r.Get("/frame.png", h.handleFrame)

	// Health check for load balancers
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Serve static files for the spectator overlay
	staticDir := cfg.StaticFilesDir
	if staticDir == "" {
		staticDir = "./overlay"
	}
	r.Handle("/overlay/*", http.StripPrefix("/overlay/", http.FileServer(http.Dir(staticDir))))
	r.Get("/overlay", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/overlay/", http.StatusMovedPermanently)
	})

	// Default route
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/overlay/", http.StatusFound)
	})

	return r
}
