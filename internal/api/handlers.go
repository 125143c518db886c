package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rallyball/internal/game"
)

// Store queries get a short deadline so a slow database never wedges the
// request goroutine pool.
func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 3*time.Second)
}

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.session.Snapshot())
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Snapshot()
	stats := map[string]interface{}{
		"tick":          snap.Tick,
		"phase":         snap.Phase,
		"mode":          snap.Mode,
		"ballSpeed":     snap.Progress.BallSpeed,
		"paddleHits":    snap.Progress.PaddleHits,
		"blocksOnField": len(snap.Blocks),
		"matchesPlayed": len(snap.History),
	}
	if h.eventLog != nil {
		stats["eventLog"] = h.eventLog.GetStats()
	}
	if h.rateLimiter != nil {
		stats["rateLimiter"] = h.rateLimiter.GetStats()
	}
	writeJSON(w, stats)
}

func (h *routerHandlers) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	history := h.session.History()
	writeJSON(w, map[string]interface{}{
		"matches": history,
		"count":   len(history),
	})
}

func (h *routerHandlers) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, game.Standings(h.session.History()))
}

// handleGetLeaderboard serves persisted rankings when a store is attached,
// otherwise it folds the in-memory session ledger.
func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	if h.leaderboard == nil {
		standings := game.Standings(h.session.History())
		if len(standings) > limit {
			standings = standings[:limit]
		}
		writeJSON(w, map[string]interface{}{
			"source":    "session",
			"standings": standings,
		})
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	tallies, err := h.leaderboard.WinTallies(ctx, limit)
	if err != nil {
		writeError(w, "Leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	matches, err := h.leaderboard.TopMatches(ctx, limit)
	if err != nil {
		writeError(w, "Leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]interface{}{
		"source":     "store",
		"standings":  tallies,
		"topMatches": matches,
	})
}

func (h *routerHandlers) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode   string `json:"mode"`
		P1Name string `json:"p1Name"`
		P2Name string `json:"p2Name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.P1Name == "" || req.P2Name == "" {
		writeError(w, "Both player names are required", http.StatusBadRequest)
		return
	}

	events := h.session.StartMatch(game.ParseMode(req.Mode), req.P1Name, req.P2Name)

	writeJSON(w, map[string]interface{}{
		"success": true,
		"events":  events,
		"state":   h.session.Snapshot(),
	})
}

func (h *routerHandlers) handleInput(w http.ResponseWriter, r *http.Request) {
	if h.input == nil {
		writeError(w, "Input driver not attached", http.StatusServiceUnavailable)
		return
	}

	var sample game.InputSample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.input.SetInput(sample)
	writeJSON(w, map[string]interface{}{"success": true})
}

func (h *routerHandlers) handlePause(w http.ResponseWriter, r *http.Request) {
	paused := h.session.TogglePause()
	writeJSON(w, map[string]interface{}{
		"paused": paused,
		"phase":  h.session.Snapshot().Phase,
	})
}

func (h *routerHandlers) handleFrame(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, "Renderer not attached", http.StatusNotFound)
		return
	}

	start := time.Now()
	png, err := h.renderer.RenderPNG(h.session.Snapshot())
	if err != nil {
		writeError(w, "Render failed", http.StatusInternalServerError)
		return
	}
	RecordRender(time.Since(start))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
