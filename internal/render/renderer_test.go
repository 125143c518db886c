package render

import (
	"bytes"
	"image/png"
	"testing"

	"rallyball/internal/game"
)

func TestRenderPNGProducesArenaSizedImage(t *testing.T) {
	session := game.NewSession(game.Config{Seed: 1})
	session.StartMatch(game.ModeClassic, "Ana", "Bo")

	data, err := NewRenderer().RenderPNG(session.Snapshot())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != int(game.ArenaWidth) || bounds.Dy() != int(game.ArenaHeight) {
		t.Errorf("frame is %dx%d, want %dx%d",
			bounds.Dx(), bounds.Dy(), int(game.ArenaWidth), int(game.ArenaHeight))
	}
}

func TestRenderPNGHandlesEveryPhase(t *testing.T) {
	// Idle, countdown, paused and game_over snapshots must all render
	// without depending on rally-only state.
	snaps := []game.Snapshot{
		{Phase: "idle"},
		{Phase: "countdown", CountdownRemaining: 3},
		{Phase: "paused"},
		{Phase: "game_over", ScoreLeft: 5, P1Name: "Ana", P2Name: "Bo"},
	}

	r := NewRenderer()
	for _, snap := range snaps {
		if _, err := r.RenderPNG(snap); err != nil {
			t.Errorf("RenderPNG(phase=%s): %v", snap.Phase, err)
		}
	}
}
