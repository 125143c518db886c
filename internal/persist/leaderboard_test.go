package persist

import (
	"testing"

	"rallyball/internal/game"
)

func TestRecordFromPayload(t *testing.T) {
	p := game.MatchOverPayload{
		Winner:      "Ana",
		Loser:       "Bo",
		WinnerScore: 5,
		LoserScore:  0,
		Flavors:     game.MatchFlavors{Shutout: true},
		Cue:         "shutout",
		Value:       750,
	}

	rec := RecordFromPayload(p, "classic")

	if rec.Winner != "Ana" || rec.Loser != "Bo" {
		t.Errorf("names = %s/%s, want Ana/Bo", rec.Winner, rec.Loser)
	}
	if rec.WinnerScore != 5 || rec.LoserScore != 0 {
		t.Errorf("scores = %d-%d, want 5-0", rec.WinnerScore, rec.LoserScore)
	}
	if rec.Mode != "classic" {
		t.Errorf("mode = %q, want classic", rec.Mode)
	}
	if !rec.Flavors.Shutout || rec.Cue != "shutout" || rec.Value != 750 {
		t.Errorf("classification not carried over: %+v", rec)
	}
	if rec.FinishedAt.IsZero() {
		t.Error("FinishedAt not defaulted")
	}
}
