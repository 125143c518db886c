package game

import "sort"

// Leaderboard value knobs. The value is what the persistence collaborator
// records per match; it never feeds back into the simulation.
const (
	valuePerPointDiff  = 100
	shutoutBonus       = 250
	hardcoreMultiplier = 1.5
)

// MatchValue computes the leaderboard value of a finished match from the
// score differential, the mode multiplier and the shutout bonus.
func MatchValue(winnerScore, loserScore int, mode Mode, shutout bool) int {
	value := float64((winnerScore - loserScore) * valuePerPointDiff)
	if mode == ModeHardcore {
		value *= hardcoreMultiplier
	}
	if shutout {
		value += shutoutBonus
	}
	return int(value)
}

// StandingEntry is one row of the in-session standings.
type StandingEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// Standings folds the session ledger into win counts, ordered by wins
// descending with a name tie-break so the order is deterministic.
func Standings(history []MatchHistoryEntry) []StandingEntry {
	wins := make(map[string]int)
	for _, e := range history {
		wins[e.WinnerName]++
		if _, ok := wins[e.LoserName]; !ok {
			wins[e.LoserName] = 0
		}
	}

	out := make([]StandingEntry, 0, len(wins))
	for name, n := range wins {
		out = append(out, StandingEntry{Name: name, Wins: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Name < out[j].Name
	})
	return out
}
