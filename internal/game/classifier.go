package game

// PointFlavor labels how a point was scored.
type PointFlavor uint8

const (
	PointPlain PointFlavor = iota
	PointNoScope
	PointPongPoint
)

// String returns the wire name of the point flavor.
func (f PointFlavor) String() string {
	switch f {
	case PointNoScope:
		return "no_scope"
	case PointPongPoint:
		return "pong_point"
	default:
		return "plain"
	}
}

// NoScopeWallHits is the wall-bounce count beyond which a point scored
// without a recent paddle touch counts as a no-scope.
const NoScopeWallHits = 3

// ClassifyPoint labels the point that just ended from the rally counters at
// the moment of scoring. No-scope wins over pong-point.
func ClassifyPoint(p RallyProgress) PointFlavor {
	if p.WallHitsSincePaddle > NoScopeWallHits {
		return PointNoScope
	}
	if p.HitBlockThisRally {
		return PointPongPoint
	}
	return PointPlain
}

// MatchFlavors carries every per-match classification flag. All computed
// flags are exposed; Cue picks the single one surfaced to the announcer.
type MatchFlavors struct {
	Shutout   bool `json:"shutout"`
	SonicBoom bool `json:"sonicBoom"`
	Explosion bool `json:"explosion"`
	NearMiss  bool `json:"nearMiss"`
	Comeback  bool `json:"comeback"`
	Overtime  bool `json:"overtime"`
	Streak    bool `json:"streak"`
}

// ClassifyMatch computes the score-derived flags for a finished match.
// Streak is score-independent and filled in separately from the ledger.
func ClassifyMatch(winnerScore, loserScore int) MatchFlavors {
	f := MatchFlavors{
		Shutout:  loserScore == 0,
		Overtime: winnerScore > BaseWinningScore,
	}
	if winnerScore >= BaseWinningScore {
		switch loserScore {
		case 2:
			f.SonicBoom = true
		case 3:
			f.Explosion = true
		case 1:
			f.NearMiss = true
		}
	}
	f.Comeback = loserScore >= 4 && !f.Shutout
	return f
}

// Cue returns the one announcement category surfaced externally, in fixed
// priority order. Every flag stays readable on the struct regardless.
func (f MatchFlavors) Cue() string {
	switch {
	case f.Streak:
		return "streak"
	case f.Shutout:
		return "shutout"
	case f.SonicBoom:
		return "sonicboom"
	case f.Explosion:
		return "explosion"
	case f.Comeback:
		return "comeback"
	case f.NearMiss:
		return "nearmiss"
	case f.Overtime:
		return "overtime"
	default:
		return "win"
	}
}

// IsStreak reports whether the current result extends the same winner/loser
// pairing across the two most recent ledger entries, i.e. the third straight
// win by the same player over the same opponent this session.
func IsStreak(history []MatchHistoryEntry, winner, loser string) bool {
	if len(history) < 2 {
		return false
	}
	for _, entry := range history[len(history)-2:] {
		if entry.WinnerName != winner || entry.LoserName != loser {
			return false
		}
	}
	return true
}
