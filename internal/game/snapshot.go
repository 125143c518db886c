package game

// Snapshot is an immutable copy of the full session state for readers:
// the renderer, the REST API and the websocket hub all consume this, never
// the live session. Uses value types (not pointers) to ensure immutability.
type Snapshot struct {
	Tick  uint64 `json:"tick"`
	Phase string `json:"phase"`
	Mode  string `json:"mode"`

	P1Name string `json:"p1Name"`
	P2Name string `json:"p2Name"`

	ScoreLeft  int  `json:"scoreLeft"`
	ScoreRight int  `json:"scoreRight"`
	Deuce      bool `json:"deuce"`

	CountdownRemaining int    `json:"countdownRemaining"` // whole steps left, 0 outside countdown
	ServeToward        string `json:"serveToward"`

	Ball     BallSnapshot    `json:"ball"`
	PaddleL  PaddleSnapshot  `json:"paddleLeft"`
	PaddleR  PaddleSnapshot  `json:"paddleRight"`
	Blocks   []BlockSnapshot `json:"blocks"`
	Progress RallySnapshot   `json:"rally"`

	RotationDelta float64 `json:"rotationDelta"`

	History []MatchHistoryEntry `json:"history"`
}

// BallSnapshot is the ball state at snapshot time.
type BallSnapshot struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// PaddleSnapshot is a paddle's top offset.
type PaddleSnapshot struct {
	Y float64 `json:"y"`
}

// BlockSnapshot is a block center.
type BlockSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RallySnapshot exposes the rally counters relevant to overlays.
type RallySnapshot struct {
	PaddleHits          int     `json:"paddleHits"`
	BallSpeed           float64 `json:"ballSpeed"`
	WallHitsSincePaddle int     `json:"wallHitsSincePaddle"`
	HitBlockThisRally   bool    `json:"hitBlockThisRally"`
	LastHitter          string  `json:"lastHitter"`
}

// Snapshot captures the session between ticks. The copy is deep for every
// slice it exposes, so holders stay valid across subsequent ticks.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := make([]BlockSnapshot, len(s.blocks))
	for i, b := range s.blocks {
		blocks[i] = BlockSnapshot{X: b.Pos.X, Y: b.Pos.Y}
	}
	history := make([]MatchHistoryEntry, len(s.history))
	copy(history, s.history)

	countdown := 0
	if s.phase == PhaseCountdown || (s.phase == PhasePaused && s.resumePhase == PhaseCountdown) {
		// Round up so "3" shows for the whole first step.
		countdown = (s.countdownTicks + s.tickRate - 1) / s.tickRate
	}

	return Snapshot{
		Tick:               s.tickCount,
		Phase:              s.phase.String(),
		Mode:               s.mode.String(),
		P1Name:             s.names[SideLeft],
		P2Name:             s.names[SideRight],
		ScoreLeft:          s.score[SideLeft],
		ScoreRight:         s.score[SideRight],
		Deuce:              s.score[SideLeft] >= BaseWinningScore-1 && s.score[SideRight] >= BaseWinningScore-1,
		CountdownRemaining: countdown,
		ServeToward:        s.launchToward.String(),
		Ball: BallSnapshot{
			X:  s.ball.Pos.X,
			Y:  s.ball.Pos.Y,
			VX: s.ball.Vel.X,
			VY: s.ball.Vel.Y,
		},
		PaddleL: PaddleSnapshot{Y: s.paddles[SideLeft].Y},
		PaddleR: PaddleSnapshot{Y: s.paddles[SideRight].Y},
		Blocks:  blocks,
		Progress: RallySnapshot{
			PaddleHits:          s.progress.PaddleHits,
			BallSpeed:           s.progress.BallSpeed,
			WallHitsSincePaddle: s.progress.WallHitsSincePaddle,
			HitBlockThisRally:   s.progress.HitBlockThisRally,
			LastHitter:          s.progress.LastHitter.String(),
		},
		RotationDelta: s.rotationDelta,
		History:       history,
	}
}
