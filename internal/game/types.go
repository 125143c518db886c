package game

// Mode selects the rule variant for a match.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModeHardcore
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	if m == ModeHardcore {
		return "hardcore"
	}
	return "classic"
}

// ParseMode maps a wire name to a Mode, defaulting to classic.
func ParseMode(s string) Mode {
	if s == "hardcore" {
		return ModeHardcore
	}
	return ModeClassic
}

// BaseSpeed returns the serve speed floor for the mode.
func (m Mode) BaseSpeed() float64 {
	if m == ModeHardcore {
		return BaseSpeedHardcore
	}
	return BaseSpeedClassic
}

// Side identifies a player. SideNone marks "nobody yet" (e.g. no paddle
// touched the ball this rally).
type Side int8

const (
	SideNone Side = iota - 1
	SideLeft
	SideRight
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// String returns the wire name of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Phase is the round state machine position. Exactly one phase is active at
// any time.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseRally
	PhasePaused
	PhaseGameOver
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseRally:
		return "rally"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// InputSample is one tick's worth of held controls, as sampled by whatever
// device abstraction the host provides.
type InputSample struct {
	P1Up   bool `json:"p1Up"`
	P1Down bool `json:"p1Down"`
	P2Up   bool `json:"p2Up"`
	P2Down bool `json:"p2Down"`
}

// Paddle is a vertical slider. Y is the top edge offset, clamped to
// [0, ArenaHeight-PaddleHeight].
type Paddle struct {
	Y float64
}

// Center returns the paddle's vertical center.
func (p Paddle) Center() float64 {
	return p.Y + PaddleHeight/2
}

// Ball is the moving square hull. Velocity is zero during countdown.
type Ball struct {
	Pos Vec2
	Vel Vec2
}

// Block is an indestructible obstacle. Pos is the block center. Blocks are
// only removed by FIFO capacity eviction, never by collision.
type Block struct {
	Pos Vec2
}

// MatchHistoryEntry records one completed match. The history lives for the
// session only; persistence across sessions belongs to the store collaborator.
type MatchHistoryEntry struct {
	WinnerName string `json:"winnerName"`
	LoserName  string `json:"loserName"`
}
