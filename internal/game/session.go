package game

import (
	"log"
	"sync"
)

// Config configures a Session.
type Config struct {
	// TickRate is how many ticks the driver delivers per second. It only
	// matters for countdown pacing; physics is per-tick.
	TickRate int

	// Seed seeds the session RNG. 0 seeds from the clock.
	Seed int64

	// Rand overrides the RNG entirely (tests). Wins over Seed.
	Rand Rand

	// EventLog, when set, receives every emitted event asynchronously.
	EventLog *EventLog
}

// DefaultTickRate matches the renderer/stream frame rate.
const DefaultTickRate = 24

// Session owns one scoring arena: the simulation state, the round state
// machine and the session-lifetime match history. All methods are safe for
// one caller at a time per the tick contract; the mutex exists so snapshot
// readers (render, API, websocket) can observe consistent state between
// ticks.
type Session struct {
	mu sync.Mutex

	rng      Rand
	seed     int64
	tickRate int
	eventLog *EventLog

	mode  Mode
	names [2]string

	phase       Phase
	resumePhase Phase // phase to restore when unpausing

	countdownTicks int
	launchToward   Side // side the serve travels toward

	ball    Ball
	paddles [2]Paddle
	blocks  []Block
	score   [2]int

	progress      RallyProgress
	rotationDelta float64

	history   []MatchHistoryEntry
	tickCount uint64
}

// NewSession creates an idle session. Call StartMatch to begin play.
func NewSession(cfg Config) *Session {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	return &Session{
		rng:      rng,
		seed:     cfg.Seed,
		tickRate: cfg.TickRate,
		eventLog: cfg.EventLog,
		phase:    PhaseIdle,
	}
}

// StartMatch resets all match state and enters the serve countdown with a
// random initial direction. The session ledger survives across matches.
func (s *Session) StartMatch(mode Mode, p1Name, p2Name string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.names = [2]string{p1Name, p2Name}
	s.score = [2]int{}
	s.blocks = nil
	s.rotationDelta = 0

	toward := SideLeft
	if s.rng.Float64() < 0.5 {
		toward = SideRight
	}
	s.beginCountdown(toward)

	log.Printf("🏓 Match started: %s vs %s (%s)", p1Name, p2Name, mode)

	events := []Event{NewEvent(EventTypeMatchStart, s.tickCount, MatchStartPayload{
		Mode:    mode.String(),
		P1Name:  p1Name,
		P2Name:  p2Name,
		RNGSeed: s.seed,
	})}
	s.publish(events)
	return events
}

// Tick advances the simulation by dtTicks discrete steps under one input
// sample and returns the semantic events that occurred. The whole tick is
// atomic: no collaborator ever observes partial state. Paused and finished
// sessions no-op.
func (s *Session) Tick(in InputSample, dtTicks int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dtTicks <= 0 {
		dtTicks = 1
	}

	var events []Event
	for i := 0; i < dtTicks; i++ {
		// Pause gate: checked at the top, the tick is a no-op.
		switch s.phase {
		case PhaseIdle, PhasePaused, PhaseGameOver:
			s.publish(events)
			return events
		}

		s.tickCount++
		s.movePaddles(in)

		switch s.phase {
		case PhaseCountdown:
			events = s.stepCountdown(events)
		case PhaseRally:
			events = s.stepRally(events)
		}
	}
	s.publish(events)
	return events
}

// TogglePause flips the pause gate. Pausing is only reachable from countdown
// or rally; resuming restores the exact prior phase and timers. Any other
// phase is a no-op. Returns whether the session is paused afterward.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseCountdown, PhaseRally:
		s.resumePhase = s.phase
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = s.resumePhase
	default:
		return false
	}

	paused := s.phase == PhasePaused
	s.publish([]Event{NewEvent(EventTypePauseToggle, s.tickCount,
		PauseTogglePayload{Paused: paused})})
	return paused
}

// movePaddles applies the held controls. Paddles stay live during countdown
// even though the ball is frozen.
func (s *Session) movePaddles(in InputSample) {
	if in.P1Up {
		s.paddles[SideLeft].Y -= PaddleSpeed
	}
	if in.P1Down {
		s.paddles[SideLeft].Y += PaddleSpeed
	}
	if in.P2Up {
		s.paddles[SideRight].Y -= PaddleSpeed
	}
	if in.P2Down {
		s.paddles[SideRight].Y += PaddleSpeed
	}
	s.paddles[SideLeft].Y = clamp(s.paddles[SideLeft].Y, 0, ArenaHeight-PaddleHeight)
	s.paddles[SideRight].Y = clamp(s.paddles[SideRight].Y, 0, ArenaHeight-PaddleHeight)
}

// stepCountdown burns one frozen tick. Step boundaries emit a countdown
// event; at zero the ball launches horizontally toward the chosen side.
func (s *Session) stepCountdown(events []Event) []Event {
	s.countdownTicks--
	if s.countdownTicks > 0 {
		if s.countdownTicks%s.tickRate == 0 {
			events = append(events, NewEvent(EventTypeCountdown, s.tickCount,
				CountdownPayload{Remaining: s.countdownTicks / s.tickRate}))
		}
		return events
	}

	dir := 1.0
	if s.launchToward == SideLeft {
		dir = -1.0
	}
	s.ball.Vel = Vec2{X: dir * s.progress.BallSpeed}

	// Per-point transient markers start clean at launch.
	s.progress.WallHitsSincePaddle = 0
	s.progress.HitBlockThisRally = false

	s.phase = PhaseRally
	return append(events, NewEvent(EventTypeLaunch, s.tickCount, LaunchPayload{
		Direction: s.launchToward.String(),
		Speed:     s.progress.BallSpeed,
	}))
}

// stepRally runs physics, then checks for the ball leaving the arena
// horizontally, which ends the point.
func (s *Session) stepRally(events []Event) []Event {
	events = append(events, s.stepPhysics()...)

	switch {
	case s.ball.Pos.X < 0:
		events = s.resolvePoint(SideRight, events)
	case s.ball.Pos.X > ArenaWidth:
		events = s.resolvePoint(SideLeft, events)
	}
	return events
}

// resolvePoint scores one completed point, classifies it, and either ends
// the match or sets up the next serve toward the conceding side.
func (s *Session) resolvePoint(scorer Side, events []Event) []Event {
	flavor := ClassifyPoint(s.progress)
	s.score[scorer]++
	loser := scorer.Opponent()

	events = append(events, NewEvent(EventTypeScore, s.tickCount, ScorePayload{
		Scorer:     scorer.String(),
		Flavor:     flavor.String(),
		ScoreLeft:  s.score[SideLeft],
		ScoreRight: s.score[SideRight],
	}))

	if s.matchWonBy(scorer) {
		return s.finishMatch(scorer, events)
	}

	// Next serve: recompute the base speed from the cumulative score,
	// discarding the previous rally's incremental bonus.
	events = s.spawnBlocksForScore(events)
	s.beginCountdown(loser)
	return events
}

// matchWonBy applies the win-by-margin rule: reach the winning score while
// leading by at least the margin; anything closer is deuce and play goes on.
func (s *Session) matchWonBy(side Side) bool {
	return s.score[side] >= BaseWinningScore &&
		s.score[side]-s.score[side.Opponent()] >= WinByMargin
}

// finishMatch enters the terminal phase, classifies the match, and appends
// the ledger entry exactly once.
func (s *Session) finishMatch(winner Side, events []Event) []Event {
	loser := winner.Opponent()
	winnerName, loserName := s.names[winner], s.names[loser]

	flavors := ClassifyMatch(s.score[winner], s.score[loser])
	flavors.Streak = IsStreak(s.history, winnerName, loserName)
	s.history = append(s.history, MatchHistoryEntry{
		WinnerName: winnerName,
		LoserName:  loserName,
	})

	value := MatchValue(s.score[winner], s.score[loser], s.mode, flavors.Shutout)

	s.phase = PhaseGameOver
	s.ball.Vel = Vec2{}

	log.Printf("🏆 %s wins %d-%d (%s)", winnerName, s.score[winner], s.score[loser], flavors.Cue())

	return append(events, NewEvent(EventTypeMatchOver, s.tickCount, MatchOverPayload{
		Winner:      winnerName,
		Loser:       loserName,
		WinnerScore: s.score[winner],
		LoserScore:  s.score[loser],
		Flavors:     flavors,
		Cue:         flavors.Cue(),
		Value:       value,
	}))
}

// spawnBlocksForScore invokes the spawner once the match is far enough along
// for obstacles.
func (s *Session) spawnBlocksForScore(events []Event) []Event {
	if s.score[SideLeft]+s.score[SideRight] < PointsToStartBlocks {
		return events
	}
	var spawned, evicted int
	s.blocks, spawned, evicted = SpawnBlocks(s.rng, s.blocks)
	return append(events, NewEvent(EventTypeBlockSpawn, s.tickCount, BlockSpawnPayload{
		Spawned: spawned,
		Evicted: evicted,
		OnField: len(s.blocks),
	}))
}

// beginCountdown recenters everything for the next point and freezes the
// ball for the countdown.
func (s *Session) beginCountdown(toward Side) {
	center := (ArenaHeight - PaddleHeight) / 2
	s.paddles[SideLeft].Y = center
	s.paddles[SideRight].Y = center

	s.ball = Ball{Pos: Vec2{X: ArenaWidth / 2, Y: ArenaHeight / 2}}
	s.progress = NewRallyProgress(BaseSpeedForScore(s.mode, s.score[SideLeft]+s.score[SideRight]))

	s.launchToward = toward
	s.countdownTicks = CountdownSteps * s.tickRate
	s.phase = PhaseCountdown
}

// publish forwards events to the attached log, if any. Dropped events are
// accounted by the log itself.
func (s *Session) publish(events []Event) {
	if s.eventLog == nil || len(events) == 0 {
		return
	}
	s.eventLog.EmitAll(events)
}

// History returns a copy of the session ledger.
func (s *Session) History() []MatchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MatchHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}
