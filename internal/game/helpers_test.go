package game

// scriptRand replays a fixed sequence of Float64 values, then repeats 0.5.
// Lets spawner and deflection tests pin every coin flip.
type scriptRand struct {
	floats []float64
	pos    int
}

func (r *scriptRand) Float64() float64 {
	if r.pos < len(r.floats) {
		v := r.floats[r.pos]
		r.pos++
		return v
	}
	return 0.5
}

func (r *scriptRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// rallySession builds a session mid-rally with sane defaults for physics
// tests. Callers tweak fields directly before stepping.
func rallySession(rng Rand) *Session {
	if rng == nil {
		rng = &scriptRand{}
	}
	s := &Session{
		rng:      rng,
		tickRate: DefaultTickRate,
		mode:     ModeClassic,
		names:    [2]string{"Ping", "Pong"},
		phase:    PhaseRally,
		progress: NewRallyProgress(BaseSpeedClassic),
	}
	center := (ArenaHeight - PaddleHeight) / 2
	s.paddles[SideLeft].Y = center
	s.paddles[SideRight].Y = center
	s.ball = Ball{Pos: Vec2{X: ArenaWidth / 2, Y: ArenaHeight / 2}}
	return s
}
