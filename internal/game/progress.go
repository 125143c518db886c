package game

// RallyProgress tracks everything scoped to a single rally. It is reset to
// a fresh value at the start of every point.
type RallyProgress struct {
	PaddleHits              int
	BallSpeed               float64
	ConsecutiveStraightHits int
	LastHitter              Side // SideNone until a paddle touches the ball
	WallHitsSincePaddle     int
	HitBlockThisRally       bool
	HighSpeedFlagged        bool
	ElegantoFlagged         bool
	YamerooFlagged          bool
}

// NewRallyProgress returns a zeroed rally tracker at the given base speed.
func NewRallyProgress(baseSpeed float64) RallyProgress {
	return RallyProgress{
		BallSpeed:  clamp(baseSpeed, 0, MaxBallSpeed),
		LastHitter: SideNone,
	}
}

// hitOutcome reports what a single paddle hit triggered, so the session can
// turn the one-shots into events.
type hitOutcome struct {
	speedIncreased bool
	highSpeed      bool
	eleganto       bool
	yameroo        bool
}

// OnPaddleHit advances the rally counters for one paddle return. Speed goes
// up at the hit threshold and every interval beyond it, but only while the
// cumulative match score is below the progression cap; late-match rallies
// stay at their serve speed to bound difficulty. The result is clamped so
// BallSpeed never exceeds MaxBallSpeed.
func (p *RallyProgress) OnPaddleHit(totalScore int) hitOutcome {
	var out hitOutcome

	p.PaddleHits++

	if totalScore < MaxProgressionScore &&
		p.PaddleHits >= RallyHitsThreshold &&
		(p.PaddleHits-RallyHitsThreshold)%RallyHitsInterval == 0 {
		before := p.BallSpeed
		p.BallSpeed = clamp(p.BallSpeed+SpeedIncrement, 0, MaxBallSpeed)
		out.speedIncreased = p.BallSpeed > before
	}

	if !p.HighSpeedFlagged && p.BallSpeed >= HighSpeedMark {
		p.HighSpeedFlagged = true
		out.highSpeed = true
	}

	if !p.ElegantoFlagged && p.PaddleHits == RallyElegantoHits {
		p.ElegantoFlagged = true
		out.eleganto = true
	}
	if !p.YamerooFlagged && p.PaddleHits == RallyYamerooHits {
		p.YamerooFlagged = true
		out.yameroo = true
	}

	return out
}

// BaseSpeedForScore recomputes the serve speed from the cumulative score,
// discarding any incremental bonus earned during the previous rally.
func BaseSpeedForScore(mode Mode, totalScore int) float64 {
	capped := totalScore
	if capped > MaxProgressionScore {
		capped = MaxProgressionScore
	}
	return clamp(mode.BaseSpeed()+float64(capped)*SpeedIncrement, 0, MaxBallSpeed)
}
