package game

import "math"

// stepPhysics advances the ball one tick and resolves collisions in fixed
// order: vertical walls, then paddles, then the first overlapping block.
// Caller holds the session lock and is in PhaseRally.
func (s *Session) stepPhysics() []Event {
	var events []Event

	s.ball.Pos = s.ball.Pos.Add(s.ball.Vel)

	events = s.collideWalls(events)
	events = s.collidePaddles(events)
	events = s.collideBlocks(events)

	return events
}

// collideWalls clamps the ball to the arena's top/bottom edges and forces the
// vertical velocity sign outward. Forcing the sign (instead of negating)
// keeps a ball that sank past the edge from oscillating into it. Wall hits
// only count toward the no-scope tally once a paddle has touched the ball
// this rally, so pre-serve bounces are never credited.
func (s *Session) collideWalls(events []Event) []Event {
	b := &s.ball

	hit := false
	switch {
	case b.Pos.Y-BallHalf <= 0:
		b.Pos.Y = BallHalf
		b.Vel.Y = math.Abs(b.Vel.Y)
		hit = true
	case b.Pos.Y+BallHalf >= ArenaHeight:
		b.Pos.Y = ArenaHeight - BallHalf
		b.Vel.Y = -math.Abs(b.Vel.Y)
		hit = true
	}
	if !hit {
		return events
	}

	counted := s.progress.LastHitter != SideNone
	if counted {
		s.progress.WallHitsSincePaddle++
	}
	return append(events, NewEvent(EventTypeWallBounce, s.tickCount,
		WallBouncePayload{Y: b.Pos.Y, Counted: counted}))
}

// collidePaddles checks both collision planes. A hit requires the leading
// edge to have crossed the plane, the ball to still be in front of the
// paddle's back face, vertical overlap with the paddle, and inbound motion —
// the last test prevents a double trigger while the ball is receding.
func (s *Session) collidePaddles(events []Event) []Event {
	b := &s.ball

	leftPlane := PaddleMargin + PaddleWidth
	rightPlane := ArenaWidth - PaddleMargin - PaddleWidth

	if b.Vel.X < 0 &&
		b.Pos.X-BallHalf <= leftPlane &&
		b.Pos.X+BallHalf >= PaddleMargin &&
		s.paddleCovers(SideLeft, b.Pos.Y) {
		return s.bouncePaddle(SideLeft, leftPlane, events)
	}

	if b.Vel.X > 0 &&
		b.Pos.X+BallHalf >= rightPlane &&
		b.Pos.X-BallHalf <= ArenaWidth-PaddleMargin &&
		s.paddleCovers(SideRight, b.Pos.Y) {
		return s.bouncePaddle(SideRight, rightPlane, events)
	}

	return events
}

func (s *Session) paddleCovers(side Side, ballY float64) bool {
	pad := s.paddles[side]
	return ballY >= pad.Y-BallHalf && ballY <= pad.Y+PaddleHeight+BallHalf
}

// bouncePaddle resolves a paddle return: snap the ball just outside the
// plane, advance the rally counters, then recompute the velocity from the
// normalized intersect offset.
func (s *Session) bouncePaddle(side Side, plane float64, events []Event) []Event {
	b := &s.ball
	pad := s.paddles[side]

	// Snap outside the paddle so the ball can't tunnel or stick.
	if side == SideLeft {
		b.Pos.X = plane + BallHalf + CollisionEps
	} else {
		b.Pos.X = plane - BallHalf - CollisionEps
	}

	s.progress.LastHitter = side
	s.progress.WallHitsSincePaddle = 0
	s.progress.HitBlockThisRally = false

	outcome := s.progress.OnPaddleHit(s.score[SideLeft] + s.score[SideRight])

	offset := clamp((b.Pos.Y-pad.Center())/(PaddleHeight/2), -1, 1)
	angle := offset * MaxBounceAngle

	// Anti-stuck: enough near-flat returns in a row and the angle is
	// overridden with a forced deflection of random sign.
	if math.Abs(angle) < StraightAngleEps {
		s.progress.ConsecutiveStraightHits++
		if s.progress.ConsecutiveStraightHits >= StraightHitLimit {
			angle = ForcedDeflection
			if s.rng.Float64() < 0.5 {
				angle = -ForcedDeflection
			}
			s.progress.ConsecutiveStraightHits = 0
		}
	} else {
		s.progress.ConsecutiveStraightHits = 0
	}

	dir := 1.0
	if side == SideRight {
		dir = -1.0
	}
	speed := s.progress.BallSpeed
	b.Vel = Vec2{
		X: speed * math.Cos(angle) * dir,
		Y: -speed * math.Sin(angle),
	}

	s.kickRotation()

	events = append(events, NewEvent(EventTypePaddleHit, s.tickCount, PaddleHitPayload{
		Side:       side.String(),
		PaddleHits: s.progress.PaddleHits,
		BallSpeed:  speed,
		Angle:      angle,
	}))
	if outcome.highSpeed {
		events = append(events, NewEvent(EventTypeHighSpeed, s.tickCount,
			HighSpeedPayload{BallSpeed: s.progress.BallSpeed}))
	}
	if outcome.eleganto {
		events = append(events, NewEvent(EventTypeRallyMilestone, s.tickCount,
			RallyMilestonePayload{Name: "eleganto", PaddleHits: s.progress.PaddleHits}))
	}
	if outcome.yameroo {
		events = append(events, NewEvent(EventTypeRallyMilestone, s.tickCount,
			RallyMilestonePayload{Name: "yameroo", PaddleHits: s.progress.PaddleHits}))
	}
	return events
}

// collideBlocks resolves at most one block per tick along the axis of
// minimum penetration, reflecting that velocity component outward and
// pushing the ball clear by the penetration depth plus epsilon. Blocks are
// indestructible; the hit only marks the rally.
func (s *Session) collideBlocks(events []Event) []Event {
	b := &s.ball

	for _, blk := range s.blocks {
		pen, ok := aabbOverlap(b.Pos, BallHalf, BallHalf, blk.Pos, BlockWidth/2, BlockHeight/2)
		if !ok {
			continue
		}

		if pen.X < pen.Y {
			push := pen.X + CollisionEps
			if b.Pos.X < blk.Pos.X {
				b.Pos.X -= push
				b.Vel.X = -math.Abs(b.Vel.X)
			} else {
				b.Pos.X += push
				b.Vel.X = math.Abs(b.Vel.X)
			}
		} else {
			push := pen.Y + CollisionEps
			if b.Pos.Y < blk.Pos.Y {
				b.Pos.Y -= push
				b.Vel.Y = -math.Abs(b.Vel.Y)
			} else {
				b.Pos.Y += push
				b.Vel.Y = math.Abs(b.Vel.Y)
			}
		}

		s.progress.HitBlockThisRally = true
		s.kickRotation()

		events = append(events, NewEvent(EventTypeBlockHit, s.tickCount,
			BlockHitPayload{X: blk.Pos.X, Y: blk.Pos.Y}))
		break
	}
	return events
}

// kickRotation accumulates the cosmetic board-rotation delta. Active in
// Hardcore mode and during deuce; purely telemetry, never touches collision
// geometry.
func (s *Session) kickRotation() {
	if !s.rotationActive() {
		return
	}
	s.rotationDelta += (s.rng.Float64()*2 - 1) * MaxRotationKick
}

func (s *Session) rotationActive() bool {
	if s.mode == ModeHardcore {
		return true
	}
	return s.score[SideLeft] >= BaseWinningScore-1 && s.score[SideRight] >= BaseWinningScore-1
}
