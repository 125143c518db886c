package game

import (
	"math"
	"testing"
)

// TestWallBounceForcesOutwardSign verifies wall contact clamps the ball to
// the edge and forces the velocity sign outward even when it already points
// outward (a sunken ball must not re-negate into the wall).
func TestWallBounceForcesOutwardSign(t *testing.T) {
	tests := []struct {
		name   string
		pos    Vec2
		vel    Vec2
		wantY  float64
		wantVY float64
	}{
		{"top inbound", Vec2{X: 400, Y: 2}, Vec2{X: 5, Y: -4}, BallHalf, 4},
		{"top already outbound", Vec2{X: 400, Y: 2}, Vec2{X: 5, Y: 4}, BallHalf, 4},
		{"bottom inbound", Vec2{X: 400, Y: ArenaHeight - 2}, Vec2{X: 5, Y: 4}, ArenaHeight - BallHalf, -4},
		{"bottom already outbound", Vec2{X: 400, Y: ArenaHeight - 2}, Vec2{X: 5, Y: -4}, ArenaHeight - BallHalf, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rallySession(nil)
			s.ball = Ball{Pos: tt.pos, Vel: tt.vel}
			s.collideWalls(nil)

			if s.ball.Pos.Y != tt.wantY {
				t.Errorf("ball y = %.2f, want clamped to %.2f", s.ball.Pos.Y, tt.wantY)
			}
			if s.ball.Vel.Y != tt.wantVY {
				t.Errorf("ball vy = %.2f, want %.2f", s.ball.Vel.Y, tt.wantVY)
			}
		})
	}
}

// TestWallHitsNotCountedBeforeServeTouch verifies pre-serve wall bounces
// never feed the no-scope tally.
func TestWallHitsNotCountedBeforeServeTouch(t *testing.T) {
	s := rallySession(nil)
	s.ball = Ball{Pos: Vec2{X: 400, Y: 2}, Vel: Vec2{X: 5, Y: -4}}

	s.collideWalls(nil)
	if s.progress.WallHitsSincePaddle != 0 {
		t.Errorf("pre-serve bounce counted: wallHits = %d", s.progress.WallHitsSincePaddle)
	}

	s.progress.LastHitter = SideLeft
	s.ball = Ball{Pos: Vec2{X: 400, Y: 2}, Vel: Vec2{X: 5, Y: -4}}
	s.collideWalls(nil)
	if s.progress.WallHitsSincePaddle != 1 {
		t.Errorf("post-touch bounce not counted: wallHits = %d", s.progress.WallHitsSincePaddle)
	}
}

// TestPaddleBounceAngleFromOffset verifies the bounce angle follows the
// normalized intersect offset and the ball snaps outside the paddle.
func TestPaddleBounceAngleFromOffset(t *testing.T) {
	leftPlane := PaddleMargin + PaddleWidth

	tests := []struct {
		name      string
		ballY     float64 // relative to paddle center
		wantAngle float64
	}{
		{"dead center", 0, 0},
		{"half below center", PaddleHeight / 4, MaxBounceAngle / 2},
		{"half above center", -PaddleHeight / 4, -MaxBounceAngle / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rallySession(nil)
			padCenter := s.paddles[SideLeft].Center()
			s.ball = Ball{
				Pos: Vec2{X: leftPlane + BallHalf - 1, Y: padCenter + tt.ballY},
				Vel: Vec2{X: -BaseSpeedClassic},
			}

			events := s.collidePaddles(nil)
			if len(events) == 0 {
				t.Fatal("no paddle hit resolved")
			}

			if s.ball.Pos.X <= leftPlane {
				t.Errorf("ball x = %.2f not snapped outside plane %.2f", s.ball.Pos.X, leftPlane)
			}
			if s.ball.Vel.X <= 0 {
				t.Errorf("ball vx = %.2f, want outbound", s.ball.Vel.X)
			}

			speed := s.progress.BallSpeed
			wantVY := -speed * math.Sin(tt.wantAngle)
			if math.Abs(s.ball.Vel.Y-wantVY) > 1e-9 {
				t.Errorf("ball vy = %.4f, want %.4f", s.ball.Vel.Y, wantVY)
			}
			if got := s.ball.Vel.Len(); math.Abs(got-speed) > 1e-9 {
				t.Errorf("ball speed = %.4f, want %.4f", got, speed)
			}
		})
	}
}

// TestPaddleNoDoubleTrigger verifies a receding ball inside the plane region
// does not bounce again.
func TestPaddleNoDoubleTrigger(t *testing.T) {
	s := rallySession(nil)
	leftPlane := PaddleMargin + PaddleWidth
	s.ball = Ball{
		Pos: Vec2{X: leftPlane + BallHalf - 1, Y: s.paddles[SideLeft].Center()},
		Vel: Vec2{X: BaseSpeedClassic}, // already moving away
	}

	if events := s.collidePaddles(nil); len(events) != 0 {
		t.Errorf("receding ball triggered %d paddle hits", len(events))
	}
}

// TestPaddleHitResetsRallyMarkers verifies a return clears the wall-hit and
// block-hit markers and records the hitter.
func TestPaddleHitResetsRallyMarkers(t *testing.T) {
	s := rallySession(nil)
	s.progress.WallHitsSincePaddle = 5
	s.progress.HitBlockThisRally = true

	leftPlane := PaddleMargin + PaddleWidth
	s.ball = Ball{
		Pos: Vec2{X: leftPlane + BallHalf - 1, Y: s.paddles[SideLeft].Center()},
		Vel: Vec2{X: -BaseSpeedClassic},
	}
	s.collidePaddles(nil)

	if s.progress.WallHitsSincePaddle != 0 {
		t.Errorf("wallHits = %d after paddle hit, want 0", s.progress.WallHitsSincePaddle)
	}
	if s.progress.HitBlockThisRally {
		t.Error("hitBlockThisRally still set after paddle hit")
	}
	if s.progress.LastHitter != SideLeft {
		t.Errorf("lastHitter = %s, want left", s.progress.LastHitter)
	}
	if s.progress.PaddleHits != 1 {
		t.Errorf("paddleHits = %d, want 1", s.progress.PaddleHits)
	}
}

// TestAntiStuckForcedDeflection verifies the fourth consecutive straight hit
// gets the forced deflection and resets the counter.
func TestAntiStuckForcedDeflection(t *testing.T) {
	// Script the sign flip toward negative.
	s := rallySession(&scriptRand{floats: []float64{0.1}})
	s.progress.ConsecutiveStraightHits = StraightHitLimit - 1

	leftPlane := PaddleMargin + PaddleWidth
	s.ball = Ball{
		Pos: Vec2{X: leftPlane + BallHalf - 1, Y: s.paddles[SideLeft].Center()}, // dead center, angle ~0
		Vel: Vec2{X: -BaseSpeedClassic},
	}
	s.collidePaddles(nil)

	speed := s.progress.BallSpeed
	wantVY := -speed * math.Sin(-ForcedDeflection)
	if math.Abs(s.ball.Vel.Y-wantVY) > 1e-9 {
		t.Errorf("ball vy = %.4f, want forced deflection %.4f", s.ball.Vel.Y, wantVY)
	}
	if s.progress.ConsecutiveStraightHits != 0 {
		t.Errorf("straight counter = %d after forced deflection, want 0", s.progress.ConsecutiveStraightHits)
	}
}

// TestAngledHitResetsStraightCounter verifies any non-flat return clears the
// straight-volley counter.
func TestAngledHitResetsStraightCounter(t *testing.T) {
	s := rallySession(nil)
	s.progress.ConsecutiveStraightHits = 2

	leftPlane := PaddleMargin + PaddleWidth
	s.ball = Ball{
		Pos: Vec2{X: leftPlane + BallHalf - 1, Y: s.paddles[SideLeft].Center() + PaddleHeight/4},
		Vel: Vec2{X: -BaseSpeedClassic},
	}
	s.collidePaddles(nil)

	if s.progress.ConsecutiveStraightHits != 0 {
		t.Errorf("straight counter = %d, want reset to 0", s.progress.ConsecutiveStraightHits)
	}
}

// TestBlockCollisionMinPenetrationAxis verifies resolution happens on the
// axis of least penetration with a push-out past the overlap.
func TestBlockCollisionMinPenetrationAxis(t *testing.T) {
	tests := []struct {
		name    string
		ballPos Vec2
		vel     Vec2
		check   func(t *testing.T, b Ball)
	}{
		{
			// Shallow horizontal overlap left of the block.
			name:    "horizontal axis",
			ballPos: Vec2{X: 600 - BlockWidth/2 - BallHalf + 2, Y: 360},
			vel:     Vec2{X: 6, Y: 1},
			check: func(t *testing.T, b Ball) {
				if b.Vel.X >= 0 {
					t.Errorf("vx = %.2f, want reflected negative", b.Vel.X)
				}
				if b.Pos.X+BallHalf >= 600-BlockWidth/2 {
					t.Errorf("ball not pushed clear: x = %.2f", b.Pos.X)
				}
			},
		},
		{
			// Shallow vertical overlap above the block.
			name:    "vertical axis",
			ballPos: Vec2{X: 600, Y: 360 - BlockHeight/2 - BallHalf + 2},
			vel:     Vec2{X: 1, Y: 6},
			check: func(t *testing.T, b Ball) {
				if b.Vel.Y >= 0 {
					t.Errorf("vy = %.2f, want reflected negative", b.Vel.Y)
				}
				if b.Pos.Y+BallHalf >= 360-BlockHeight/2 {
					t.Errorf("ball not pushed clear: y = %.2f", b.Pos.Y)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rallySession(nil)
			s.blocks = []Block{{Pos: Vec2{X: 600, Y: 360}}}
			s.ball = Ball{Pos: tt.ballPos, Vel: tt.vel}

			events := s.collideBlocks(nil)
			if len(events) != 1 {
				t.Fatalf("resolved %d block hits, want 1", len(events))
			}
			if !s.progress.HitBlockThisRally {
				t.Error("hitBlockThisRally not set")
			}
			tt.check(t, s.ball)
		})
	}
}

// TestOneBlockPerTick verifies only the first overlapping block resolves
// even when the ball overlaps two, and that blocks survive the hit.
func TestOneBlockPerTick(t *testing.T) {
	s := rallySession(nil)
	s.blocks = []Block{
		{Pos: Vec2{X: 600, Y: 360}},
		{Pos: Vec2{X: 600 + BlockWidth, Y: 360}},
	}
	s.ball = Ball{Pos: Vec2{X: 600 + BlockWidth/2, Y: 360}, Vel: Vec2{X: 6, Y: 0}}

	events := s.collideBlocks(nil)
	if len(events) != 1 {
		t.Errorf("resolved %d block hits in one tick, want 1", len(events))
	}
	if len(s.blocks) != 2 {
		t.Errorf("blocks destroyed by collision: %d remain, want 2", len(s.blocks))
	}
}

// TestRotationTelemetry verifies the cosmetic rotation delta accumulates on
// qualifying hits in hardcore mode and deuce, and stays untouched otherwise.
func TestRotationTelemetry(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		score  [2]int
		active bool
	}{
		{"classic early match", ModeClassic, [2]int{1, 0}, false},
		{"classic deuce", ModeClassic, [2]int{BaseWinningScore - 1, BaseWinningScore - 1}, true},
		{"classic beyond deuce", ModeClassic, [2]int{BaseWinningScore, BaseWinningScore - 1}, true},
		{"hardcore from the start", ModeHardcore, [2]int{0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rallySession(&scriptRand{floats: []float64{0.9}})
			s.mode = tt.mode
			s.score = tt.score

			s.kickRotation()
			if got := s.rotationDelta != 0; got != tt.active {
				t.Errorf("rotation delta changed = %v, want %v", got, tt.active)
			}
		})
	}
}
