package game

import (
	"math"
	"testing"
)

// TestSpeedSchedule verifies the increment fires at the threshold and every
// interval beyond it.
func TestSpeedSchedule(t *testing.T) {
	p := NewRallyProgress(BaseSpeedClassic)

	wantAt := map[int]float64{
		1:  BaseSpeedClassic,
		3:  BaseSpeedClassic,
		4:  BaseSpeedClassic + SpeedIncrement,
		5:  BaseSpeedClassic + SpeedIncrement,
		6:  BaseSpeedClassic + 2*SpeedIncrement,
		8:  BaseSpeedClassic + 3*SpeedIncrement,
		10: BaseSpeedClassic + 4*SpeedIncrement,
	}

	for hit := 1; hit <= 10; hit++ {
		p.OnPaddleHit(0)
		if want, ok := wantAt[hit]; ok {
			if math.Abs(p.BallSpeed-want) > 1e-9 {
				t.Errorf("after hit %d: speed = %.2f, want %.2f", hit, p.BallSpeed, want)
			}
		}
	}
}

// TestSpeedFreezesLateMatch verifies progression stops once the cumulative
// score reaches the cap.
func TestSpeedFreezesLateMatch(t *testing.T) {
	p := NewRallyProgress(BaseSpeedClassic)

	for hit := 0; hit < 8; hit++ {
		p.OnPaddleHit(MaxProgressionScore)
	}
	if p.BallSpeed != BaseSpeedClassic {
		t.Errorf("speed = %.2f, want frozen at %.2f", p.BallSpeed, BaseSpeedClassic)
	}
}

// TestSpeedClampedAtMax verifies BallSpeed never exceeds the ceiling no
// matter how long the rally runs.
func TestSpeedClampedAtMax(t *testing.T) {
	p := NewRallyProgress(BaseSpeedHardcore)

	for hit := 0; hit < 100; hit++ {
		p.OnPaddleHit(0)
		if p.BallSpeed > MaxBallSpeed {
			t.Fatalf("speed %.2f exceeded max %.2f at hit %d", p.BallSpeed, MaxBallSpeed, hit+1)
		}
	}
	if p.BallSpeed != MaxBallSpeed {
		t.Errorf("speed = %.2f, want saturated at %.2f", p.BallSpeed, MaxBallSpeed)
	}
}

// TestMilestonesFireOnce verifies the celebratory thresholds are one-shot
// and fire at the exact hit counts.
func TestMilestonesFireOnce(t *testing.T) {
	p := NewRallyProgress(BaseSpeedClassic)

	var elegantoAt, yamerooAt []int
	for hit := 1; hit <= RallyYamerooHits+5; hit++ {
		out := p.OnPaddleHit(0)
		if out.eleganto {
			elegantoAt = append(elegantoAt, hit)
		}
		if out.yameroo {
			yamerooAt = append(yamerooAt, hit)
		}
	}

	if len(elegantoAt) != 1 || elegantoAt[0] != RallyElegantoHits {
		t.Errorf("eleganto fired at %v, want exactly once at %d", elegantoAt, RallyElegantoHits)
	}
	if len(yamerooAt) != 1 || yamerooAt[0] != RallyYamerooHits {
		t.Errorf("yameroo fired at %v, want exactly once at %d", yamerooAt, RallyYamerooHits)
	}
}

// TestHighSpeedOneShot verifies the high-speed flag fires exactly once per
// rally, the first time the speed crosses the mark.
func TestHighSpeedOneShot(t *testing.T) {
	p := NewRallyProgress(MaxBallSpeed - SpeedIncrement/2)

	fired := 0
	for hit := 0; hit < 20; hit++ {
		if p.OnPaddleHit(0).highSpeed {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("high speed fired %d times, want 1", fired)
	}
	if !p.HighSpeedFlagged {
		t.Error("HighSpeedFlagged not set")
	}
}

// TestBaseSpeedForScore verifies the serve speed recomputation caps at the
// progression score and the speed ceiling.
func TestBaseSpeedForScore(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		total int
		want  float64
	}{
		{"fresh classic", ModeClassic, 0, BaseSpeedClassic},
		{"mid classic", ModeClassic, 3, BaseSpeedClassic + 3*SpeedIncrement},
		{"capped classic", ModeClassic, 12, BaseSpeedClassic + MaxProgressionScore*SpeedIncrement},
		{"fresh hardcore", ModeHardcore, 0, BaseSpeedHardcore},
		{"capped hardcore", ModeHardcore, 20, BaseSpeedHardcore + MaxProgressionScore*SpeedIncrement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BaseSpeedForScore(tt.mode, tt.total)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("BaseSpeedForScore(%v, %d) = %.2f, want %.2f", tt.mode, tt.total, got, tt.want)
			}
			if got > MaxBallSpeed {
				t.Errorf("serve speed %.2f exceeds ceiling", got)
			}
		})
	}
}
