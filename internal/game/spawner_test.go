package game

import (
	"math"
	"testing"
)

// TestSpawnBootstrap verifies the spawner adds exactly one block while the
// field holds fewer than two, regardless of the coin flips.
func TestSpawnBootstrap(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.0, 0.0, 0.0, 0.5}} // flips would all pass

	blocks, spawned, evicted := SpawnBlocks(rng, nil)
	if spawned != 1 || len(blocks) != 1 {
		t.Errorf("bootstrap spawned %d (field %d), want exactly 1", spawned, len(blocks))
	}
	if evicted != 0 {
		t.Errorf("bootstrap evicted %d, want 0", evicted)
	}
}

// TestSpawnCascadeCounts verifies the conditional coin flip chain.
func TestSpawnCascadeCounts(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		floats   []float64
		want     int
	}{
		{"bootstrap ignores flips", 0, []float64{0.0, 0.0, 0.0}, 1},
		{"single block field ignores flips", 1, []float64{0.0, 0.0, 0.0}, 1},
		{"first flip fails", 2, []float64{0.9}, 1},
		{"second block only", 2, []float64{0.5, 0.9}, 2},
		{"third block", 2, []float64{0.5, 0.3, 0.5}, 3},
		{"full cascade", 2, []float64{0.5, 0.3, 0.05}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptRand{floats: tt.floats}
			if got := spawnCascadeCount(rng, tt.existing); got != tt.want {
				t.Errorf("spawnCascadeCount = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestPlacementRejectsCrowdedRows verifies candidates too close to an
// existing block's vertical position are rejected and a clear row is found.
func TestPlacementRejectsCrowdedRows(t *testing.T) {
	existing := []Block{{Pos: Vec2{X: 600, Y: 300}}}

	// First candidate lands on the occupied row, second is far away.
	minY := BlockHeight / 2
	span := ArenaHeight - BlockHeight
	crowded := (300 - minY) / span
	clear := (600 - minY) / span
	rng := &scriptRand{floats: []float64{crowded, clear, 0.5}}

	blk, ok := placeBlock(rng, existing)
	if !ok {
		t.Fatal("placeBlock failed with a clear row available")
	}
	if math.Abs(blk.Pos.Y-600) > 1 {
		t.Errorf("block placed at y=%.1f, want ~600", blk.Pos.Y)
	}
	if blk.Pos.X < BlockBandLeft || blk.Pos.X > BlockBandRight {
		t.Errorf("block x=%.1f outside center band", blk.Pos.X)
	}
}

// TestPlacementGivesUpSilently verifies exhausting all attempts drops the
// block without error.
func TestPlacementGivesUpSilently(t *testing.T) {
	existing := []Block{{Pos: Vec2{X: 600, Y: 360}}}

	// Every candidate lands on the occupied row.
	minY := BlockHeight / 2
	span := ArenaHeight - BlockHeight
	sameRow := (360 - minY) / span
	floats := make([]float64, BlockPlaceAttempts)
	for i := range floats {
		floats[i] = sameRow
	}

	if _, ok := placeBlock(&scriptRand{floats: floats}, existing); ok {
		t.Error("placeBlock succeeded, want silent give-up")
	}
}

// TestFIFOEviction verifies the oldest blocks are evicted and the cap holds
// across repeated spawner invocations.
func TestFIFOEviction(t *testing.T) {
	rng := NewRand(7)

	var blocks []Block
	var oldest Block
	for i := 0; i < 20; i++ {
		if len(blocks) == MaxBlocksOnScreen {
			oldest = blocks[0]
		}
		var evicted int
		blocks, _, evicted = SpawnBlocks(rng, blocks)

		if len(blocks) > MaxBlocksOnScreen {
			t.Fatalf("field holds %d blocks, cap is %d", len(blocks), MaxBlocksOnScreen)
		}
		if evicted > 0 {
			for _, b := range blocks {
				if b == oldest {
					t.Fatal("oldest block survived an eviction")
				}
			}
		}
	}
}
