package game

import "math"

// spawnCascadeCount rolls the weighted coin cascade deciding how many blocks
// to add this invocation. With fewer than two blocks on the field the spawner
// is still bootstrapping and always adds exactly one.
func spawnCascadeCount(rng Rand, existing int) int {
	if existing < 2 {
		return 1
	}
	count := 1
	if rng.Float64() < CascadeSecondChance {
		count = 2
		if rng.Float64() < CascadeThirdChance {
			count = 3
			if rng.Float64() < CascadeFourthChance {
				count = 4
			}
		}
	}
	return count
}

// placeBlock rejection-samples a vertical position inside the center band,
// keeping at least BlockVerticalGap between block centers. It gives up after
// BlockPlaceAttempts tries; a crowded field just gets fewer blocks.
func placeBlock(rng Rand, blocks []Block) (Block, bool) {
	minY := BlockHeight / 2
	maxY := ArenaHeight - BlockHeight/2

	for attempt := 0; attempt < BlockPlaceAttempts; attempt++ {
		y := minY + rng.Float64()*(maxY-minY)

		crowded := false
		for _, b := range blocks {
			if math.Abs(b.Pos.Y-y) < BlockVerticalGap {
				crowded = true
				break
			}
		}
		if crowded {
			continue
		}

		x := BlockBandLeft + rng.Float64()*(BlockBandRight-BlockBandLeft)
		return Block{Pos: Vec2{X: x, Y: y}}, true
	}
	return Block{}, false
}

// SpawnBlocks runs one spawner invocation: cascade count, best-effort
// placement, then FIFO eviction down to MaxBlocksOnScreen. Returns the new
// block list plus how many were spawned and evicted.
func SpawnBlocks(rng Rand, blocks []Block) (out []Block, spawned, evicted int) {
	out = blocks
	count := spawnCascadeCount(rng, len(blocks))

	for i := 0; i < count; i++ {
		blk, ok := placeBlock(rng, out)
		if !ok {
			continue // silently skip, never fatal
		}
		out = append(out, blk)
		spawned++
	}

	for len(out) > MaxBlocksOnScreen {
		out = out[1:]
		evicted++
	}
	return out, spawned, evicted
}
