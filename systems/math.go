package systems

import (
	"math"
	"math/rand"
)

// Clamp functions for common value ranges

// clampFloat64 clamps a float64 value between min and max.
func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Random helpers. Every caller passes its own generator so spawns are reproducible.

// randRange returns a uniform value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// randSign returns +1 or -1 with equal probability.
func randSign(rng *rand.Rand) float32 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Boundary functions

// wrapToroidal folds p back into [-limit, limit], keeping the overshoot.
// A value past +limit lands in (-limit, limit]; past -limit in [-limit, limit).
// Returns the folded value and whether a wrap happened.
func wrapToroidal(p, limit float64) (float64, bool) {
	span := 2 * limit
	switch {
	case p > limit:
		over := math.Mod(p-limit, span)
		if over == 0 {
			over = span
		}
		return -limit + over, true
	case p < -limit:
		over := math.Mod(-limit-p, span)
		if over == 0 {
			over = span
		}
		return limit - over, true
	}
	return p, false
}
