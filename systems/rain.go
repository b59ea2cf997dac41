package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/raincity/config"
)

// ParticleField owns a fixed-capacity buffer of rain drop positions.
// Slots below activeCount are advanced and rendered; the rest keep stale
// positions and are skipped entirely.
type ParticleField struct {
	positions   []float32 // x,y,z triples, len = 3*capacity
	capacity    int
	activeCount int

	halfSpan float32
	top      float32
	rng      *rand.Rand
}

// NewParticleField allocates every slot once with random positions.
func NewParticleField(cfg config.RainConfig, rng *rand.Rand) (*ParticleField, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("particle field capacity must be positive, got %d: %w", cfg.Capacity, config.ErrInvalid)
	}
	if cfg.HalfSpan <= 0 || cfg.Top <= 0 {
		return nil, fmt.Errorf("particle field spawn box is empty: %w", config.ErrInvalid)
	}
	if rng == nil {
		return nil, fmt.Errorf("particle field needs a random source: %w", config.ErrInvalid)
	}

	f := &ParticleField{
		positions: make([]float32, cfg.Capacity*3),
		capacity:  cfg.Capacity,
		halfSpan:  float32(cfg.HalfSpan),
		top:       float32(cfg.Top),
		rng:       rng,
	}
	f.Reset()
	return f, nil
}

// Reset re-randomizes every slot: x,z in [-halfSpan, halfSpan], y in [0, top].
// The active count is left unchanged.
func (f *ParticleField) Reset() {
	for i := 0; i < f.capacity; i++ {
		j := i * 3
		f.positions[j] = randRange(f.rng, -f.halfSpan, f.halfSpan)
		f.positions[j+1] = f.rng.Float32() * f.top
		f.positions[j+2] = randRange(f.rng, -f.halfSpan, f.halfSpan)
	}
}

// SetActiveCount sets how many leading slots are active, clamped to [0, capacity].
// The buffer is never reallocated or reordered.
func (f *ParticleField) SetActiveCount(n int) {
	if n < 0 {
		n = 0
	}
	if n > f.capacity {
		n = f.capacity
	}
	f.activeCount = n
}

// SetActiveRatio activates floor(capacity * ratio) slots.
func (f *ParticleField) SetActiveRatio(ratio float64) {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	f.SetActiveCount(int(math.Floor(float64(f.capacity) * clampFloat64(ratio, 0, 1))))
}

// Update drops every active slot by fallSpeed*delta and recycles drops that
// fall below ground back to the top at a fresh x,z.
// Returns the number of recycled drops.
func (f *ParticleField) Update(delta, fallSpeed float64) int {
	if delta <= 0 || f.activeCount == 0 {
		return 0
	}

	step := float32(fallSpeed * delta)
	recycled := 0

	// Only the active prefix is touched
	active := f.positions[:f.activeCount*3]
	for j := 1; j < len(active); j += 3 {
		y := active[j] - step
		if y < 0 {
			y = f.top
			active[j-1] = randRange(f.rng, -f.halfSpan, f.halfSpan)
			active[j+1] = randRange(f.rng, -f.halfSpan, f.halfSpan)
			recycled++
		}
		active[j] = y
	}

	return recycled
}

// Capacity returns the number of allocated slots.
func (f *ParticleField) Capacity() int {
	return f.capacity
}

// ActiveCount returns the number of active slots.
func (f *ParticleField) ActiveCount() int {
	return f.activeCount
}

// Positions returns the whole position buffer (x,y,z triples).
// The renderer must treat it as read-only.
func (f *ParticleField) Positions() []float32 {
	return f.positions
}

// ActivePositions returns the triples of the active slots only.
func (f *ParticleField) ActivePositions() []float32 {
	return f.positions[:f.activeCount*3]
}

// Position returns slot i.
func (f *ParticleField) Position(i int) (x, y, z float32) {
	j := i * 3
	return f.positions[j], f.positions[j+1], f.positions[j+2]
}

// Top returns the recycle height.
func (f *ParticleField) Top() float32 {
	return f.top
}

// HalfSpan returns the horizontal half-extent of the spawn box.
func (f *ParticleField) HalfSpan() float32 {
	return f.halfSpan
}
