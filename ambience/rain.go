// Package ambience generates rain audio whose loudness follows the storm.
package ambience

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/raincity/config"
)

// RainNoise is an endless low-passed white noise stream. SetLevel may be
// called from any goroutine; Stream runs on the audio goroutine.
type RainNoise struct {
	sr        beep.SampleRate
	maxVolume float64
	smoothing float64

	target atomic.Uint64 // math.Float64bits of the goal gain

	// Audio goroutine only
	rng  *rand.Rand
	gain float64
	lowL float64
	lowR float64
}

// NewRainNoise creates a silent rain stream seeded with seed.
func NewRainNoise(cfg config.AmbienceConfig, seed int64) *RainNoise {
	smoothing := cfg.Smoothing
	if smoothing <= 0 || smoothing > 1 {
		smoothing = 1
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &RainNoise{
		sr:        beep.SampleRate(rate),
		maxVolume: math.Max(cfg.MaxVolume, 0),
		smoothing: smoothing,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// SampleRate returns the stream's sample rate.
func (r *RainNoise) SampleRate() beep.SampleRate {
	return r.sr
}

// SetLevel sets the goal loudness from the particle active ratio in [0,1].
func (r *RainNoise) SetLevel(ratio float64) {
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	r.target.Store(math.Float64bits(ratio * r.maxVolume))
}

// Target returns the goal gain.
func (r *RainNoise) Target() float64 {
	return math.Float64frombits(r.target.Load())
}

// Gain returns the gain reached by the last streamed sample.
// Only safe to call while the stream is not playing.
func (r *RainNoise) Gain() float64 {
	return r.gain
}

// Stream implements beep.Streamer. It never runs dry.
func (r *RainNoise) Stream(samples [][2]float64) (n int, ok bool) {
	target := r.Target()
	for i := range samples {
		r.gain += (target - r.gain) * r.smoothing

		// Each channel gets its own noise so the rain sounds wide
		r.lowL += (r.rng.Float64()*2 - 1 - r.lowL) * 0.35
		r.lowR += (r.rng.Float64()*2 - 1 - r.lowR) * 0.35

		samples[i][0] = r.lowL * r.gain
		samples[i][1] = r.lowR * r.gain
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (r *RainNoise) Err() error { return nil }
