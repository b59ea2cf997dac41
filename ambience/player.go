package ambience

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays a RainNoise through the system speaker.
type Player struct {
	mu          sync.Mutex
	rain        *RainNoise
	ctrl        *beep.Ctrl
	initialized bool
}

// NewPlayer wraps rain for playback. Nothing is played until Start.
func NewPlayer(rain *RainNoise) *Player {
	return &Player{
		rain: rain,
		ctrl: &beep.Ctrl{Streamer: rain},
	}
}

// Start opens the speaker and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	sr := p.rain.SampleRate()
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.ctrl)
	p.initialized = true
	return nil
}

// SetLevel forwards the particle active ratio to the stream.
func (p *Player) SetLevel(ratio float64) {
	p.rain.SetLevel(ratio)
}

// ToggleMute pauses or resumes playback and reports whether it is now muted.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return true
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	muted := p.ctrl.Paused
	speaker.Unlock()
	return muted
}

// Muted reports whether playback is paused or never started.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}
