package viewer

import (
	"sort"
	"time"
)

// Render phase names.
const (
	renderScene  = "scene"
	renderWater  = "water"
	renderLamps  = "lamps"
	renderAgents = "agents"
	renderRain   = "rain"
	renderUI     = "ui"
)

// RenderPerf tracks draw time for each render phase.
type RenderPerf struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewRenderPerf creates a new render timing tracker.
func NewRenderPerf() *RenderPerf {
	return &RenderPerf{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of samples at 60fps
	}
}

// Record adds a duration sample for the named phase.
func (p *RenderPerf) Record(name string, d time.Duration) {
	p.samples[name] = append(p.samples[name], d)
	if len(p.samples[name]) > p.maxSamples {
		p.samples[name] = p.samples[name][1:]
	}
}

// Since records the time elapsed since start and returns now, so phases
// can be chained.
func (p *RenderPerf) Since(name string, start time.Time) time.Time {
	now := time.Now()
	p.Record(name, now.Sub(start))
	return now
}

// Avg returns the average duration for the named phase.
func (p *RenderPerf) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Averages returns the average of every phase.
func (p *RenderPerf) Averages() map[string]time.Duration {
	out := make(map[string]time.Duration, len(p.samples))
	for name := range p.samples {
		out[name] = p.Avg(name)
	}
	return out
}

// SortedNames returns phase names sorted by average duration (descending).
func (p *RenderPerf) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
