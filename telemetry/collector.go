package telemetry

// EnvironmentSample is the environment state captured when a window closes.
type EnvironmentSample struct {
	Intensity        float64
	ActiveParticles  int
	FogDensity       float64
	RiverLevel       float64
	FloodLevel       float64
	LightsOn         bool
	Umbrellas        bool
	MeanVehicleSpeed float64
}

// Collector accumulates events within fixed windows of frames and produces
// WindowStats.
type Collector struct {
	windowFrames    int64
	windowStartTick int64

	intensityChanges int
	recycles         int
	vehicleWraps     int
	reflections      int
	frameDeltas      []float64 // Milliseconds
}

// NewCollector creates a collector that flushes every windowFrames ticks.
func NewCollector(windowFrames int64) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: windowFrames,
		frameDeltas:  make([]float64, 0, windowFrames),
	}
}

// RecordIntensityChange records a SetIntensity call.
func (c *Collector) RecordIntensityChange() {
	c.intensityChanges++
}

// RecordFrame records one frame's delta (seconds) and its event counts.
func (c *Collector) RecordFrame(delta float64, recycles, wraps, reflections int) {
	c.frameDeltas = append(c.frameDeltas, delta*1000)
	c.recycles += recycles
	c.vehicleWraps += wraps
	c.reflections += reflections
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, simTime float64, env EnvironmentSample) WindowStats {
	mean, p50, p95 := ComputeFrameStats(c.frameDeltas)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		Intensity:       env.Intensity,
		ActiveParticles: env.ActiveParticles,
		FogDensity:      env.FogDensity,
		RiverLevel:      env.RiverLevel,
		FloodLevel:      env.FloodLevel,
		LightsOn:        env.LightsOn,
		Umbrellas:       env.Umbrellas,

		IntensityChanges:      c.intensityChanges,
		Recycles:              c.recycles,
		VehicleWraps:          c.vehicleWraps,
		PedestrianReflections: c.reflections,

		MeanVehicleSpeed: env.MeanVehicleSpeed,

		FrameMeanMS: mean,
		FrameP50MS:  p50,
		FrameP95MS:  p95,
	}

	c.windowStartTick = currentTick
	c.intensityChanges = 0
	c.recycles = 0
	c.vehicleWraps = 0
	c.reflections = 0
	c.frameDeltas = c.frameDeltas[:0]

	return stats
}

// WindowFrames returns the number of ticks per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
