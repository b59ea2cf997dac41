// Package game owns the simulation state and drives the core systems.
package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/raincity/config"
	"github.com/pthm-cable/raincity/systems"
	"github.com/pthm-cable/raincity/telemetry"
)

// State is the session's simulation state.
type State struct {
	Intensity float64              // Sanitized mm/hour, changed only by SetIntensity
	Derived   systems.DerivedState // Recomputed in full on every SetIntensity
	Tick      int64                // Frames simulated
	SimTime   float64              // Seconds simulated
}

// Simulation is the controller the host loop talks to. All methods must be
// called from one goroutine.
type Simulation struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world       *ecs.World
	curve       *systems.IntensityCurve
	particles   *systems.ParticleField
	traffic     *systems.TrafficSystem
	pedestrians *systems.PedestrianSystem

	// Scene handles, any may be nil
	river  systems.WaterSurface
	flood  systems.WaterSurface
	lights []systems.StreetLight

	state State

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Reused per-frame transform buffers
	vehicleBuf    []systems.AgentTransform
	pedestrianBuf []systems.AgentTransform
}

// NewSimulation builds the world, spawns agents and applies the configured
// initial intensity.
func NewSimulation(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	curve, err := systems.NewIntensityCurve(cfg.Curve)
	if err != nil {
		return nil, fmt.Errorf("building intensity curve: %w", err)
	}
	particles, err := systems.NewParticleField(cfg.Rain, rng)
	if err != nil {
		return nil, fmt.Errorf("building particle field: %w", err)
	}

	world := ecs.NewWorld()
	traffic, err := systems.NewTrafficSystem(world, cfg.Traffic)
	if err != nil {
		return nil, fmt.Errorf("building traffic: %w", err)
	}
	pedestrians, err := systems.NewPedestrianSystem(world, cfg.Pedestrians)
	if err != nil {
		return nil, fmt.Errorf("building pedestrians: %w", err)
	}
	traffic.Spawn(rng)
	pedestrians.Spawn(rng)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	s := &Simulation{
		cfg:           cfg,
		rng:           rng,
		seed:          seed,
		world:         world,
		curve:         curve,
		particles:     particles,
		traffic:       traffic,
		pedestrians:   pedestrians,
		collector:     telemetry.NewCollector(cfg.Derived.WindowFrames),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		vehicleBuf:    make([]systems.AgentTransform, 0, traffic.Count()),
		pedestrianBuf: make([]systems.AgentTransform, 0, pedestrians.Count()),
	}

	s.applyIntensity(cfg.Simulation.InitialIntensity)

	return s, nil
}

// SetWaterSurfaces attaches the river and flood handles and pushes the
// current levels into them.
func (s *Simulation) SetWaterSurfaces(river, flood systems.WaterSurface) {
	s.river = river
	s.flood = flood
	systems.ApplyEnvironment(s.state.Derived, s.river, s.flood, nil)
}

// SetStreetLights attaches lamp handles and pushes the current light state.
func (s *Simulation) SetStreetLights(lights []systems.StreetLight) {
	s.lights = lights
	systems.ApplyEnvironment(s.state.Derived, nil, nil, s.lights)
}

// SetIntensity changes the rainfall intensity. Out-of-range input is clamped.
// Calling it twice with the same value leaves the same state.
func (s *Simulation) SetIntensity(v float64) {
	s.collector.RecordIntensityChange()
	s.applyIntensity(v)
}

func (s *Simulation) applyIntensity(v float64) {
	d := s.curve.Apply(v)

	s.state.Intensity = d.Intensity
	s.state.Derived = d

	s.particles.SetActiveRatio(d.ParticleActiveRatio)
	s.pedestrians.SetUmbrellaVisibility(d.UmbrellasVisible)
	systems.ApplyEnvironment(d, s.river, s.flood, s.lights)
}

// Update advances the simulation by delta seconds. Negative or non-finite
// deltas count as 0.
func (s *Simulation) Update(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta < 0 {
		delta = 0
	}

	pc := s.perfCollector
	pc.StartTick()

	pc.StartPhase(telemetry.PhaseRain)
	recycled := s.particles.Update(delta, s.state.Derived.FallSpeed)

	pc.StartPhase(telemetry.PhaseTraffic)
	wraps := s.traffic.Update(delta)

	pc.StartPhase(telemetry.PhasePedestrians)
	reflections := s.pedestrians.Update(delta)

	pc.StartPhase(telemetry.PhaseTelemetry)
	s.state.Tick++
	s.state.SimTime += delta
	s.collector.RecordFrame(delta, recycled, wraps, reflections)
	s.flushTelemetry()

	pc.EndTick()
}

// RecordFrame records wall-clock frame timing from the viewer.
func (s *Simulation) RecordFrame() {
	s.perfCollector.RecordFrame()
}

// State returns a copy of the simulation state.
func (s *Simulation) State() State {
	return s.state
}

// Derived returns the environment for the current intensity.
func (s *Simulation) Derived() systems.DerivedState {
	return s.state.Derived
}

// Intensity returns the current sanitized intensity.
func (s *Simulation) Intensity() float64 {
	return s.state.Intensity
}

// Curve returns the intensity curve in use.
func (s *Simulation) Curve() *systems.IntensityCurve {
	return s.curve
}

// Particles returns the rain buffer. Read it only between Update calls.
func (s *Simulation) Particles() *systems.ParticleField {
	return s.particles
}

// Vehicles returns vehicle transforms in spawn order. The slice is reused by
// the next call.
func (s *Simulation) Vehicles() []systems.AgentTransform {
	s.vehicleBuf = s.traffic.AppendTransforms(s.vehicleBuf[:0])
	return s.vehicleBuf
}

// Pedestrians returns pedestrian transforms in spawn order. The slice is
// reused by the next call.
func (s *Simulation) Pedestrians() []systems.AgentTransform {
	s.pedestrianBuf = s.pedestrians.AppendTransforms(s.pedestrianBuf[:0])
	return s.pedestrianBuf
}

// MeanVehicleSpeed returns the mean absolute vehicle speed.
func (s *Simulation) MeanVehicleSpeed() float64 {
	return s.traffic.MeanSpeed()
}

// Tick returns the number of frames simulated.
func (s *Simulation) Tick() int64 {
	return s.state.Tick
}

// SimTime returns the simulated time in seconds.
func (s *Simulation) SimTime() float64 {
	return s.state.SimTime
}

// Seed returns the RNG seed the run was started with.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// PerfStats returns timing statistics over the recent window.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perfCollector.Stats()
}

// Session returns the telemetry session id, or "" when output is disabled.
func (s *Simulation) Session() string {
	return s.outputManager.Session()
}

// Close flushes and closes telemetry output.
func (s *Simulation) Close() error {
	return s.outputManager.Close()
}
