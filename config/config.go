// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig     `yaml:"screen"`
	Simulation  SimulationConfig `yaml:"simulation"`
	Rain        RainConfig       `yaml:"rain"`
	Curve       CurveConfig      `yaml:"curve"`
	Traffic     TrafficConfig    `yaml:"traffic"`
	Pedestrians PedestrianConfig `yaml:"pedestrians"`
	Camera      CameraConfig     `yaml:"camera"`
	Ambience    AmbienceConfig   `yaml:"ambience"`
	Telemetry   TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds host loop parameters.
type SimulationConfig struct {
	Seed             int64   `yaml:"seed"`              // 0 = time-based
	DT               float64 `yaml:"dt"`                // Fixed frame delta for headless runs
	InitialIntensity float64 `yaml:"initial_intensity"` // mm/hour applied at startup
}

// RainConfig holds the particle field parameters.
type RainConfig struct {
	Capacity int     `yaml:"capacity"`  // Number of drop slots allocated at startup
	HalfSpan float64 `yaml:"half_span"` // Drops spawn with x,z in [-half_span, half_span]
	Top      float64 `yaml:"top"`       // Spawn and recycle height
}

// CurveConfig is the policy table mapping intensity to derived state.
// Every threshold here is a tuning constant, not derived from anything else.
type CurveConfig struct {
	MaxIntensity float64 `yaml:"max_intensity"`

	SkyClear string  `yaml:"sky_clear"`
	SkyDark  string  `yaml:"sky_dark"`
	SkyCap   float64 `yaml:"sky_cap"`

	FogClear      float64 `yaml:"fog_clear"`
	FogMist       float64 `yaml:"fog_mist"`
	MistBelow     float64 `yaml:"mist_below"`
	FogBase       float64 `yaml:"fog_base"`
	FogSlopeLight float64 `yaml:"fog_slope_light"`
	FogSteepFrom  float64 `yaml:"fog_steep_from"`
	FogSlopeHeavy float64 `yaml:"fog_slope_heavy"`

	ParticleFullAt float64 `yaml:"particle_full_at"`
	OpacityMin     float64 `yaml:"opacity_min"`
	OpacityMax     float64 `yaml:"opacity_max"`
	OpacityGain    float64 `yaml:"opacity_gain"`
	SizeMin        float64 `yaml:"size_min"`
	SizeMax        float64 `yaml:"size_max"`
	SizeGain       float64 `yaml:"size_gain"`
	FallSpeedBase  float64 `yaml:"fall_speed_base"`
	FallSpeedGain  float64 `yaml:"fall_speed_gain"`

	RiverBase     float64 `yaml:"river_base"`
	RiverRiseFrom float64 `yaml:"river_rise_from"`
	RiverFullAt   float64 `yaml:"river_full_at"`
	RiverCap      float64 `yaml:"river_cap"`
	RiverOpacity  float64 `yaml:"river_opacity"`

	FloodFrom    float64 `yaml:"flood_from"`
	FloodOpacity float64 `yaml:"flood_opacity"`
	FloodBase    float64 `yaml:"flood_base"`
	FloodFullAt  float64 `yaml:"flood_full_at"`
	FloodCap     float64 `yaml:"flood_cap"`

	LightsAbove    float64 `yaml:"lights_above"`
	LightIntensity float64 `yaml:"light_intensity"`
	LightEmissive  float64 `yaml:"light_emissive"`

	UmbrellaAbove float64 `yaml:"umbrella_above"`
}

// TrafficConfig holds vehicle agent parameters.
type TrafficConfig struct {
	Count      int     `yaml:"count"`
	SpeedMin   float64 `yaml:"speed_min"`
	SpeedMax   float64 `yaml:"speed_max"`
	LaneOffset float64 `yaml:"lane_offset"` // Lateral distance from road centerline
	Limit      float64 `yaml:"limit"`       // Wraparound bound on the travel axis
	SpawnSpan  float64 `yaml:"spawn_span"`  // Initial longitudinal coordinate in [-span, span]
	Height     float64 `yaml:"height"`      // Body center height above ground
}

// PedestrianConfig holds pedestrian agent parameters.
type PedestrianConfig struct {
	Count          int     `yaml:"count"`
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedMax       float64 `yaml:"speed_max"`
	SidewalkOffset float64 `yaml:"sidewalk_offset"` // Lateral distance from road centerline
	RangeLimit     float64 `yaml:"range_limit"`     // Reflective bound on the travel axis
	SpawnSpan      float64 `yaml:"spawn_span"`
}

// CameraConfig holds orbit camera settings for the viewer.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Yaw         float64 `yaml:"yaw"`   // Degrees
	Pitch       float64 `yaml:"pitch"` // Degrees
	Damping     float64 `yaml:"damping"`
	Fovy        float64 `yaml:"fovy"`
}

// AmbienceConfig holds rain audio settings.
type AmbienceConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	MaxVolume  float64 `yaml:"max_volume"` // Gain at full particle ratio
	Smoothing  float64 `yaml:"smoothing"`  // One-pole low-pass coefficient in (0,1]
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulation per CSV row
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32 // Simulation.DT as float32
	ScreenW32    float32
	ScreenH32    float32
	WindowFrames int64 // Telemetry.StatsWindow / Simulation.DT
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first configuration error found.
// Construction-time checks live here so nothing fails once frames are running.
func (c *Config) Validate() error {
	switch {
	case c.Rain.Capacity <= 0:
		return fmt.Errorf("rain.capacity must be positive, got %d: %w", c.Rain.Capacity, ErrInvalid)
	case c.Rain.HalfSpan <= 0 || c.Rain.Top <= 0:
		return fmt.Errorf("rain spawn box must be non-empty: %w", ErrInvalid)
	case c.Traffic.Count <= 0:
		return fmt.Errorf("traffic.count must be positive, got %d: %w", c.Traffic.Count, ErrInvalid)
	case c.Traffic.Limit <= 0:
		return fmt.Errorf("traffic.limit must be positive: %w", ErrInvalid)
	case c.Traffic.SpeedMin <= 0 || c.Traffic.SpeedMin > c.Traffic.SpeedMax:
		return fmt.Errorf("traffic speed range [%g, %g] is invalid: %w", c.Traffic.SpeedMin, c.Traffic.SpeedMax, ErrInvalid)
	case c.Pedestrians.Count <= 0:
		return fmt.Errorf("pedestrians.count must be positive, got %d: %w", c.Pedestrians.Count, ErrInvalid)
	case c.Pedestrians.RangeLimit <= 0:
		return fmt.Errorf("pedestrians.range_limit must be positive: %w", ErrInvalid)
	case c.Pedestrians.SpeedMin <= 0 || c.Pedestrians.SpeedMin > c.Pedestrians.SpeedMax:
		return fmt.Errorf("pedestrian speed range [%g, %g] is invalid: %w", c.Pedestrians.SpeedMin, c.Pedestrians.SpeedMax, ErrInvalid)
	case c.Simulation.DT <= 0:
		return fmt.Errorf("simulation.dt must be positive: %w", ErrInvalid)
	case c.Telemetry.StatsWindow <= 0:
		return fmt.Errorf("telemetry.stats_window must be positive: %w", ErrInvalid)
	}
	return c.Curve.Validate()
}

// Validate checks that the policy table describes ordered, non-empty segments.
func (c *CurveConfig) Validate() error {
	switch {
	case c.MaxIntensity <= 0:
		return fmt.Errorf("curve.max_intensity must be positive: %w", ErrInvalid)
	case c.SkyCap < 0 || c.SkyCap > 1:
		return fmt.Errorf("curve.sky_cap must be in [0,1]: %w", ErrInvalid)
	case c.ParticleFullAt <= 0:
		return fmt.Errorf("curve.particle_full_at must be positive: %w", ErrInvalid)
	case c.OpacityMin > c.OpacityMax || c.SizeMin > c.SizeMax:
		return fmt.Errorf("curve particle clamps are inverted: %w", ErrInvalid)
	case c.RiverRiseFrom <= 0 || c.RiverFullAt <= c.RiverRiseFrom:
		return fmt.Errorf("curve river segment [%g, %g] is empty: %w", c.RiverRiseFrom, c.RiverFullAt, ErrInvalid)
	case c.RiverCap < c.RiverBase:
		return fmt.Errorf("curve.river_cap below river_base: %w", ErrInvalid)
	case c.FloodFullAt <= c.FloodFrom:
		return fmt.Errorf("curve flood segment [%g, %g] is empty: %w", c.FloodFrom, c.FloodFullAt, ErrInvalid)
	case c.FloodCap < c.FloodBase:
		return fmt.Errorf("curve.flood_cap below flood_base: %w", ErrInvalid)
	case c.MistBelow > c.FogSteepFrom:
		return fmt.Errorf("curve.mist_below above fog_steep_from: %w", ErrInvalid)
	case c.FogSlopeLight < 0 || c.FogSlopeHeavy < c.FogSlopeLight:
		return fmt.Errorf("curve fog slopes [%g, %g] must be non-negative and ordered: %w", c.FogSlopeLight, c.FogSlopeHeavy, ErrInvalid)
	}
	return nil
}

// Refresh re-validates the config and recomputes derived values after
// fields were changed in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	frames := int64(c.Telemetry.StatsWindow / c.Simulation.DT)
	if frames < 1 {
		frames = 1
	}
	c.Derived.WindowFrames = frames
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
