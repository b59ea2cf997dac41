package systems

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/interp"

	"github.com/pthm-cable/raincity/config"
)

// DerivedState is everything the environment shows for one intensity value.
// It is recomputed in full on every intensity change.
type DerivedState struct {
	Intensity float64 // Sanitized input, mm/hour

	SkyColor   colorful.Color // Background and fog color
	FogDensity float64        // Exponential fog density

	ParticlesVisible    bool
	ParticleActiveRatio float64 // Fraction of the rain buffer in use, [0,1]
	ParticleOpacity     float64
	ParticleSize        float64
	FallSpeed           float64 // World units per second

	RiverLevel   float64 // Vertical offset of the river surface
	RiverOpacity float64
	FloodLevel   float64 // Vertical offset of the flood plane
	FloodOpacity float64

	LightsOn       bool
	LightIntensity float64 // Point light strength
	LightEmissive  float64 // Lamp head emissive strength

	UmbrellasVisible bool
}

// IntensityCurve maps rainfall intensity to DerivedState.
// Apply is pure: the curve holds only the fitted policy table.
type IntensityCurve struct {
	cfg      config.CurveConfig
	skyClear colorful.Color
	skyDark  colorful.Color
	river    interp.PiecewiseLinear
	flood    interp.PiecewiseLinear
}

// NewIntensityCurve builds a curve from the policy table.
func NewIntensityCurve(cfg config.CurveConfig) (*IntensityCurve, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	skyClear, err := colorful.Hex(cfg.SkyClear)
	if err != nil {
		return nil, fmt.Errorf("parsing sky_clear %q: %v: %w", cfg.SkyClear, err, config.ErrInvalid)
	}
	dark, err := colorful.Hex(cfg.SkyDark)
	if err != nil {
		return nil, fmt.Errorf("parsing sky_dark %q: %v: %w", cfg.SkyDark, err, config.ErrInvalid)
	}

	c := &IntensityCurve{cfg: cfg, skyClear: skyClear, skyDark: dark}

	// Held flat outside the fitted range, which gives the low baseline
	// below the rise and the bank-overflow cap above saturation.
	if err := c.river.Fit(
		[]float64{cfg.RiverRiseFrom, cfg.RiverFullAt},
		[]float64{cfg.RiverBase, cfg.RiverCap},
	); err != nil {
		return nil, fmt.Errorf("fitting river curve: %w", err)
	}
	if err := c.flood.Fit(
		[]float64{cfg.FloodFrom, cfg.FloodFullAt},
		[]float64{cfg.FloodBase, cfg.FloodCap},
	); err != nil {
		return nil, fmt.Errorf("fitting flood curve: %w", err)
	}

	return c, nil
}

// Config returns the policy table the curve was built from.
func (c *IntensityCurve) Config() config.CurveConfig {
	return c.cfg
}

// Sanitize clamps an intensity to [0, max_intensity]. NaN becomes 0.
func (c *IntensityCurve) Sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > c.cfg.MaxIntensity {
		return c.cfg.MaxIntensity
	}
	return v
}

// Apply computes the derived environment for intensity v.
func (c *IntensityCurve) Apply(v float64) DerivedState {
	v = c.Sanitize(v)
	cfg := &c.cfg

	d := DerivedState{
		Intensity:           v,
		SkyColor:            c.SkyColor(v),
		FogDensity:          c.FogDensity(v),
		ParticlesVisible:    v > 0,
		ParticleActiveRatio: math.Min(v/cfg.ParticleFullAt, 1),
		ParticleOpacity:     clampFloat64(cfg.OpacityMin+v/100*cfg.OpacityGain, cfg.OpacityMin, cfg.OpacityMax),
		ParticleSize:        clampFloat64(cfg.SizeMin+v/100*cfg.SizeGain, cfg.SizeMin, cfg.SizeMax),
		FallSpeed:           cfg.FallSpeedBase + v/100*cfg.FallSpeedGain,
		RiverLevel:          c.river.Predict(v),
		RiverOpacity:        cfg.RiverOpacity,
		FloodLevel:          cfg.FloodBase,
		LightsOn:            v > cfg.LightsAbove,
		UmbrellasVisible:    v > cfg.UmbrellaAbove,
	}

	if v > cfg.FloodFrom {
		d.FloodOpacity = cfg.FloodOpacity
		d.FloodLevel = c.flood.Predict(v)
	}

	if d.LightsOn {
		d.LightIntensity = cfg.LightIntensity
		d.LightEmissive = cfg.LightEmissive
	}

	return d
}

// SkyColor blends the clear sky toward the storm color, capped at sky_cap.
func (c *IntensityCurve) SkyColor(v float64) colorful.Color {
	if v <= 0 {
		return c.skyClear
	}
	t := math.Min(v/100, c.cfg.SkyCap)
	return c.skyClear.BlendRgb(c.skyDark, t)
}

// FogDensity is flat in the mist band, then rises linearly with a steeper
// slope from fog_steep_from on.
func (c *IntensityCurve) FogDensity(v float64) float64 {
	cfg := &c.cfg
	switch {
	case v <= 0:
		return cfg.FogClear
	case v < cfg.MistBelow:
		return cfg.FogMist
	case v < cfg.FogSteepFrom:
		return cfg.FogBase + v/100*cfg.FogSlopeLight
	default:
		return cfg.FogBase + v/100*cfg.FogSlopeHeavy
	}
}
