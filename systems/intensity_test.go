package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/raincity/config"
)

func newTestCurve(t *testing.T) *IntensityCurve {
	t.Helper()
	c, err := NewIntensityCurve(config.Default().Curve)
	if err != nil {
		t.Fatalf("building curve: %v", err)
	}
	return c
}

func TestApplyZeroIsClearBaseline(t *testing.T) {
	c := newTestCurve(t)
	d := c.Apply(0)

	clearSky, _ := colorful.Hex("#87ceeb")
	if d.SkyColor != clearSky {
		t.Errorf("expected clear sky %s, got %s", clearSky.Hex(), d.SkyColor.Hex())
	}
	if d.FogDensity != 0.002 {
		t.Errorf("expected fog 0.002, got %f", d.FogDensity)
	}
	if d.ParticlesVisible {
		t.Error("expected particles hidden at intensity 0")
	}
	if d.ParticleActiveRatio != 0 {
		t.Errorf("expected active ratio 0, got %f", d.ParticleActiveRatio)
	}
	if d.ParticleOpacity != 0.3 || d.ParticleSize != 0.1 {
		t.Errorf("expected opacity 0.3 size 0.1, got %f %f", d.ParticleOpacity, d.ParticleSize)
	}
	if d.FallSpeed != 20 {
		t.Errorf("expected fall speed 20, got %f", d.FallSpeed)
	}
	if d.RiverLevel != -3.5 {
		t.Errorf("expected river baseline -3.5, got %f", d.RiverLevel)
	}
	if d.FloodOpacity != 0 || d.FloodLevel != 0.05 {
		t.Errorf("expected dry flood plane (0, 0.05), got (%f, %f)", d.FloodOpacity, d.FloodLevel)
	}
	if d.LightsOn || d.LightIntensity != 0 || d.LightEmissive != 0 {
		t.Error("expected lights off at intensity 0")
	}
	if d.UmbrellasVisible {
		t.Error("expected umbrellas hidden at intensity 0")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	c := newTestCurve(t)
	for _, v := range []float64{0, 0.1, 0.2, 12, 15, 40, 50, 70.5, 80, 150} {
		a := c.Apply(v)
		b := c.Apply(v)
		if a != b {
			t.Errorf("Apply(%f) not idempotent: %+v vs %+v", v, a, b)
		}
	}
}

func TestActiveRatioBoundedAndMonotonic(t *testing.T) {
	c := newTestCurve(t)
	prev := -1.0
	for v := 0.0; v <= 300; v += 0.25 {
		r := c.Apply(v).ParticleActiveRatio
		if r < 0 || r > 1 {
			t.Fatalf("active ratio %f out of [0,1] at %f", r, v)
		}
		if r < prev {
			t.Fatalf("active ratio decreased at %f: %f < %f", v, r, prev)
		}
		prev = r
	}
}

func TestFogMonotonicAboveMist(t *testing.T) {
	c := newTestCurve(t)
	prev := 0.0
	for v := 0.2; v <= 200; v += 0.1 {
		f := c.FogDensity(v)
		if f < prev {
			t.Fatalf("fog decreased at %f: %f < %f", v, f, prev)
		}
		prev = f
	}
}

func TestFogBands(t *testing.T) {
	c := newTestCurve(t)
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"clear", 0, 0.002},
		{"mist", 0.1, 0.02},
		{"light band start", 0.2, 0.005 + 0.2/100*0.01},
		{"light band", 10, 0.005 + 10.0/100*0.01},
		{"steep band start", 15, 0.005 + 15.0/100*0.02},
		{"steep band", 60, 0.005 + 60.0/100*0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.FogDensity(tt.v)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected fog %f, got %f", tt.want, got)
			}
		})
	}
}

func TestRiverLevel(t *testing.T) {
	c := newTestCurve(t)
	tests := []struct {
		v    float64
		want float64
	}{
		{0, -3.5},
		{19.9, -3.5},
		{20, -3.5},
		{50, -3.5 + (50.0-20)/60*3.5},
		{80, 0},
		{200, 0},
	}
	for _, tt := range tests {
		got := c.Apply(tt.v).RiverLevel
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("river at %f: expected %f, got %f", tt.v, tt.want, got)
		}
	}

	// Never above the bank
	for v := 0.0; v <= 999; v += 1 {
		if lvl := c.Apply(v).RiverLevel; lvl > 0 {
			t.Fatalf("river overflowed bank at %f: %f", v, lvl)
		}
	}
}

func TestFloodLevel(t *testing.T) {
	c := newTestCurve(t)
	tests := []struct {
		v           float64
		wantOpacity float64
		wantLevel   float64
	}{
		{50, 0, 0.05},
		{70, 0, 0.05},
		{95, 0.8, 0.05 + 25.0/50*0.5},
		{120, 0.8, 0.55},
		{500, 0.8, 0.55},
	}
	for _, tt := range tests {
		d := c.Apply(tt.v)
		if d.FloodOpacity != tt.wantOpacity {
			t.Errorf("flood opacity at %f: expected %f, got %f", tt.v, tt.wantOpacity, d.FloodOpacity)
		}
		if math.Abs(d.FloodLevel-tt.wantLevel) > 1e-9 {
			t.Errorf("flood level at %f: expected %f, got %f", tt.v, tt.wantLevel, d.FloodLevel)
		}
	}
}

func TestParticleMaterialClamps(t *testing.T) {
	c := newTestCurve(t)
	d := c.Apply(999)
	if d.ParticleOpacity != 0.8 {
		t.Errorf("expected opacity clamped to 0.8, got %f", d.ParticleOpacity)
	}
	if d.ParticleSize != 0.3 {
		t.Errorf("expected size clamped to 0.3, got %f", d.ParticleSize)
	}

	d = c.Apply(50)
	if math.Abs(d.ParticleOpacity-(0.3+0.5*0.35)) > 1e-12 {
		t.Errorf("expected opacity 0.475, got %f", d.ParticleOpacity)
	}
	if math.Abs(d.FallSpeed-35) > 1e-12 {
		t.Errorf("expected fall speed 35, got %f", d.FallSpeed)
	}
}

func TestSkyColorCapped(t *testing.T) {
	c := newTestCurve(t)
	capped := c.Apply(70).SkyColor
	if c.Apply(150).SkyColor != capped {
		t.Error("expected sky blend to stop at the cap")
	}
	if c.Apply(30).SkyColor == capped {
		t.Error("expected sky below the cap to differ")
	}
}

func TestScenarioModerateRain(t *testing.T) {
	c := newTestCurve(t)
	d := c.Apply(50)

	if !d.ParticlesVisible {
		t.Error("expected particles visible")
	}
	if d.ParticleActiveRatio != 0.625 {
		t.Errorf("expected active ratio 0.625, got %f", d.ParticleActiveRatio)
	}
	if !d.LightsOn {
		t.Error("expected lights on at 50")
	}
	if !d.UmbrellasVisible {
		t.Error("expected umbrellas at 50")
	}
}

func TestLightsThreshold(t *testing.T) {
	c := newTestCurve(t)
	if c.Apply(40).LightsOn {
		t.Error("expected lights off at exactly 40")
	}
	d := c.Apply(40.01)
	if !d.LightsOn || d.LightIntensity != 1.5 || d.LightEmissive != 0.8 {
		t.Errorf("expected lights on (1.5, 0.8), got %+v", d)
	}
}

func TestSanitizeClampsInput(t *testing.T) {
	c := newTestCurve(t)
	zero := c.Apply(0)

	if c.Apply(-5) != zero {
		t.Error("expected negative intensity to clamp to 0")
	}
	if c.Apply(math.NaN()) != zero {
		t.Error("expected NaN intensity to clamp to 0")
	}
	if got := c.Apply(math.Inf(1)).Intensity; got != 999 {
		t.Errorf("expected +Inf to clamp to 999, got %f", got)
	}
}

func TestNewIntensityCurveRejectsBadColor(t *testing.T) {
	cfg := config.Default().Curve
	cfg.SkyDark = "not-a-color"
	if _, err := NewIntensityCurve(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
