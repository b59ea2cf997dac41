package ambience

import (
	"math"
	"testing"

	"github.com/pthm-cable/raincity/config"
)

func testConfig() config.AmbienceConfig {
	return config.AmbienceConfig{SampleRate: 44100, MaxVolume: 0.6, Smoothing: 0.15}
}

// TestRainNoiseSilentByDefault verifies a new stream produces silence
func TestRainNoiseSilentByDefault(t *testing.T) {
	r := NewRainNoise(testConfig(), 1)

	samples := make([][2]float64, 512)
	n, ok := r.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("expected full ok stream, got n=%d ok=%v", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Fatalf("sample %d: expected silence, got %v", i, samples[i])
		}
	}
	if r.Err() != nil {
		t.Errorf("expected no error, got %v", r.Err())
	}
}

func TestRainNoiseSetLevelClamps(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"zero", 0, 0},
		{"half", 0.5, 0.3},
		{"full", 1, 0.6},
		{"above", 3, 0.6},
		{"negative", -1, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRainNoise(testConfig(), 1)
			r.SetLevel(tt.ratio)
			if got := r.Target(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected target %f, got %f", tt.want, got)
			}
		})
	}
}

// TestRainNoiseEasesTowardTarget verifies the gain approaches the target
// without overshooting
func TestRainNoiseEasesTowardTarget(t *testing.T) {
	r := NewRainNoise(testConfig(), 1)
	r.SetLevel(1)

	samples := make([][2]float64, 1)
	r.Stream(samples)
	first := r.Gain()
	if first <= 0 || first >= 0.6 {
		t.Errorf("expected first gain in (0, 0.6), got %f", first)
	}

	buf := make([][2]float64, 4096)
	r.Stream(buf)
	if math.Abs(r.Gain()-0.6) > 1e-6 {
		t.Errorf("expected gain to settle at 0.6, got %f", r.Gain())
	}
	for i := range buf {
		for c := 0; c < 2; c++ {
			if math.Abs(buf[i][c]) > 0.6 {
				t.Fatalf("sample %d channel %d out of range: %f", i, c, buf[i][c])
			}
		}
	}
}

func TestRainNoiseSameSeedSameSignal(t *testing.T) {
	a := NewRainNoise(testConfig(), 9)
	b := NewRainNoise(testConfig(), 9)
	a.SetLevel(0.8)
	b.SetLevel(0.8)

	sa := make([][2]float64, 256)
	sb := make([][2]float64, 256)
	a.Stream(sa)
	b.Stream(sb)

	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, sa[i], sb[i])
		}
	}
}

func TestNewRainNoiseFixesBadConfig(t *testing.T) {
	r := NewRainNoise(config.AmbienceConfig{}, 1)
	if r.SampleRate() != 44100 {
		t.Errorf("expected fallback sample rate 44100, got %d", r.SampleRate())
	}
	r.SetLevel(1)
	if r.Target() != 0 {
		t.Errorf("expected target 0 with zero max volume, got %f", r.Target())
	}
}
