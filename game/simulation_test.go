package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/raincity/config"
	"github.com/pthm-cable/raincity/systems"
	"github.com/pthm-cable/raincity/telemetry"
)

func newTestSimulation(t *testing.T, cfg *config.Config, opts Options) *Simulation {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	sim, err := NewSimulation(cfg, opts)
	if err != nil {
		t.Fatalf("creating simulation: %v", err)
	}
	t.Cleanup(func() { sim.Close() })
	return sim
}

func TestNewSimulationRejectsNilConfig(t *testing.T) {
	if _, err := NewSimulation(nil, Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewSimulationStartsClear(t *testing.T) {
	sim := newTestSimulation(t, nil, Options{})

	if sim.Intensity() != 0 {
		t.Errorf("expected intensity 0, got %f", sim.Intensity())
	}
	if got := sim.Particles().ActiveCount(); got != 0 {
		t.Errorf("expected 0 active particles, got %d", got)
	}
	if got := len(sim.Vehicles()); got != 5 {
		t.Errorf("expected 5 vehicles, got %d", got)
	}
	peds := sim.Pedestrians()
	if len(peds) != 10 {
		t.Fatalf("expected 10 pedestrians, got %d", len(peds))
	}
	for i, p := range peds {
		if p.UmbrellaVisible {
			t.Errorf("pedestrian %d: expected umbrella hidden at intensity 0", i)
		}
	}
	if sim.Seed() != 42 {
		t.Errorf("expected seed 42, got %d", sim.Seed())
	}
	if sim.Tick() != 0 {
		t.Errorf("expected tick 0, got %d", sim.Tick())
	}
}

func TestNewSimulationAppliesInitialIntensity(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.InitialIntensity = 40

	var windows []telemetry.WindowStats
	cfg.Derived.WindowFrames = 1
	sim := newTestSimulation(t, cfg, Options{
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	if sim.Intensity() != 40 {
		t.Errorf("expected intensity 40, got %f", sim.Intensity())
	}
	if got := sim.Particles().ActiveCount(); got != 75000 {
		t.Errorf("expected 75000 active particles, got %d", got)
	}

	sim.Update(1.0 / 60)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0].IntensityChanges != 0 {
		t.Errorf("expected startup intensity not counted as a change, got %d", windows[0].IntensityChanges)
	}
}

func TestSetIntensityScenarios(t *testing.T) {
	tests := []struct {
		name         string
		intensity    float64
		wantActive   int
		wantLights   bool
		wantUmbrella bool
		wantRiver    float32
		wantFloodA   float32
	}{
		{"clear", 0, 0, false, false, -3.5, 0},
		{"light", 2, 3750, false, true, -3.5, 0},
		{"moderate", 40, 75000, false, true, -2.3333333, 0},
		{"heavy", 50, 93750, true, true, -1.75, 0},
		{"extreme", 100, 150000, true, true, 0, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulation(t, nil, Options{})

			var river, flood systems.WaterState
			lamps := []*systems.LampState{{}, {}, {}}
			sim.SetWaterSurfaces(&river, &flood)
			sim.SetStreetLights([]systems.StreetLight{lamps[0], lamps[1], lamps[2]})

			sim.SetIntensity(tt.intensity)

			if got := sim.Particles().ActiveCount(); got != tt.wantActive {
				t.Errorf("expected %d active particles, got %d", tt.wantActive, got)
			}
			if math.Abs(float64(river.VerticalOffset-tt.wantRiver)) > 1e-4 {
				t.Errorf("expected river level %f, got %f", tt.wantRiver, river.VerticalOffset)
			}
			if flood.Opacity != tt.wantFloodA {
				t.Errorf("expected flood opacity %f, got %f", tt.wantFloodA, flood.Opacity)
			}
			for i, l := range lamps {
				if l.On != tt.wantLights {
					t.Errorf("lamp %d: expected lit=%v, got %v", i, tt.wantLights, l.On)
				}
			}
			for i, p := range sim.Pedestrians() {
				if p.UmbrellaVisible != tt.wantUmbrella {
					t.Errorf("pedestrian %d: expected umbrella=%v, got %v", i, tt.wantUmbrella, p.UmbrellaVisible)
				}
			}
		})
	}
}

func TestSetIntensityIsIdempotent(t *testing.T) {
	sim := newTestSimulation(t, nil, Options{})

	sim.SetIntensity(65)
	first := sim.State()
	firstActive := sim.Particles().ActiveCount()

	sim.SetIntensity(65)
	second := sim.State()

	if first != second {
		t.Errorf("expected identical state, got %+v then %+v", first, second)
	}
	if got := sim.Particles().ActiveCount(); got != firstActive {
		t.Errorf("expected %d active particles, got %d", firstActive, got)
	}
}

func TestSetIntensitySanitizes(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -5, 0},
		{"nan", math.NaN(), 0},
		{"above max", 5000, 999},
		{"in range", 12.5, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulation(t, nil, Options{})
			sim.SetIntensity(tt.in)
			if got := sim.Intensity(); got != tt.want {
				t.Errorf("expected intensity %f, got %f", tt.want, got)
			}
			if got := sim.Derived().Intensity; got != tt.want {
				t.Errorf("expected derived intensity %f, got %f", tt.want, got)
			}
		})
	}
}

func TestHandlesAttachedLateReceiveCurrentState(t *testing.T) {
	sim := newTestSimulation(t, nil, Options{})
	sim.SetIntensity(100)

	var river, flood systems.WaterState
	lamp := &systems.LampState{}
	sim.SetWaterSurfaces(&river, &flood)
	sim.SetStreetLights([]systems.StreetLight{lamp})

	if river.VerticalOffset != 0 || river.Opacity != 0.8 {
		t.Errorf("expected river at 0 with opacity 0.8, got %f / %f", river.VerticalOffset, river.Opacity)
	}
	if flood.Opacity != 0.8 {
		t.Errorf("expected flood opacity 0.8, got %f", flood.Opacity)
	}
	if !lamp.On || lamp.PointIntensity != 1.5 {
		t.Errorf("expected lamp lit at 1.5, got on=%v intensity=%f", lamp.On, lamp.PointIntensity)
	}
}

func TestUpdateAdvancesAgents(t *testing.T) {
	sim := newTestSimulation(t, nil, Options{})

	before := append([]systems.AgentTransform(nil), sim.Vehicles()...)
	sim.Update(0.1)
	after := sim.Vehicles()

	moved := 0
	for i := range before {
		if before[i].Position != after[i].Position {
			moved++
		}
	}
	if moved != len(before) {
		t.Errorf("expected all %d vehicles to move, %d moved", len(before), moved)
	}
	if sim.Tick() != 1 {
		t.Errorf("expected tick 1, got %d", sim.Tick())
	}
	if math.Abs(sim.SimTime()-0.1) > 1e-12 {
		t.Errorf("expected sim time 0.1, got %f", sim.SimTime())
	}
}

func TestUpdateBadDeltaIsZero(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"nan", math.NaN()},
		{"negative", -1},
		{"inf", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulation(t, nil, Options{})
			sim.SetIntensity(80)

			vehicles := append([]systems.AgentTransform(nil), sim.Vehicles()...)
			peds := append([]systems.AgentTransform(nil), sim.Pedestrians()...)
			drops := append([]float32(nil), sim.Particles().ActivePositions()...)

			sim.Update(tt.delta)

			if sim.Tick() != 1 {
				t.Errorf("expected tick 1, got %d", sim.Tick())
			}
			if sim.SimTime() != 0 {
				t.Errorf("expected sim time 0, got %f", sim.SimTime())
			}
			for i, v := range sim.Vehicles() {
				if v.Position != vehicles[i].Position {
					t.Errorf("vehicle %d moved on zero delta", i)
				}
			}
			for i, p := range sim.Pedestrians() {
				if p.Position != peds[i].Position {
					t.Errorf("pedestrian %d moved on zero delta", i)
				}
			}
			got := sim.Particles().ActivePositions()
			for i := range drops {
				if got[i] != drops[i] {
					t.Fatalf("drop coordinate %d changed on zero delta", i)
				}
			}
		})
	}
}

func TestIntensityChangeDoesNotDisturbAgents(t *testing.T) {
	sim := newTestSimulation(t, nil, Options{})
	sim.Update(0.5)

	vehicles := append([]systems.AgentTransform(nil), sim.Vehicles()...)
	sim.SetIntensity(120)
	sim.SetIntensity(3)

	for i, v := range sim.Vehicles() {
		if v.Position != vehicles[i].Position || v.Yaw != vehicles[i].Yaw {
			t.Errorf("vehicle %d changed on intensity change", i)
		}
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := newTestSimulation(t, nil, Options{Seed: 7})
	b := newTestSimulation(t, nil, Options{Seed: 7})

	for i := 0; i < 120; i++ {
		a.Update(1.0 / 60)
		b.Update(1.0 / 60)
	}

	va, vb := a.Vehicles(), b.Vehicles()
	for i := range va {
		if va[i] != vb[i] {
			t.Errorf("vehicle %d differs between runs: %+v vs %+v", i, va[i], vb[i])
		}
	}
}

func TestTelemetryWindowsAndCSV(t *testing.T) {
	cfg := config.Default()
	cfg.Derived.WindowFrames = 10
	dir := filepath.Join(t.TempDir(), "out")

	var windows []telemetry.WindowStats
	sim := newTestSimulation(t, cfg, Options{
		OutputDir:     dir,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if sim.Session() == "" {
		t.Error("expected a session id with output enabled")
	}

	sim.SetIntensity(50)
	for i := 0; i < 25; i++ {
		sim.Update(1.0 / 60)
	}

	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[0].IntensityChanges != 1 {
		t.Errorf("expected 1 intensity change in first window, got %d", windows[0].IntensityChanges)
	}
	if windows[1].IntensityChanges != 0 {
		t.Errorf("expected 0 intensity changes in second window, got %d", windows[1].IntensityChanges)
	}
	if windows[0].WindowEndTick != 10 || windows[1].WindowEndTick != 20 {
		t.Errorf("expected window ends 10 and 20, got %d and %d", windows[0].WindowEndTick, windows[1].WindowEndTick)
	}
	if windows[0].ActiveParticles != 93750 {
		t.Errorf("expected 93750 active particles, got %d", windows[0].ActiveParticles)
	}

	if err := sim.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header and 2 rows, got %d lines", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}
