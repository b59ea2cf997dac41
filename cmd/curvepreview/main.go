// Intensity curve preview tool - plots the policy table with sliders, or
// dumps it as CSV.
//
// Usage: go run ./cmd/curvepreview [-config path] [-csv]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/raincity/config"
	"github.com/pthm-cable/raincity/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	plotWidth    = 700
	plotHeight   = 600
	plotX        = 10
	plotY        = 10
	panelX       = plotWidth + 30
	panelWidth   = windowWidth - panelX - 20

	maxPreview = 150
	samples    = 301
)

// CurveRow is one sampled point of the policy table.
type CurveRow struct {
	Intensity    float64 `csv:"intensity"`
	Band         string  `csv:"band"`
	Sky          string  `csv:"sky"`
	Fog          float64 `csv:"fog"`
	ActiveRatio  float64 `csv:"active_ratio"`
	Opacity      float64 `csv:"opacity"`
	Size         float64 `csv:"size"`
	FallSpeed    float64 `csv:"fall_speed"`
	River        float64 `csv:"river"`
	Flood        float64 `csv:"flood"`
	FloodOpacity float64 `csv:"flood_opacity"`
	LightsOn     bool    `csv:"lights_on"`
	Umbrellas    bool    `csv:"umbrellas"`
}

// series is one plotted curve, normalized to [0,1] for display.
type series struct {
	name  string
	color rl.Color
	get   func(systems.DerivedState) float64
	lo    float64
	hi    float64
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	csvOut := flag.Bool("csv", false, "Write the sampled curve as CSV to stdout and exit")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *csvOut {
		rows, err := sample(cfg.Curve)
		if err != nil {
			slog.Error("failed to sample curve", "error", err)
			os.Exit(1)
		}
		if err := gocsv.Marshal(rows, os.Stdout); err != nil {
			slog.Error("failed to write csv", "error", err)
			os.Exit(1)
		}
		return
	}

	preview(cfg.Curve)
}

// sample evaluates the curve at evenly spaced intensities.
func sample(cc config.CurveConfig) ([]CurveRow, error) {
	curve, err := systems.NewIntensityCurve(cc)
	if err != nil {
		return nil, err
	}

	xs := floats.Span(make([]float64, samples), 0, maxPreview)
	rows := make([]CurveRow, len(xs))
	for i, v := range xs {
		d := curve.Apply(v)
		rows[i] = CurveRow{
			Intensity:    v,
			Band:         systems.BandFor(v).Name(),
			Sky:          d.SkyColor.Hex(),
			Fog:          d.FogDensity,
			ActiveRatio:  d.ParticleActiveRatio,
			Opacity:      d.ParticleOpacity,
			Size:         d.ParticleSize,
			FallSpeed:    d.FallSpeed,
			River:        d.RiverLevel,
			Flood:        d.FloodLevel,
			FloodOpacity: d.FloodOpacity,
			LightsOn:     d.LightsOn,
			Umbrellas:    d.UmbrellasVisible,
		}
	}
	return rows, nil
}

// nonDecreasing reports whether ys never drops between neighbours.
func nonDecreasing(ys []float64) bool {
	if len(ys) < 2 {
		return true
	}
	diffs := make([]float64, len(ys)-1)
	floats.SubTo(diffs, ys[1:], ys[:len(ys)-1])
	return floats.Min(diffs) >= -1e-12
}

func preview(defaults config.CurveConfig) {
	rl.InitWindow(windowWidth, windowHeight, "Intensity Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cc := defaults
	plot := []series{
		{"active ratio", rl.Blue, func(d systems.DerivedState) float64 { return d.ParticleActiveRatio }, 0, 1},
		{"fog", rl.Gray, func(d systems.DerivedState) float64 { return d.FogDensity }, 0, 0.05},
		{"opacity", rl.SkyBlue, func(d systems.DerivedState) float64 { return d.ParticleOpacity }, 0, 1},
		{"river", rl.DarkBlue, func(d systems.DerivedState) float64 { return d.RiverLevel }, -4, 1},
		{"flood", rl.Maroon, func(d systems.DerivedState) float64 { return d.FloodLevel }, 0, 1},
	}

	var rows []CurveRow
	var curveErr error
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			rows, curveErr = sample(cc)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawRectangleLines(plotX, plotY, plotWidth, plotHeight, rl.DarkGray)
		if curveErr != nil {
			rl.DrawText(curveErr.Error(), plotX+10, plotY+10, 16, rl.Red)
		} else {
			drawBands(cc)
			curve, _ := systems.NewIntensityCurve(cc)
			for i, s := range plot {
				drawSeries(curve, s)
				rl.DrawRectangle(plotX+10, plotY+10+int32(i)*18, 12, 12, s.color)
				rl.DrawText(s.name, plotX+28, plotY+9+int32(i)*18, 14, rl.DarkGray)
			}
			drawChecks(rows)
		}

		panelY := float32(10)
		rl.DrawText("Policy Thresholds", panelX, int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		changed = slider(&panelY, "Full rain at", &cc.ParticleFullAt, 1, maxPreview) || changed
		changed = slider(&panelY, "Mist below", &cc.MistBelow, 0, 1) || changed
		changed = slider(&panelY, "Steep fog from", &cc.FogSteepFrom, 0, 50) || changed
		changed = slider(&panelY, "River rise from", &cc.RiverRiseFrom, 0, 100) || changed
		changed = slider(&panelY, "River full at", &cc.RiverFullAt, 1, maxPreview) || changed
		changed = slider(&panelY, "Flood from", &cc.FloodFrom, 0, maxPreview) || changed
		changed = slider(&panelY, "Flood full at", &cc.FloodFullAt, 1, maxPreview) || changed
		changed = slider(&panelY, "Lights above", &cc.LightsAbove, 0, maxPreview) || changed
		changed = slider(&panelY, "Umbrellas above", &cc.UmbrellaAbove, 0, 20) || changed
		if changed {
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cc = defaults
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("YAML Config:", panelX, int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(cc) {
			rl.DrawText(line, panelX, int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(cc) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws one labelled slider bound to v and reports whether it moved.
func slider(y *float32, label string, v *float64, lo, hi float32) bool {
	rl.DrawText(label, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *y, Width: panelWidth - 70, Height: 20},
		fmt.Sprint(lo), fmt.Sprint(hi),
		float32(*v), lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%.2f", *v), panelX+panelWidth-60, int32(*y+2), 16, rl.DarkGray)
	*y += 32
	if next != float32(*v) {
		*v = float64(next)
		return true
	}
	return false
}

func plotPoint(intensity, norm float64) (int32, int32) {
	x := plotX + int32(intensity/maxPreview*plotWidth)
	y := plotY + plotHeight - int32(norm*plotHeight)
	return x, y
}

func drawSeries(curve *systems.IntensityCurve, s series) {
	prevX, prevY := int32(0), int32(0)
	for i := 0; i <= plotWidth; i += 2 {
		v := float64(i) / plotWidth * maxPreview
		norm := (s.get(curve.Apply(v)) - s.lo) / (s.hi - s.lo)
		x, y := plotPoint(v, norm)
		if i > 0 {
			rl.DrawLine(prevX, prevY, x, y, s.color)
		}
		prevX, prevY = x, y
	}
}

// drawBands marks band bounds and the lights threshold along the x axis.
func drawBands(cc config.CurveConfig) {
	for _, b := range systems.Bands {
		if b.Max > maxPreview {
			continue
		}
		x, _ := plotPoint(b.Max, 0)
		rl.DrawLine(x, plotY, x, plotY+plotHeight, rl.Fade(rl.LightGray, 0.6))
	}
	x, _ := plotPoint(cc.LightsAbove, 0)
	rl.DrawLine(x, plotY, x, plotY+plotHeight, rl.Gold)
	rl.DrawText("lights", x+3, plotY+plotHeight-18, 12, rl.Gold)
}

// drawChecks reports which curves are monotonic over the preview range.
func drawChecks(rows []CurveRow) {
	col := func(get func(CurveRow) float64) []float64 {
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = get(r)
		}
		return out
	}
	checks := []struct {
		name string
		ok   bool
	}{
		{"active ratio", nonDecreasing(col(func(r CurveRow) float64 { return r.ActiveRatio }))},
		{"river", nonDecreasing(col(func(r CurveRow) float64 { return r.River }))},
		{"flood", nonDecreasing(col(func(r CurveRow) float64 { return r.Flood }))},
		{"fall speed", nonDecreasing(col(func(r CurveRow) float64 { return r.FallSpeed }))},
	}

	y := int32(plotY + plotHeight + 15)
	x := int32(plotX)
	for _, c := range checks {
		color, mark := rl.DarkGreen, "ok"
		if !c.ok {
			color, mark = rl.Red, "NOT monotonic"
		}
		text := fmt.Sprintf("%s: %s", c.name, mark)
		rl.DrawText(text, x, y, 14, color)
		x += rl.MeasureText(text, 14) + 20
	}
}

func yamlLines(cc config.CurveConfig) []string {
	return []string{
		"curve:",
		fmt.Sprintf("  particle_full_at: %.2f", cc.ParticleFullAt),
		fmt.Sprintf("  mist_below: %.2f", cc.MistBelow),
		fmt.Sprintf("  fog_steep_from: %.2f", cc.FogSteepFrom),
		fmt.Sprintf("  river_rise_from: %.2f", cc.RiverRiseFrom),
		fmt.Sprintf("  river_full_at: %.2f", cc.RiverFullAt),
		fmt.Sprintf("  flood_from: %.2f", cc.FloodFrom),
		fmt.Sprintf("  flood_full_at: %.2f", cc.FloodFullAt),
		fmt.Sprintf("  lights_above: %.2f", cc.LightsAbove),
		fmt.Sprintf("  umbrella_above: %.2f", cc.UmbrellaAbove),
	}
}
