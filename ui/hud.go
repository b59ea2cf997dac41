package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Vehicles    int
	Pedestrians int
	Drops       int
	Capacity    int
	Tick        int64
	SimTime     float64
	FPS         int32
	Paused      bool
	Muted       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Cars: %d | People: %d | Drops: %d/%d", data.Vehicles, data.Pedestrians, data.Drops, data.Capacity),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d", data.Tick, data.SimTime, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Muted {
		status += " | Muted"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Sim         telemetry.PerfStats      // Simulation phases
	RenderTimes map[string]time.Duration // Average per render phase
	RenderOrder []string                 // Render phases, slowest first
}

// PerfPanel renders the timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	lines := int32(4 + len(telemetry.Phases) + len(data.RenderOrder))
	r.DrawPanel(p.x, p.y, p.width, lines*14+r.Theme.Padding*2+20)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += 20

	s := data.Sim
	rl.DrawText(fmt.Sprintf("Tick avg %s  p95 %s", s.AvgTickDuration.Round(time.Microsecond), s.P95TickDuration.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 14
	rl.DrawText(fmt.Sprintf("TPS %.0f  FPS %.0f", s.TicksPerSecond, s.FPS), x, y, 12, rl.Yellow)
	y += 14

	rl.DrawText("Simulation", x, y, 12, r.Theme.SectionHeader)
	y += 14
	for _, phase := range telemetry.Phases {
		pct := s.PhasePct[phase]
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, s.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, pctColor(pct),
		)
		y += 14
	}

	rl.DrawText("Render", x, y, 12, r.Theme.SectionHeader)
	y += 14
	var total time.Duration
	for _, name := range data.RenderOrder {
		total += data.RenderTimes[name]
	}
	for _, name := range data.RenderOrder {
		avg := data.RenderTimes[name]
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, pctColor(pct),
		)
		y += 14
	}
}

func pctColor(pct float64) rl.Color {
	switch {
	case pct > 50:
		return rl.Red
	case pct > 25:
		return rl.Orange
	default:
		return rl.LightGray
	}
}
