package viewer

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/renderer"
	"github.com/pthm-cable/raincity/ui"
)

const controlsLegend = "[ ] intensity | 0-9 presets | arrows/right-drag orbit | wheel zoom | Home reset | Space pause | M mute | Tab overlays"

// Draw renders the scene and the UI.
func (a *App) Draw() {
	a.sim.RecordFrame()

	d := a.sim.Derived()
	cam3D := a.camera3D()
	a.fog.Set(d.SkyColor, d.FogDensity, cam3D.Position)

	rl.BeginDrawing()
	rl.ClearBackground(a.fog.Sky())

	rl.BeginMode3D(cam3D)

	start := time.Now()
	a.city.Draw(a.fog)
	start = a.renderPerf.Since(renderScene, start)

	renderer.DrawLamps(a.lamps, a.fog)
	start = a.renderPerf.Since(renderLamps, start)

	a.agents.Draw(a.sim.Vehicles(), a.sim.Pedestrians(), a.fog)
	start = a.renderPerf.Since(renderAgents, start)

	// Translucent surfaces after the opaque scene
	a.river.Draw(a.fog)
	a.flood.Draw(a.fog)
	start = a.renderPerf.Since(renderWater, start)

	a.rain.Draw(a.sim.Particles().ActivePositions(), d, a.fog)
	start = a.renderPerf.Since(renderRain, start)

	a.drawDebugOverlays()

	rl.EndMode3D()

	a.drawUI()
	a.renderPerf.Since(renderUI, start)

	rl.EndDrawing()
}

// drawDebugOverlays draws the 3D debug guides that are switched on.
func (a *App) drawDebugOverlays() {
	tc := a.cfg.Traffic
	pc := a.cfg.Pedestrians

	if a.overlays.IsEnabled(ui.OverlayLaneGuides) {
		lane := float32(tc.LaneOffset)
		walk := float32(pc.SidewalkOffset)
		limit := float32(tc.Limit)
		for _, off := range []float32{-lane, lane} {
			rl.DrawLine3D(rl.NewVector3(-limit, 0.05, off), rl.NewVector3(limit, 0.05, off), rl.Yellow)
			rl.DrawLine3D(rl.NewVector3(off, 0.05, -limit), rl.NewVector3(off, 0.05, limit), rl.Yellow)
		}
		for _, off := range []float32{-walk, walk} {
			rl.DrawLine3D(rl.NewVector3(-limit, 0.05, off), rl.NewVector3(limit, 0.05, off), rl.SkyBlue)
			rl.DrawLine3D(rl.NewVector3(off, 0.05, -limit), rl.NewVector3(off, 0.05, limit), rl.SkyBlue)
		}
	}

	if a.overlays.IsEnabled(ui.OverlayRangeBounds) {
		wrap := float32(tc.Limit) * 2
		reflect := float32(pc.RangeLimit) * 2
		rl.DrawCubeWires(rl.NewVector3(0, 0.5, 0), wrap, 1, wrap, rl.Orange)
		rl.DrawCubeWires(rl.NewVector3(0, 1, 0), reflect, 2, reflect, rl.Magenta)
	}

	if a.overlays.IsEnabled(ui.OverlayDropBox) {
		rc := a.cfg.Rain
		span := float32(rc.HalfSpan) * 2
		top := float32(rc.Top)
		rl.DrawCubeWires(rl.NewVector3(0, top/2, 0), span, top, span, rl.White)
	}
}

// drawUI renders the 2D panels over the scene.
func (a *App) drawUI() {
	w := int32(a.screenWidth)
	h := int32(a.screenHeight)
	particles := a.sim.Particles()

	a.hud.Draw(ui.HUDData{
		Title:       "Rain City",
		Vehicles:    len(a.sim.Vehicles()),
		Pedestrians: len(a.sim.Pedestrians()),
		Drops:       particles.ActiveCount(),
		Capacity:    particles.Capacity(),
		Tick:        a.sim.Tick(),
		SimTime:     a.sim.SimTime(),
		FPS:         rl.GetFPS(),
		Paused:      a.paused,
		Muted:       a.player == nil || a.player.Muted(),
	})

	if v, changed := a.intensityPanel.Draw(a.sim.Intensity()); changed {
		a.SetIntensity(v)
	}

	below := int32(100) + a.intensityPanel.Height() + 10
	a.controls.SetPosition(10, below)
	below = a.controls.Draw(a.overlays) + 10

	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perfPanel.SetPosition(10, below)
		a.perfPanel.Draw(ui.PerfPanelData{
			Sim:         a.sim.PerfStats(),
			RenderTimes: a.renderPerf.Averages(),
			RenderOrder: a.renderPerf.SortedNames(),
		})
	}

	if a.overlays.IsEnabled(ui.OverlayEnvironment) {
		a.uiRenderer.DrawDescriptorPanel(a.envPanel, ui.EnvironmentData{
			Derived:         a.sim.Derived(),
			ActiveParticles: particles.ActiveCount(),
			Capacity:        particles.Capacity(),
			MeanCarSpeed:    a.sim.MeanVehicleSpeed(),
		}, w, h)
	}

	if a.overlays.IsEnabled(ui.OverlayHelp) {
		a.hud.DrawControls(h, controlsLegend)
	}
}
