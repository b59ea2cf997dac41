// Package viewer hosts the simulation in a raylib window.
package viewer

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/ambience"
	"github.com/pthm-cable/raincity/camera"
	"github.com/pthm-cable/raincity/config"
	"github.com/pthm-cable/raincity/game"
	"github.com/pthm-cable/raincity/renderer"
	"github.com/pthm-cable/raincity/systems"
	"github.com/pthm-cable/raincity/ui"
)

// Options holds viewer settings.
type Options struct {
	Audio bool // Play rain ambience through the speaker
}

// App owns the window-side state around one Simulation.
// The raylib window must be open before New is called.
type App struct {
	cfg *config.Config
	sim *game.Simulation
	cam *camera.Camera

	// Scene
	fog    *renderer.Fog
	city   *renderer.CityLayout
	river  *renderer.WaterPlane
	flood  *renderer.WaterPlane
	lamps  []*renderer.StreetLamp
	rain   *renderer.RainRenderer
	agents *renderer.AgentRenderer

	// UI
	uiRenderer     *ui.Renderer
	hud            *ui.HUD
	intensityPanel *ui.IntensityPanel
	perfPanel      *ui.PerfPanel
	controls       *ui.ControlsPanel
	overlays       *ui.OverlayRegistry
	envPanel       ui.PanelDescriptor

	player     *ambience.Player
	renderPerf *RenderPerf

	paused        bool
	screenWidth   float32
	screenHeight  float32
	lastLogged    float64
	intensityStep float64
}

// New builds the scene, attaches its water and lamp handles to sim and
// optionally starts the audio.
func New(cfg *config.Config, sim *game.Simulation, opts Options) *App {
	a := &App{
		cfg:            cfg,
		sim:            sim,
		cam:            camera.New(cfg.Camera),
		fog:            renderer.NewFog(),
		city:           renderer.NewCityLayout(),
		river:          renderer.NewRiver(),
		flood:          renderer.NewFloodPlane(),
		rain:           renderer.NewRainRenderer(),
		agents:         renderer.NewAgentRenderer(),
		uiRenderer:     ui.NewRenderer(),
		hud:            ui.NewHUD(),
		intensityPanel: ui.NewIntensityPanel(10, 100, 340),
		perfPanel:      ui.NewPerfPanel(10, 220, 300),
		controls:       ui.NewControlsPanel(10, 220, 220),
		overlays:       ui.NewOverlayRegistry(),
		renderPerf:     NewRenderPerf(),
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
		intensityStep:  1,
	}

	curve := sim.Curve().Config()
	a.envPanel = ui.EnvironmentPanel(float32(curve.RiverBase), float32(curve.FloodCap))

	a.lamps = renderer.NewStreetLamps(a.city)
	lights := make([]systems.StreetLight, len(a.lamps))
	for i, l := range a.lamps {
		lights[i] = l
	}
	sim.SetWaterSurfaces(a.river, a.flood)
	sim.SetStreetLights(lights)

	if opts.Audio {
		rain := ambience.NewRainNoise(cfg.Ambience, sim.Seed())
		a.player = ambience.NewPlayer(rain)
		if err := a.player.Start(); err != nil {
			slog.Error("failed to start audio", "error", err)
			a.player = nil
		}
	}
	a.syncAudio()

	return a
}

// Update handles input and advances the simulation by the frame time.
func (a *App) Update() {
	a.handleInput()

	if !a.paused {
		a.sim.Update(float64(rl.GetFrameTime()))
	}
	a.cam.Update()
}

// SetIntensity changes the rainfall and everything that follows it.
func (a *App) SetIntensity(v float64) {
	a.sim.SetIntensity(v)
	a.syncAudio()

	// Log band changes, not every slider step
	if systems.BandFor(v) != systems.BandFor(a.lastLogged) {
		st := a.sim.State()
		slog.Info("intensity changed", "state", st)
	}
	a.lastLogged = a.sim.Intensity()
}

// syncAudio points the rain audio at the current particle ratio.
func (a *App) syncAudio() {
	if a.player == nil {
		return
	}
	a.player.SetLevel(a.sim.Derived().ParticleActiveRatio)
}

// Tick returns the simulation tick.
func (a *App) Tick() int64 {
	return a.sim.Tick()
}

// Unload stops audio and closes the simulation output.
func (a *App) Unload() {
	if a.player != nil {
		a.player.Close()
	}
	if err := a.sim.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// camera3D converts the orbit camera to a raylib camera.
func (a *App) camera3D() rl.Camera3D {
	x, y, z := a.cam.Position()
	return rl.NewCamera3D(
		rl.NewVector3(x, y, z),
		rl.NewVector3(a.cam.TargetX, a.cam.TargetY, a.cam.TargetZ),
		rl.NewVector3(0, 1, 0),
		a.cam.Fovy,
		rl.CameraPerspective,
	)
}

// stepIntensity moves the intensity by dir steps, clamped at zero.
func (a *App) stepIntensity(dir float64) {
	a.SetIntensity(math.Max(a.sim.Intensity()+dir*a.intensityStep, 0))
}
