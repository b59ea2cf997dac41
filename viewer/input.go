package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// presets maps the number keys 0-9 to intensities, one per band.
var presets = [10]float64{0, 0.1, 0.2, 1, 10, 20, 30, 50, 80, 120}

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	if rl.IsKeyPressed(rl.KeyM) && a.player != nil {
		a.player.ToggleMute()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}

	// Intensity stepping, faster with shift
	a.intensityStep = 1
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		a.intensityStep = 10
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		a.stepIntensity(1)
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		a.stepIntensity(-1)
	}
	for i, v := range presets {
		if rl.IsKeyPressed(rl.KeyZero + int32(i)) {
			a.SetIntensity(v)
		}
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		a.overlays.HandleKeyPress(key)
	}

	a.handleCameraInput()
}

// handleResize checks for window resize and moves anchored panels.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.screenWidth && h == a.screenHeight {
		return
	}
	a.screenWidth = w
	a.screenHeight = h
}

// handleCameraInput processes orbit and zoom controls.
func (a *App) handleCameraInput() {
	const orbitSpeed = 1.5 // Degrees per frame

	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Orbit(orbitSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Orbit(-orbitSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Orbit(0, orbitSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Orbit(0, -orbitSpeed)
	}

	// Right drag orbits; left button belongs to the slider
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.cam.Orbit(-d.X*0.3, d.Y*0.3)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 - wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.cam.ZoomBy(1.25)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}
