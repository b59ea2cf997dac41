package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/systems"
)

var dropColor = hex("#aaaaaa")

// streakScale turns the drop material size into a streak length.
const streakScale = 4

// RainRenderer draws active drops as short vertical streaks.
type RainRenderer struct{}

// NewRainRenderer creates a new rain renderer.
func NewRainRenderer() *RainRenderer {
	return &RainRenderer{}
}

// Draw renders the active prefix of the particle buffer with the material
// in d. Nothing is drawn while particles are hidden.
func (r *RainRenderer) Draw(positions []float32, d systems.DerivedState, fog *Fog) {
	if !d.ParticlesVisible || len(positions) == 0 {
		return
	}

	// One tint for the whole field; per-drop fog costs too much at full capacity
	color := fog.Emissive(dropColor, rl.NewVector3(0, 20, 0), uint8(clamp01(d.ParticleOpacity)*255))
	length := float32(d.ParticleSize) * streakScale

	for i := 0; i+2 < len(positions); i += 3 {
		x, y, z := positions[i], positions[i+1], positions[i+2]
		rl.DrawLine3D(rl.NewVector3(x, y, z), rl.NewVector3(x, y+length, z), color)
	}
}
