package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	riverColor = hex("#1e4d6b")
	floodColor = hex("#3b5a6e")
)

// WaterPlane is a flat translucent water surface. It implements
// systems.WaterSurface; the simulation moves it, Draw only reads it.
type WaterPlane struct {
	center  rl.Vector3
	size    rl.Vector2
	color   colorful.Color
	offset  float32
	opacity float32
}

// NewRiver creates the river surface filling the channel.
func NewRiver() *WaterPlane {
	return &WaterPlane{
		center: rl.NewVector3(0, 0, RiverZ),
		size:   rl.NewVector2(GroundSize, RiverWidth),
		color:  riverColor,
	}
}

// NewFloodPlane creates the street-level flood sheet over the whole ground.
func NewFloodPlane() *WaterPlane {
	return &WaterPlane{
		size:  rl.NewVector2(GroundSize, GroundSize),
		color: floodColor,
	}
}

// SetVerticalOffset implements systems.WaterSurface.
func (w *WaterPlane) SetVerticalOffset(y float32) { w.offset = y }

// SetOpacity implements systems.WaterSurface.
func (w *WaterPlane) SetOpacity(a float32) { w.opacity = a }

// Level returns the current surface height.
func (w *WaterPlane) Level() float32 { return w.offset }

// Draw renders the surface. Fully transparent planes are skipped.
func (w *WaterPlane) Draw(fog *Fog) {
	if w.opacity <= 0 {
		return
	}
	pos := rl.NewVector3(w.center.X, w.center.Y+w.offset, w.center.Z)
	rl.DrawPlane(pos, w.size, fog.Shade(w.color, pos, uint8(clamp01(float64(w.opacity))*255)))
}
