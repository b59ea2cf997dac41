// Package renderer draws the city, its weather and its agents with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Fog shades scene colors for the current sky and camera position.
// Colors fade toward the sky by exp(-density * distance).
type Fog struct {
	sky     colorful.Color
	density float64
	ambient float64
	eye     rl.Vector3
}

// NewFog creates a fog with a clear sky and no density.
func NewFog() *Fog {
	return &Fog{sky: colorful.Color{R: 1, G: 1, B: 1}, ambient: 1}
}

// Set updates the sky color, density and eye position for the next frame.
// Scene lighting dims with the sky's lightness.
func (f *Fog) Set(sky colorful.Color, density float64, eye rl.Vector3) {
	f.sky = sky
	f.density = math.Max(density, 0)
	f.eye = eye

	l, _, _ := sky.Lab()
	f.ambient = 0.6 + 0.4*clamp01(l)
}

// Sky returns the sky color as a raylib color.
func (f *Fog) Sky() rl.Color {
	return toRL(f.sky, 255)
}

// Amount returns the fog blend factor at distance, in [0,1].
func (f *Fog) Amount(distance float64) float64 {
	return clamp01(1 - math.Exp(-f.density*distance))
}

// Shade returns base lit by the scene ambient and fogged at pos.
func (f *Fog) Shade(base colorful.Color, pos rl.Vector3, alpha uint8) rl.Color {
	lit := colorful.Color{R: base.R * f.ambient, G: base.G * f.ambient, B: base.B * f.ambient}
	return toRL(lit.BlendRgb(f.sky, f.Amount(f.distance(pos))), alpha)
}

// Emissive fogs base without ambient dimming.
func (f *Fog) Emissive(base colorful.Color, pos rl.Vector3, alpha uint8) rl.Color {
	return toRL(base.BlendRgb(f.sky, f.Amount(f.distance(pos))), alpha)
}

func (f *Fog) distance(pos rl.Vector3) float64 {
	dx := float64(pos.X - f.eye.X)
	dy := float64(pos.Y - f.eye.Y)
	dz := float64(pos.Z - f.eye.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// hex parses a fixed palette color. Palette entries are constants, so a parse
// failure is a programming error.
func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func toRL(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: alpha}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
