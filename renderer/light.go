package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

var (
	poleColor    = hex("#2b2b2b")
	lampOffColor = hex("#555555")
	lampOnColor  = hex("#ffd27f")
)

const (
	poleHeight = 6
	poleRadius = 0.12
	headRadius = 0.35
	poolRadius = 5 // Ground glow radius at intensity 1
)

// StreetLamp is a lamp post. It implements systems.StreetLight.
type StreetLamp struct {
	base      rl.Vector3
	on        bool
	intensity float32
	emissive  float32
}

// NewStreetLamps creates one lamp per layout position.
func NewStreetLamps(layout *CityLayout) []*StreetLamp {
	lamps := make([]*StreetLamp, len(layout.Lamps))
	for i, p := range layout.Lamps {
		lamps[i] = &StreetLamp{base: p}
	}
	return lamps
}

// SetLit implements systems.StreetLight.
func (l *StreetLamp) SetLit(on bool, pointIntensity, emissive float32) {
	l.on = on
	l.intensity = pointIntensity
	l.emissive = emissive
}

// Lit reports whether the lamp is on.
func (l *StreetLamp) Lit() bool { return l.on }

// Draw renders the pole and head, plus a glow pool on the ground when lit.
func (l *StreetLamp) Draw(fog *Fog) {
	rl.DrawCylinder(l.base, poleRadius, poleRadius, poleHeight, 6, fog.Shade(poleColor, l.base, 255))

	head := rl.NewVector3(l.base.X, l.base.Y+poleHeight, l.base.Z)
	if !l.on {
		rl.DrawSphere(head, headRadius, fog.Shade(lampOffColor, head, 255))
		return
	}

	glow := lampOffColor.BlendRgb(lampOnColor, clamp01(float64(l.emissive)/0.8))
	rl.DrawSphere(head, headRadius, fog.Emissive(glow, head, 255))
	rl.DrawSphere(head, headRadius*2.5, fog.Emissive(lampOnColor, head, 40))

	pool := rl.NewVector3(l.base.X, RoadY+0.01, l.base.Z)
	radius := poolRadius * l.intensity / 1.5
	rl.DrawCylinder(pool, radius, radius, 0.01, 16, fog.Emissive(lampOnColor, pool, uint8(clamp01(float64(l.intensity)/1.5)*50)))
}

// DrawLamps draws every lamp.
func DrawLamps(lamps []*StreetLamp, fog *Fog) {
	for _, l := range lamps {
		l.Draw(fog)
	}
}
