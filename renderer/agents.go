package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/raincity/components"
	"github.com/pthm-cable/raincity/systems"
)

var (
	pedestrianColor = hex("#0000ff")
	umbrellaColor   = hex("#333333")
)

// Agent dimensions in world units.
const (
	carWidth  = 2
	carHeight = 1
	carLength = 4

	pedRadius     = 0.3
	pedHalfLength = 0.5 // Half the capsule's straight section
	pedCenterY    = 0.8

	umbrellaRadius = 0.6
	umbrellaHeight = 0.2
	umbrellaY      = 1.6
)

// AgentRenderer draws vehicles and pedestrians from their transforms.
type AgentRenderer struct{}

// NewAgentRenderer creates a new agent renderer.
func NewAgentRenderer() *AgentRenderer {
	return &AgentRenderer{}
}

// Draw renders every agent. Vehicles are boxes turned to their yaw;
// pedestrians are capsules with an umbrella while it rains.
func (r *AgentRenderer) Draw(vehicles, pedestrians []systems.AgentTransform, fog *Fog) {
	for i := range vehicles {
		r.drawVehicle(&vehicles[i], fog)
	}
	for i := range pedestrians {
		r.drawPedestrian(&pedestrians[i], fog)
	}
}

func (r *AgentRenderer) drawVehicle(t *systems.AgentTransform, fog *Fog) {
	pos := toVec(t.Position)
	tint := fog.Shade(fromComponent(t.Color), pos, 255)

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(t.Yaw*180/math.Pi, 0, 1, 0)
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawCube(origin, carWidth, carHeight, carLength, tint)
	rl.DrawCubeWires(origin, carWidth, carHeight, carLength, rl.Fade(rl.Black, 0.4))
	rl.PopMatrix()
}

func (r *AgentRenderer) drawPedestrian(t *systems.AgentTransform, fog *Fog) {
	center := rl.NewVector3(t.Position.X, pedCenterY, t.Position.Z)
	bottom := rl.NewVector3(center.X, center.Y-pedHalfLength, center.Z)
	top := rl.NewVector3(center.X, center.Y+pedHalfLength, center.Z)
	rl.DrawCapsule(bottom, top, pedRadius, 8, 4, fog.Shade(pedestrianColor, center, 255))

	if !t.UmbrellaVisible {
		return
	}
	canopy := rl.NewVector3(center.X, umbrellaY-umbrellaHeight/2, center.Z)
	rl.DrawCylinder(canopy, 0, umbrellaRadius, umbrellaHeight, 12, fog.Shade(umbrellaColor, canopy, 255))
}

func toVec(p components.Position) rl.Vector3 {
	return rl.NewVector3(p.X, p.Y, p.Z)
}

func fromComponent(c components.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
