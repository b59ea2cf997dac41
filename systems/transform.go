package systems

import "github.com/pthm-cable/raincity/components"

// AgentTransform is the per-frame snapshot of one agent handed to the renderer.
type AgentTransform struct {
	ID              uint32
	Kind            components.Kind
	Position        components.Position
	Yaw             float32
	Color           components.Color
	UmbrellaVisible bool
}
