package components

// Position represents an entity's world position (Y is up).
type Position struct {
	X, Y, Z float32
}

// Velocity represents an entity's ground-plane velocity in world units per second.
type Velocity struct {
	X, Z float32
}

// Facing is the yaw an entity looks along, derived from its velocity.
type Facing struct {
	Yaw float32 // radians, 0 = +Z, pi/2 = +X
}
