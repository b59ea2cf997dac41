// Package components defines ECS components for the city agents.
package components

import "math"

// Axis is the ground axis a lane runs along.
type Axis uint8

const (
	AxisX Axis = iota
	AxisZ
)

// Heading is a travel direction along one of the two lane axes.
type Heading uint8

const (
	HeadingPosX Heading = iota
	HeadingNegX
	HeadingPosZ
	HeadingNegZ
)

// HeadingFor returns the heading travelling along axis in the direction of sign.
func HeadingFor(axis Axis, positive bool) Heading {
	switch {
	case axis == AxisX && positive:
		return HeadingPosX
	case axis == AxisX:
		return HeadingNegX
	case positive:
		return HeadingPosZ
	default:
		return HeadingNegZ
	}
}

// Axis returns the axis the heading travels along.
func (h Heading) Axis() Axis {
	if h == HeadingPosX || h == HeadingNegX {
		return AxisX
	}
	return AxisZ
}

// Sign returns +1 for positive headings and -1 for negative ones.
func (h Heading) Sign() float32 {
	if h == HeadingPosX || h == HeadingPosZ {
		return 1
	}
	return -1
}

// RightHandOffset returns the lateral lane coordinate for right-hand traffic.
// +X drives at -offset and +Z at +offset; the negative headings mirror them.
func (h Heading) RightHandOffset(offset float32) float32 {
	switch h {
	case HeadingPosX, HeadingNegZ:
		return -offset
	default:
		return offset
	}
}

// Yaw returns the facing angle for the heading.
func (h Heading) Yaw() float32 {
	switch h {
	case HeadingPosX:
		return math.Pi / 2
	case HeadingNegX:
		return -math.Pi / 2
	case HeadingPosZ:
		return 0
	default:
		return math.Pi
	}
}

// Lane pins an agent to one axis at a fixed lateral coordinate.
// Lane assignment is immutable after spawn.
type Lane struct {
	Axis    Axis
	Lateral float32 // Coordinate on the other axis
}

// Kind distinguishes agent types in transforms handed to the renderer.
type Kind uint8

const (
	KindVehicle Kind = iota
	KindPedestrian
)

// Color is an 8-bit RGB body color.
type Color struct {
	R, G, B uint8
}

// Vehicle holds vehicle-specific data.
type Vehicle struct {
	ID      uint32
	Heading Heading
	Color   Color
}

// Pedestrian holds pedestrian-specific data.
type Pedestrian struct {
	ID              uint32
	RangeLimit      float32
	UmbrellaVisible bool
}

// YawFromVelocity returns the facing angle that looks along (vx, vz).
func YawFromVelocity(vx, vz float32) float32 {
	return float32(math.Atan2(float64(vx), float64(vz)))
}
