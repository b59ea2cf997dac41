// Package camera provides an orbit camera for viewing the city.
package camera

import (
	"math"

	"github.com/pthm-cable/raincity/config"
)

// Pitch limits keep the camera above the ground and off the pole.
const (
	MinPitch = 5.0
	MaxPitch = 85.0
)

// Camera orbits a target point. Input moves the goal angles and distance;
// Update eases the current values toward the goal.
type Camera struct {
	// Orbit center in world coordinates
	TargetX, TargetY, TargetZ float32

	// Current orbit, angles in degrees
	Yaw, Pitch, Distance float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// Fraction of the remaining gap closed per Update, in (0,1]
	Damping float32

	Fovy float32

	goalYaw, goalPitch, goalDistance float32
	homeYaw, homePitch, homeDistance float32
}

// New creates a camera looking at the origin from the configured orbit.
func New(cfg config.CameraConfig) *Camera {
	damping := clamp(float32(cfg.Damping), 0, 1)
	if damping == 0 {
		damping = 1
	}

	c := &Camera{
		MinDistance: float32(cfg.MinDistance),
		MaxDistance: float32(cfg.MaxDistance),
		Damping:     damping,
		Fovy:        float32(cfg.Fovy),
	}
	c.homeYaw = float32(cfg.Yaw)
	c.homePitch = clamp(float32(cfg.Pitch), MinPitch, MaxPitch)
	c.homeDistance = clamp(float32(cfg.Distance), c.MinDistance, c.MaxDistance)
	c.Reset()
	c.Snap()
	return c
}

// Orbit rotates the goal by the given angles in degrees.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.goalYaw = wrapDegrees(c.goalYaw + dYaw)
	c.goalPitch = clamp(c.goalPitch+dPitch, MinPitch, MaxPitch)
}

// SetDistance sets the goal distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.goalDistance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy multiplies the goal distance by factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetDistance(c.goalDistance * factor)
}

// Reset returns the goal orbit to its starting values.
func (c *Camera) Reset() {
	c.goalYaw = c.homeYaw
	c.goalPitch = c.homePitch
	c.goalDistance = c.homeDistance
}

// Snap jumps the current orbit to the goal.
func (c *Camera) Snap() {
	c.Yaw = c.goalYaw
	c.Pitch = c.goalPitch
	c.Distance = c.goalDistance
}

// Update eases the current orbit toward the goal by Damping.
func (c *Camera) Update() {
	// Shortest way around for yaw
	dy := wrapDegrees(c.goalYaw - c.Yaw)
	c.Yaw = wrapDegrees(c.Yaw + dy*c.Damping)
	c.Pitch += (c.goalPitch - c.Pitch) * c.Damping
	c.Distance += (c.goalDistance - c.Distance) * c.Damping
}

// Settled reports whether the current orbit is within eps of the goal.
func (c *Camera) Settled(eps float32) bool {
	return absf(wrapDegrees(c.goalYaw-c.Yaw)) <= eps &&
		absf(c.goalPitch-c.Pitch) <= eps &&
		absf(c.goalDistance-c.Distance) <= eps
}

// Position returns the eye position for the current orbit.
func (c *Camera) Position() (x, y, z float32) {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	x = c.TargetX + float32(d*math.Cos(pitch)*math.Sin(yaw))
	y = c.TargetY + float32(d*math.Sin(pitch))
	z = c.TargetZ + float32(d*math.Cos(pitch)*math.Cos(yaw))
	return x, y, z
}

// wrapDegrees maps an angle to (-180, 180].
func wrapDegrees(a float32) float32 {
	r := float32(math.Mod(float64(a), 360))
	if r > 180 {
		r -= 360
	} else if r <= -180 {
		r += 360
	}
	return r
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
