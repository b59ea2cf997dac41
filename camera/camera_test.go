package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/raincity/config"
)

func newTestCamera() *Camera {
	return New(config.Default().Camera)
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	if cam.Distance != 35 {
		t.Errorf("expected distance 35, got %f", cam.Distance)
	}
	if cam.Yaw != 45 || cam.Pitch != 35 {
		t.Errorf("expected orbit (45, 35), got (%f, %f)", cam.Yaw, cam.Pitch)
	}
	if !cam.Settled(0) {
		t.Error("expected new camera to start on its goal")
	}
}

func TestPositionDistanceFromTarget(t *testing.T) {
	cam := newTestCamera()

	x, y, z := cam.Position()
	d := math.Sqrt(float64(x*x + y*y + z*z))
	if math.Abs(d-35) > 1e-3 {
		t.Errorf("expected eye 35 from target, got %f", d)
	}
	if y <= 0 {
		t.Errorf("expected eye above ground, got y=%f", y)
	}
}

func TestPositionAxes(t *testing.T) {
	cam := newTestCamera()
	cam.Yaw, cam.Pitch, cam.Distance = 0, 0, 10

	x, y, z := cam.Position()
	if math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y)) > 1e-5 || math.Abs(float64(z)-10) > 1e-5 {
		t.Errorf("expected eye on +Z at (0,0,10), got (%f,%f,%f)", x, y, z)
	}
}

func TestZoomClamps(t *testing.T) {
	tests := []struct {
		name   string
		factor float32
		want   float32
	}{
		{"zoom in past min", 0.01, 10},
		{"zoom out past max", 100, 160},
		{"within range", 2, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera()
			cam.ZoomBy(tt.factor)
			cam.Snap()
			if cam.Distance != tt.want {
				t.Errorf("expected distance %f, got %f", tt.want, cam.Distance)
			}
		})
	}
}

func TestPitchClamps(t *testing.T) {
	cam := newTestCamera()

	cam.Orbit(0, 200)
	cam.Snap()
	if cam.Pitch != MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", MaxPitch, cam.Pitch)
	}

	cam.Orbit(0, -500)
	cam.Snap()
	if cam.Pitch != MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", MinPitch, cam.Pitch)
	}
}

func TestDampingConverges(t *testing.T) {
	cam := newTestCamera()
	cam.SetDistance(100)
	cam.Orbit(90, 10)

	cam.Update()
	if cam.Settled(0.01) {
		t.Fatal("expected one damped step to leave a gap")
	}
	if cam.Distance <= 35 || cam.Distance >= 100 {
		t.Errorf("expected distance between start and goal, got %f", cam.Distance)
	}

	for i := 0; i < 1000; i++ {
		cam.Update()
	}
	if !cam.Settled(0.01) {
		t.Errorf("expected camera to settle, at (%f, %f, %f)", cam.Yaw, cam.Pitch, cam.Distance)
	}
}

func TestYawTakesShortestPath(t *testing.T) {
	cam := newTestCamera()
	cam.Yaw = 170
	cam.goalYaw = -170
	cam.Damping = 0.5

	cam.Update()
	// 20 degrees apart across the seam, half of that is 10
	if math.Abs(float64(cam.Yaw)-180) > 1e-3 {
		t.Errorf("expected yaw 180 after half step across the seam, got %f", cam.Yaw)
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.Orbit(120, 30)
	cam.ZoomBy(3)
	cam.Snap()

	cam.Reset()
	cam.Snap()
	if cam.Yaw != 45 || cam.Pitch != 35 || cam.Distance != 35 {
		t.Errorf("expected home orbit (45, 35, 35), got (%f, %f, %f)", cam.Yaw, cam.Pitch, cam.Distance)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{720, 0},
		{-450, -90},
	}
	for _, tt := range tests {
		if got := wrapDegrees(tt.in); math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("wrapDegrees(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}
