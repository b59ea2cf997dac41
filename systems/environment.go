package systems

// WaterSurface is a renderable water plane owned by the scene.
type WaterSurface interface {
	SetVerticalOffset(y float32)
	SetOpacity(a float32)
}

// StreetLight is a lamp fixture owned by the scene.
type StreetLight interface {
	SetLit(on bool, pointIntensity, emissive float32)
}

// ApplyEnvironment pushes derived water levels and lamp state into the
// scene handles. Nil handles are skipped.
func ApplyEnvironment(d DerivedState, river, flood WaterSurface, lights []StreetLight) {
	if river != nil {
		river.SetVerticalOffset(float32(d.RiverLevel))
		river.SetOpacity(float32(d.RiverOpacity))
	}
	if flood != nil {
		flood.SetVerticalOffset(float32(d.FloodLevel))
		flood.SetOpacity(float32(d.FloodOpacity))
	}
	for _, l := range lights {
		if l == nil {
			continue
		}
		l.SetLit(d.LightsOn, float32(d.LightIntensity), float32(d.LightEmissive))
	}
}

// WaterState is an in-memory WaterSurface for headless runs.
type WaterState struct {
	VerticalOffset float32
	Opacity        float32
}

// SetVerticalOffset implements WaterSurface.
func (w *WaterState) SetVerticalOffset(y float32) { w.VerticalOffset = y }

// SetOpacity implements WaterSurface.
func (w *WaterState) SetOpacity(a float32) { w.Opacity = a }

// LampState is an in-memory StreetLight for headless runs.
type LampState struct {
	On             bool
	PointIntensity float32
	Emissive       float32
}

// SetLit implements StreetLight.
func (l *LampState) SetLit(on bool, pointIntensity, emissive float32) {
	l.On = on
	l.PointIntensity = pointIntensity
	l.Emissive = emissive
}
