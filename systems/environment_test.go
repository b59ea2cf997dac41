package systems

import "testing"

func TestApplyEnvironmentPushesHandles(t *testing.T) {
	c := newTestCurve(t)
	river := &WaterState{}
	flood := &WaterState{}
	lamps := []*LampState{{}, {}, {}}
	lights := make([]StreetLight, len(lamps))
	for i, l := range lamps {
		lights[i] = l
	}

	ApplyEnvironment(c.Apply(100), river, flood, lights)

	if river.VerticalOffset != 0 {
		t.Errorf("expected river at bank (0), got %f", river.VerticalOffset)
	}
	if river.Opacity != float32(0.8) {
		t.Errorf("expected river opacity 0.8, got %f", river.Opacity)
	}
	if flood.Opacity != float32(0.8) {
		t.Errorf("expected visible flood, got opacity %f", flood.Opacity)
	}
	for i, l := range lamps {
		if !l.On || l.PointIntensity != 1.5 || l.Emissive != float32(0.8) {
			t.Errorf("lamp %d: expected lit (1.5, 0.8), got %+v", i, *l)
		}
	}

	ApplyEnvironment(c.Apply(0), river, flood, lights)

	if river.VerticalOffset != -3.5 {
		t.Errorf("expected river baseline -3.5, got %f", river.VerticalOffset)
	}
	if flood.Opacity != 0 || flood.VerticalOffset != float32(0.05) {
		t.Errorf("expected hidden flood at 0.05, got %+v", *flood)
	}
	for i, l := range lamps {
		if l.On || l.PointIntensity != 0 || l.Emissive != 0 {
			t.Errorf("lamp %d: expected dark, got %+v", i, *l)
		}
	}
}

func TestApplyEnvironmentSkipsNilHandles(t *testing.T) {
	c := newTestCurve(t)
	// Must not panic
	ApplyEnvironment(c.Apply(90), nil, nil, []StreetLight{nil})
}
