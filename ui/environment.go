package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/systems"
)

// EnvironmentData is what the environment panel reads.
type EnvironmentData struct {
	Derived         systems.DerivedState
	ActiveParticles int
	Capacity        int
	MeanCarSpeed    float64
}

// EnvironmentPanel returns the descriptor for the derived weather panel.
// riverMin and floodMax set the bar ranges for the water levels.
func EnvironmentPanel(riverMin, floodMax float32) PanelDescriptor {
	env := func(data any) systems.DerivedState { return data.(EnvironmentData).Derived }

	return PanelDescriptor{
		Title:  "Environment",
		Width:  280,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				Title: "Sky",
				Fields: []FieldDescriptor{
					{
						Label: "Color", Widget: WidgetColorSwatch,
						ColorGetter: func(d any) rl.Color {
							r, g, b := env(d).SkyColor.Clamped().RGB255()
							return rl.Color{R: r, G: g, B: b, A: 255}
						},
					},
					{
						Label: "Fog", Widget: WidgetRangeBar, Format: "%.4f",
						Range:  FieldRange{Min: 0, Max: 0.05},
						Getter: func(d any) float32 { return float32(env(d).FogDensity) },
					},
				},
			},
			{
				Title: "Rain",
				Fields: []FieldDescriptor{
					{
						Label: "Active", Widget: WidgetBar,
						Getter: func(d any) float32 { return float32(env(d).ParticleActiveRatio) },
					},
					{
						Label: "Drops", Widget: WidgetText,
						TextGetter: func(d any) string {
							e := d.(EnvironmentData)
							return fmt.Sprintf("%d / %d", e.ActiveParticles, e.Capacity)
						},
					},
					{
						Label: "Opacity", Widget: WidgetBar,
						Getter:  func(d any) float32 { return float32(env(d).ParticleOpacity) },
						Visible: func(d any) bool { return env(d).ParticlesVisible },
					},
					{
						Label: "Size", Widget: WidgetText, Format: "%.3f",
						Getter:  func(d any) float32 { return float32(env(d).ParticleSize) },
						Visible: func(d any) bool { return env(d).ParticlesVisible },
					},
					{
						Label: "Fall speed", Widget: WidgetText, Format: "%.1f u/s",
						Getter: func(d any) float32 { return float32(env(d).FallSpeed) },
					},
				},
			},
			{
				Title: "Water",
				Fields: []FieldDescriptor{
					{
						Label: "River", Widget: WidgetRangeBar, Format: "%+.2f",
						Range:  FieldRange{Min: riverMin, Max: 0},
						Getter: func(d any) float32 { return float32(env(d).RiverLevel) },
					},
					{
						Label: "Flood", Widget: WidgetRangeBar, Format: "%.2f",
						Range:   FieldRange{Min: 0, Max: floodMax},
						Getter:  func(d any) float32 { return float32(env(d).FloodLevel) },
						Visible: func(d any) bool { return env(d).FloodOpacity > 0 },
					},
				},
			},
			{
				Title: "Street",
				Fields: []FieldDescriptor{
					{
						Label: "Lights", Widget: WidgetText,
						TextGetter: func(d any) string { return onOff(env(d).LightsOn) },
					},
					{
						Label: "Umbrellas", Widget: WidgetText,
						TextGetter: func(d any) string { return onOff(env(d).UmbrellasVisible) },
					},
					{
						Label: "Car speed", Widget: WidgetText, Format: "%.1f u/s",
						Getter: func(d any) float32 { return float32(d.(EnvironmentData).MeanCarSpeed) },
					},
				},
			},
		},
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
