// Package ui draws the viewer's 2D panels. Readout panels are declared as
// data (PanelDescriptor) and rendered generically by Renderer.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType selects how a readout is drawn.
type WidgetType int

const (
	WidgetText        WidgetType = iota // label and formatted value
	WidgetBar                           // fill over [0, 1]
	WidgetRangeBar                      // fill over Range
	WidgetColorSwatch                   // filled square
	WidgetSection                       // sub-header inside a section
	WidgetSpacer                        // blank line
)

// FieldRange is the value span a bar fills across.
type FieldRange struct {
	Min float32
	Max float32
}

// unitRange is the span of plain bars.
var unitRange = FieldRange{Min: 0, Max: 1}

// FieldDescriptor is one readout line. Getters receive the panel's data value.
type FieldDescriptor struct {
	Label       string
	Widget      WidgetType
	Format      string // printf verb for numeric values, "%.2f" when empty
	Range       FieldRange
	Color       rl.Color
	Visible     func(any) bool // nil shows the line always
	Getter      func(any) float32
	TextGetter  func(any) string
	ColorGetter func(any) rl.Color
}

// SectionDescriptor groups readouts under a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor is a titled stack of sections pinned to a screen corner.
type PanelDescriptor struct {
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor is the screen corner a panel sticks to.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
)

// Theme holds panel colors and metrics.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color

	// Bars shade from dry through wet to flooded as they fill
	BarBg    rl.Color
	BarDry   rl.Color
	BarWet   rl.Color
	BarFlood rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the slate-and-rain palette used by every panel.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 18, G: 24, B: 32, A: 215},
		PanelBorder:    rl.Color{R: 70, G: 90, B: 110, A: 255},
		SectionHeader:  rl.Color{R: 140, G: 200, B: 235, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 35, G: 40, B: 48, A: 255},
		BarDry:         rl.Color{R: 135, G: 206, B: 235, A: 255},
		BarWet:         rl.Color{R: 70, G: 130, B: 200, A: 255},
		BarFlood:       rl.Color{R: 200, G: 110, B: 90, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
