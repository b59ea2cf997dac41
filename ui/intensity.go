package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/systems"
)

// Slider range in mm/hour. Larger values can still be set from the keyboard.
const (
	SliderMin = 0
	SliderMax = 150
)

// IntensityPanel is the rainfall slider with the current band's label.
type IntensityPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewIntensityPanel creates an intensity panel.
func NewIntensityPanel(x, y, width int32) *IntensityPanel {
	return &IntensityPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *IntensityPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height.
func (p *IntensityPanel) Height() int32 {
	return 110
}

// Draw renders the slider for value and returns the slider's value and
// whether the user moved it this frame.
func (p *IntensityPanel) Draw(value float64) (float64, bool) {
	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	inner := p.width - r.Theme.Padding*2

	rl.DrawText(fmt.Sprintf("Rainfall: %.1f mm/hour", value), x, y, 16, rl.White)
	y += 22

	shown := float32(value)
	if shown > SliderMax {
		shown = SliderMax
	}
	next := gui.SliderBar(
		rl.Rectangle{X: float32(x + 24), Y: float32(y), Width: float32(inner - 60), Height: 18},
		fmt.Sprint(SliderMin), fmt.Sprint(SliderMax),
		shown, SliderMin, SliderMax,
	)
	y += 28

	band := systems.BandFor(value)
	rl.DrawText(band.Title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.LineHeight + 2
	rl.DrawText(band.Desc, x, y, r.Theme.FontSize, r.Theme.LabelColor)

	if next != shown {
		return float64(next), true
	}
	return value, false
}
