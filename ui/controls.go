package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	lampOn   = rl.Color{R: 255, G: 220, B: 130, A: 255}
	lampOff  = rl.Color{R: 70, G: 70, B: 70, A: 255}
	keyColor = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// ControlsPanel lists the overlays with their keys. Tab shows and hides it.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel returns a hidden panel at x, y.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle shows or hides the panel.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the overlay list and returns the y just below it.
// A hidden panel takes no space.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	th := c.renderer.Theme
	groups := []OverlayGroup{GroupPanels, GroupGuides}

	rows := 0
	for _, g := range groups {
		rows += 1 + len(overlays.InGroup(g))
	}
	height := th.Padding*2 + th.LineHeight + 4 + int32(rows)*th.LineHeight + int32(len(groups))*4
	c.renderer.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + th.Padding
	y := c.y + th.Padding
	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += th.LineHeight + 4

	for _, g := range groups {
		rl.DrawText(g.Title(), x, y, th.HeaderFontSize, th.SectionHeader)
		y += th.LineHeight
		for _, d := range overlays.InGroup(g) {
			c.drawEntry(x, y, d, overlays.IsEnabled(d.ID))
			y += th.LineHeight
		}
		y += 4
	}

	return c.y + height
}

// drawEntry draws a lamp, the overlay name and its key right-aligned.
func (c *ControlsPanel) drawEntry(x, y int32, d OverlayDescriptor, on bool) {
	th := c.renderer.Theme

	lamp, name := lampOff, th.LabelColor
	if on {
		lamp, name = lampOn, rl.White
	}
	rl.DrawCircle(x+4, y+6, 4, lamp)
	rl.DrawText(d.Name, x+14, y, th.FontSize, name)

	key := fmt.Sprintf("[%s]", d.KeyLabel)
	right := c.x + c.width - th.Padding
	rl.DrawText(key, right-rl.MeasureText(key, th.FontSize), y, th.FontSize, keyColor)
}
