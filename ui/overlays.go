package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable overlay.
type OverlayID string

const (
	OverlayEnvironment OverlayID = "environment"
	OverlayPerf        OverlayID = "perf"
	OverlayHelp        OverlayID = "help"
	OverlayLaneGuides  OverlayID = "lane_guides"
	OverlayRangeBounds OverlayID = "range_bounds"
	OverlayDropBox     OverlayID = "drop_box"
)

// OverlayGroup is the heading an overlay is listed under.
type OverlayGroup uint8

const (
	GroupPanels OverlayGroup = iota // 2D readouts
	GroupGuides                     // 3D debug geometry
)

// Title returns the heading shown in the controls panel.
func (g OverlayGroup) Title() string {
	if g == GroupGuides {
		return "Scene Guides"
	}
	return "Panels"
}

// OverlayDescriptor is one entry of the overlay list.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Group    OverlayGroup
}

// OverlayRegistry holds the overlay list and which entries are on.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry returns the viewer's overlays, all switched off.
func NewOverlayRegistry() *OverlayRegistry {
	return &OverlayRegistry{
		descriptors: []OverlayDescriptor{
			{ID: OverlayEnvironment, Name: "Environment", Key: rl.KeyE, KeyLabel: "E", Group: GroupPanels},
			{ID: OverlayPerf, Name: "Performance", Key: rl.KeyP, KeyLabel: "P", Group: GroupPanels},
			{ID: OverlayHelp, Name: "Key Help", Key: rl.KeyH, KeyLabel: "H", Group: GroupPanels},
			{ID: OverlayLaneGuides, Name: "Lanes & Sidewalks", Key: rl.KeyL, KeyLabel: "L", Group: GroupGuides},
			{ID: OverlayRangeBounds, Name: "Wrap & Reflect", Key: rl.KeyB, KeyLabel: "B", Group: GroupGuides},
			{ID: OverlayDropBox, Name: "Rain Volume", Key: rl.KeyX, KeyLabel: "X", Group: GroupGuides},
		},
		enabled: make(map[OverlayID]bool),
	}
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// InGroup returns the overlays listed under g, in registration order.
func (r *OverlayRegistry) InGroup(g OverlayGroup) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.descriptors {
		if d.Group == g {
			out = append(out, d)
		}
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key, if any.
func (r *OverlayRegistry) HandleKeyPress(key int32) bool {
	for _, d := range r.descriptors {
		if d.Key == key {
			r.Toggle(d.ID)
			return true
		}
	}
	return false
}
