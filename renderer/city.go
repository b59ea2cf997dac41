package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// City palette
var (
	groundColor   = hex("#333333")
	roadColor     = hex("#1a1a1a")
	buildingColor = hex("#888888")
	leafColor     = hex("#2e7d32")
	trunkColor    = hex("#5d4037")
	bankColor     = hex("#4a4036")
)

// Layout constants in world units.
const (
	GroundSize = 200
	RoadWidth  = 20
	RoadY      = 0.01

	RiverZ     = 70 // River runs along X centred on this Z
	RiverWidth = 16

	treeSpacing = 15
	treeOffset  = 12
	treeClear   = 15 // Keep the intersection free

	lampSpacing = 30
	lampOffset  = 11
	lampClear   = 15
)

// Box is an axis-aligned solid.
type Box struct {
	Center rl.Vector3
	Size   rl.Vector3
	Color  colorful.Color
}

// CityLayout holds the static scene geometry.
type CityLayout struct {
	Buildings []Box
	Trees     []rl.Vector3 // Trunk base positions
	Lamps     []rl.Vector3 // Pole base positions
}

// NewCityLayout builds the fixed city: two crossing roads, four blocks of
// three buildings, roadside trees and lamp posts.
func NewCityLayout() *CityLayout {
	c := &CityLayout{}

	// x, z, width, depth, height per building
	for _, b := range [][5]float32{
		{-20, -20, 15, 15, 20}, {-40, -20, 10, 15, 15}, {-20, -40, 15, 10, 25},
		{20, -20, 15, 15, 30}, {40, -20, 10, 15, 10}, {20, -40, 15, 10, 15},
		{-20, 20, 15, 15, 10}, {-40, 20, 10, 15, 20}, {-20, 40, 15, 10, 15},
		{20, 20, 15, 15, 25}, {40, 20, 10, 15, 35}, {20, 40, 15, 10, 10},
	} {
		c.Buildings = append(c.Buildings, Box{
			Center: rl.NewVector3(b[0], b[4]/2, b[1]),
			Size:   rl.NewVector3(b[2], b[4], b[3]),
			Color:  buildingColor,
		})
	}

	for i := -90; i <= 90; i += treeSpacing {
		if abs(i) <= treeClear {
			continue
		}
		p := float32(i)
		for _, pos := range []rl.Vector3{
			rl.NewVector3(treeOffset, 0, p),
			rl.NewVector3(-treeOffset, 0, p),
			rl.NewVector3(p, 0, treeOffset),
			rl.NewVector3(p, 0, -treeOffset),
		} {
			if inRiver(pos.Z, 1) {
				continue
			}
			c.Trees = append(c.Trees, pos)
		}
	}

	for i := -90; i <= 90; i += lampSpacing {
		if abs(i) <= lampClear {
			continue
		}
		p := float32(i)
		for _, pos := range []rl.Vector3{
			rl.NewVector3(lampOffset, 0, p),
			rl.NewVector3(-lampOffset, 0, p),
			rl.NewVector3(p, 0, lampOffset),
			rl.NewVector3(p, 0, -lampOffset),
		} {
			if inRiver(pos.Z, 1) {
				continue
			}
			c.Lamps = append(c.Lamps, pos)
		}
	}

	return c
}

// Draw renders ground, river banks, roads, buildings and trees.
func (c *CityLayout) Draw(fog *Fog) {
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawPlane(origin, rl.NewVector2(GroundSize, GroundSize), fog.Shade(groundColor, origin, 255))

	// Channel floor so the low river reads as sunk below the street
	channel := rl.NewVector3(0, -4, RiverZ)
	rl.DrawCube(channel, GroundSize, 0.1, RiverWidth, fog.Shade(bankColor, channel, 255))
	for _, side := range []float32{-1, 1} {
		wall := rl.NewVector3(0, -2, RiverZ+side*RiverWidth/2)
		rl.DrawCube(wall, GroundSize, 4, 0.2, fog.Shade(bankColor, wall, 255))
	}

	road := rl.NewVector3(0, RoadY, 0)
	roadTint := fog.Shade(roadColor, road, 255)
	rl.DrawPlane(road, rl.NewVector2(RoadWidth, GroundSize), roadTint)
	rl.DrawPlane(road, rl.NewVector2(GroundSize, RoadWidth), roadTint)

	for _, b := range c.Buildings {
		tint := fog.Shade(b.Color, b.Center, 255)
		rl.DrawCube(b.Center, b.Size.X, b.Size.Y, b.Size.Z, tint)
		rl.DrawCubeWires(b.Center, b.Size.X, b.Size.Y, b.Size.Z, fog.Shade(b.Color, b.Center, 120))
	}

	for _, t := range c.Trees {
		rl.DrawCylinder(t, 0.2, 0.2, 1, 6, fog.Shade(trunkColor, t, 255))
		crown := rl.NewVector3(t.X, 0.5, t.Z)
		rl.DrawCylinder(crown, 0, 1, 4, 8, fog.Shade(leafColor, crown, 255))
	}
}

func inRiver(z, margin float32) bool {
	return z > RiverZ-RiverWidth/2-margin && z < RiverZ+RiverWidth/2+margin
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
