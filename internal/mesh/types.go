// Package mesh turns a filled elevation grid into a closed, printable solid:
// a terrain top surface, perimeter walls and a flat base.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/terrastl/pkg/heightfield"
	"github.com/Faultbox/terrastl/pkg/stl"
)

// Fixed model geometry.
const (
	// BaseThicknessMM is the height of the solid below the lowest sample.
	BaseThicknessMM = 2.0

	// TargetHeightRatio sets the unexaggerated relief height as a fraction
	// of the longest horizontal side.
	TargetHeightRatio = 0.3
)

// Settings holds the physical print dimensions of a model.
type Settings struct {
	WidthMM              float64 // extent along X
	LengthMM             float64 // extent along Y
	VerticalExaggeration float64 // clamped to at least 1
	Smoothness           float64 // blur level applied before meshing
}

// Exaggeration returns the effective vertical exaggeration.
func (s Settings) Exaggeration() float64 {
	if !(s.VerticalExaggeration > 1) {
		return 1
	}
	return s.VerticalExaggeration
}

// Scaling describes how grid elevations were mapped to model heights.
type Scaling struct {
	Stats                heightfield.Stats
	TargetHeightMM       float64
	BaseScale            float64 // mm per elevation unit before exaggeration
	VerticalExaggeration float64
	FinalScale           float64 // BaseScale * VerticalExaggeration
	MaxModelHeightMM     float64 // base thickness plus relief height
	CellWidthMM          float64
	CellLengthMM         float64
}

// HeightAt maps an elevation to a model-space z coordinate.
func (s Scaling) HeightAt(elevation float64) float64 {
	return BaseThicknessMM + (elevation-s.Stats.Min)*s.FinalScale
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh is an ordered triangle soup forming the printable solid.
type Mesh struct {
	Triangles []stl.Triangle
	Bounds    Bounds
}

// Counts breaks a triangle total down by part of the solid.
type Counts struct {
	Terrain int
	Base    int
	Walls   int
}

// Total returns the sum of all parts.
func (c Counts) Total() int {
	return c.Terrain + c.Base + c.Walls
}
