package mesh

import "errors"

// ErrCapacityExceeded is returned when emission produces more triangles than
// Capacity allows for the grid.
var ErrCapacityExceeded = errors.New("mesh triangle capacity exceeded")

// Breakdown returns the triangle counts Build emits for a width x height grid.
//
// Every boundary cell contributes one wall quad per grid side it touches, so
// the perimeter holds 2*(width-1) + 2*(height-1) wall quads. Corner cells
// count once for each of their two sides.
func Breakdown(width, height int) Counts {
	if width < 2 || height < 2 {
		return Counts{}
	}
	cellsX, cellsY := width-1, height-1
	perimeterQuads := 2*cellsX + 2*cellsY
	return Counts{
		Terrain: 2 * cellsX * cellsY,
		Base:    2,
		Walls:   2 * perimeterQuads,
	}
}

// Capacity returns the exact number of triangles in a solid built from a
// width x height grid.
func Capacity(width, height int) int {
	return Breakdown(width, height).Total()
}

// rowCapacity returns the number of triangles emitted for cell row y.
func rowCapacity(width, height, y int) int {
	cellsX := width - 1
	n := 2*cellsX + 4 // top surface, left and right walls
	if y == 0 {
		n += 2 * cellsX
	}
	if y == height-2 {
		n += 2 * cellsX
	}
	return n
}
