// Package heightfield provides elevation grids and the numeric stages that
// prepare them for meshing: gap filling, smoothing and statistics.
package heightfield

import (
	"errors"
	"fmt"
	"math"
)

// Grid errors.
var (
	ErrInvalidGridShape = errors.New("invalid grid shape")
	ErrEmptyGrid        = errors.New("empty grid")
)

// MinDimension is the smallest width or height a grid may have.
const MinDimension = 2

// Grid is a row-major rectangular grid of elevation samples.
// Invalid samples are stored as NaN.
type Grid struct {
	Width  int
	Height int
	Cells  []float64
}

// New allocates a grid of the given size with every cell set to zero.
func New(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]float64, width*height),
	}
}

// FromCells wraps existing samples in a grid and validates its shape.
func FromCells(width, height int, cells []float64) (*Grid, error) {
	g := &Grid{Width: width, Height: height, Cells: cells}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the structural invariants of the grid.
func (g *Grid) Validate() error {
	if g.Width < MinDimension || g.Height < MinDimension {
		return fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrInvalidGridShape,
			g.Width, g.Height, MinDimension, MinDimension)
	}
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGridShape,
			len(g.Cells), g.Width, g.Height)
	}
	return nil
}

// Index returns the offset of (x, y) in Cells.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the sample at (x, y). Out of bounds reads return NaN.
func (g *Grid) At(x, y int) float64 {
	if !g.InBounds(x, y) {
		return math.NaN()
	}
	return g.Cells[g.Index(x, y)]
}

// Set stores v at (x, y). Out of bounds writes are ignored.
func (g *Grid) Set(x, y int, v float64) {
	if g.InBounds(x, y) {
		g.Cells[g.Index(x, y)] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]float64, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// CountInvalid returns the number of non-finite samples.
func (g *Grid) CountInvalid() int {
	n := 0
	for _, v := range g.Cells {
		if !IsValid(v) {
			n++
		}
	}
	return n
}

// IsValid reports whether v is a usable elevation sample.
func IsValid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
