package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/terrastl/pkg/heightfield"
	"github.com/Faultbox/terrastl/pkg/stl"
)

// Build errors.
var (
	ErrInvalidSettings = errors.New("invalid model settings")
	ErrUnfilledGrid    = errors.New("grid contains invalid samples")
)

// Validate checks that the physical dimensions are usable.
func (s Settings) Validate() error {
	if !(s.WidthMM > 0) || math.IsInf(s.WidthMM, 0) {
		return fmt.Errorf("%w: width %v mm", ErrInvalidSettings, s.WidthMM)
	}
	if !(s.LengthMM > 0) || math.IsInf(s.LengthMM, 0) {
		return fmt.Errorf("%w: length %v mm", ErrInvalidSettings, s.LengthMM)
	}
	return nil
}

// ComputeScaling derives the vertical and horizontal scale of a model from
// grid statistics and print settings.
func ComputeScaling(g *heightfield.Grid, stats heightfield.Stats, s Settings) Scaling {
	target := TargetHeightRatio * math.Max(s.WidthMM, s.LengthMM)

	// A flat grid gets a zero scale and therefore a flat top at the base
	// thickness.
	var base float64
	if stats.Range > 0 {
		base = target / stats.Range
	}
	exaggeration := s.Exaggeration()
	final := base * exaggeration

	return Scaling{
		Stats:                stats,
		TargetHeightMM:       target,
		BaseScale:            base,
		VerticalExaggeration: exaggeration,
		FinalScale:           final,
		MaxModelHeightMM:     BaseThicknessMM + stats.Range*final,
		CellWidthMM:          s.WidthMM / float64(g.Width-1),
		CellLengthMM:         s.LengthMM / float64(g.Height-1),
	}
}

// Build creates the printable solid for a filled grid.
//
// Triangles are ordered: the two base triangles, then for each cell in
// row-major order its two top triangles followed by its left, right, front
// and back wall triangles where the cell touches that side of the grid.
// Rows are emitted concurrently and joined in order, so the result is the
// same for any worker count.
func Build(g *heightfield.Grid, s Settings, opts ...heightfield.Option) (*Mesh, Scaling, error) {
	if err := g.Validate(); err != nil {
		return nil, Scaling{}, err
	}
	if err := s.Validate(); err != nil {
		return nil, Scaling{}, err
	}
	if n := g.CountInvalid(); n > 0 {
		return nil, Scaling{}, fmt.Errorf("%w: %d cells", ErrUnfilledGrid, n)
	}

	stats, err := heightfield.ComputeStats(g)
	if err != nil {
		return nil, Scaling{}, err
	}
	sc := ComputeScaling(g, stats, s)

	capacity := Capacity(g.Width, g.Height)
	tris := make([]stl.Triangle, 0, capacity)

	// Base plate at z=0.
	base := emitter{tris: tris}
	base.add(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{s.WidthMM, 0, 0}, mgl64.Vec3{0, s.LengthMM, 0})
	base.add(mgl64.Vec3{s.WidthMM, 0, 0}, mgl64.Vec3{s.WidthMM, s.LengthMM, 0}, mgl64.Vec3{0, s.LengthMM, 0})
	tris = base.tris

	cellRows := g.Height - 1
	rows := make([][]stl.Triangle, cellRows)
	heightfield.ForEachBand(cellRows, heightfield.Workers(opts...), func(start, end int) {
		for y := start; y < end; y++ {
			rows[y] = buildRow(g, sc, y)
		}
	})

	tris, err = appendRows(tris, rows, capacity)
	if err != nil {
		return nil, Scaling{}, err
	}

	return &Mesh{Triangles: tris, Bounds: computeBounds(tris)}, sc, nil
}

// appendRows joins rows onto tris in order. It fails without returning a
// partial mesh if the result would hold more than capacity triangles.
func appendRows(tris []stl.Triangle, rows [][]stl.Triangle, capacity int) ([]stl.Triangle, error) {
	for y, row := range rows {
		if len(tris)+len(row) > capacity {
			return nil, fmt.Errorf("%w: row %d brings %d triangles past capacity %d",
				ErrCapacityExceeded, y, len(tris)+len(row)-capacity, capacity)
		}
		tris = append(tris, row...)
	}
	return tris, nil
}

// buildRow emits the top surface and wall triangles of cell row y.
func buildRow(g *heightfield.Grid, sc Scaling, y int) []stl.Triangle {
	e := emitter{tris: make([]stl.Triangle, 0, rowCapacity(g.Width, g.Height, y))}

	y1 := float64(y) * sc.CellLengthMM
	y2 := float64(y+1) * sc.CellLengthMM

	for x := 0; x < g.Width-1; x++ {
		// Corner heights: 1=(x,y) 2=(x+1,y) 3=(x,y+1) 4=(x+1,y+1)
		z1 := sc.HeightAt(g.Cells[g.Index(x, y)])
		z2 := sc.HeightAt(g.Cells[g.Index(x+1, y)])
		z3 := sc.HeightAt(g.Cells[g.Index(x, y+1)])
		z4 := sc.HeightAt(g.Cells[g.Index(x+1, y+1)])

		x1 := float64(x) * sc.CellWidthMM
		x2 := float64(x+1) * sc.CellWidthMM

		// Top surface
		e.add(mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x1, y2, z3})
		e.add(mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x2, y2, z4}, mgl64.Vec3{x1, y2, z3})

		if x == 0 {
			// Left wall
			e.add(mgl64.Vec3{x1, y1, 0}, mgl64.Vec3{x1, y2, 0}, mgl64.Vec3{x1, y1, z1})
			e.add(mgl64.Vec3{x1, y2, 0}, mgl64.Vec3{x1, y2, z3}, mgl64.Vec3{x1, y1, z1})
		}
		if x == g.Width-2 {
			// Right wall
			e.add(mgl64.Vec3{x2, y1, 0}, mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x2, y2, 0})
			e.add(mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x2, y2, z4}, mgl64.Vec3{x2, y2, 0})
		}
		if y == 0 {
			// Front wall
			e.add(mgl64.Vec3{x1, y1, 0}, mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y1, 0})
			e.add(mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x2, y1, 0})
		}
		if y == g.Height-2 {
			// Back wall
			e.add(mgl64.Vec3{x1, y2, 0}, mgl64.Vec3{x2, y2, 0}, mgl64.Vec3{x1, y2, z3})
			e.add(mgl64.Vec3{x2, y2, 0}, mgl64.Vec3{x2, y2, z4}, mgl64.Vec3{x1, y2, z3})
		}
	}

	return e.tris
}

// emitter appends triangles with their computed normals.
type emitter struct {
	tris []stl.Triangle
}

func (e *emitter) add(v0, v1, v2 mgl64.Vec3) {
	e.tris = append(e.tris, stl.Triangle{
		Normal:   Normal(v0, v1, v2),
		Vertices: [3]mgl64.Vec3{v0, v1, v2},
	})
}

func computeBounds(tris []stl.Triangle) Bounds {
	b := Bounds{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for i := range tris {
		for _, v := range tris[i].Vertices {
			updateBounds(&b, v)
		}
	}
	return b
}

func updateBounds(b *Bounds, p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}
