// Package inspect reads a binary STL back and summarises the solid it holds.
package inspect

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/Faultbox/terrastl/pkg/stl"
)

// Report describes a parsed STL solid.
type Report struct {
	Header     string
	Triangles  int
	Degenerate int // triangles with zero area or a zero stored normal
	Min        model3d.Coord3D
	Max        model3d.Coord3D
	Area       float64 // total surface area in mm^2
}

// Size returns the bounding box extent.
func (r *Report) Size() model3d.Coord3D {
	return r.Max.Sub(r.Min)
}

// File inspects the STL file at path.
func File(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "inspect")
	}
	defer f.Close()
	return Read(f)
}

// Read inspects a binary STL from r.
func Read(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read STL")
	}
	parsed, err := stl.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse STL")
	}
	if len(parsed.Facets) == 0 {
		return nil, errors.New("parse STL: no triangles")
	}

	report := &Report{
		Header:    parsed.HeaderText(),
		Triangles: len(parsed.Facets),
	}
	triangles := make([]*model3d.Triangle, len(parsed.Facets))
	for i, facet := range parsed.Facets {
		t := toTriangle(facet)
		triangles[i] = t

		area := triangleArea(t)
		report.Area += area
		if area == 0 || facet.Normal == ([3]float32{}) {
			report.Degenerate++
		}
	}

	collider := model3d.MeshToCollider(model3d.NewMeshTriangles(triangles))
	report.Min = collider.Min()
	report.Max = collider.Max()
	return report, nil
}

func triangleArea(t *model3d.Triangle) float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Norm() / 2
}

func toTriangle(f stl.Facet) *model3d.Triangle {
	var t model3d.Triangle
	for i, v := range f.Vertices {
		t[i] = model3d.Coord3D{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
	}
	return &t
}
