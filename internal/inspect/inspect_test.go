package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"

	"github.com/Faultbox/terrastl/internal/mesh"
	"github.com/Faultbox/terrastl/internal/terrain"
	"github.com/Faultbox/terrastl/pkg/heightfield"
	"github.com/Faultbox/terrastl/pkg/stl"
)

func flatModel(t *testing.T) *terrain.Model {
	t.Helper()
	g, err := heightfield.FromCells(2, 2, []float64{7, 7, 7, 7})
	require.NoError(t, err)
	m, err := terrain.Generate(g, mesh.Settings{WidthMM: 10, LengthMM: 20}, terrain.WithHeader("flat"))
	require.NoError(t, err)
	return m
}

func TestRead_FlatSolid(t *testing.T) {
	m := flatModel(t)

	r, err := Read(bytes.NewReader(m.STL))
	require.NoError(t, err)

	assert.Equal(t, "flat", r.Header)
	assert.Equal(t, 12, r.Triangles)
	assert.Equal(t, 0, r.Degenerate)
	assert.Equal(t, model3d.Coord3D{}, r.Min)
	assert.Equal(t, model3d.Coord3D{X: 10, Y: 20, Z: mesh.BaseThicknessMM}, r.Max)

	// base + top + two 10x2 walls + two 20x2 walls
	assert.InDelta(t, 200+200+40+80, r.Area, 1e-6)
}

func TestFile(t *testing.T) {
	g := heightfield.New(5, 4)
	for i := range g.Cells {
		g.Cells[i] = float64(i % 7)
	}
	m, err := terrain.Generate(g, mesh.Settings{WidthMM: 40, LengthMM: 30, VerticalExaggeration: 1.5})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(path, m.STL, 0644))

	r, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, int(m.TriangleCount), r.Triangles)
	assert.InDelta(t, m.Dimensions.HeightMM, r.Max.Z, 1e-3)
	assert.InDelta(t, 40, r.Size().X, 1e-4)
	assert.InDelta(t, 30, r.Size().Y, 1e-4)
}

func TestRead_Truncated(t *testing.T) {
	m := flatModel(t)
	_, err := Read(bytes.NewReader(m.STL[:len(m.STL)-10]))
	require.Error(t, err)
	assert.ErrorIs(t, err, stl.ErrTruncatedSTLData)
}

func TestRead_Empty(t *testing.T) {
	data := stl.Marshal("empty", nil)
	_, err := Read(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.stl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
