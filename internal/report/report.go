// Package report writes a generated model and its companion artifacts to
// disk: the STL itself, a grayscale preview, an elevation histogram and a
// YAML statistics summary.
package report

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terrastl/internal/mesh"
	"github.com/Faultbox/terrastl/internal/terrain"
	"github.com/Faultbox/terrastl/pkg/heightfield"
)

// HistogramBins is the number of elevation bins in the histogram plot.
const HistogramBins = 32

// Artifacts selects which companion files Write produces.
type Artifacts struct {
	Preview   bool
	Histogram bool
	Stats     bool
}

// Stats is the YAML document written next to a model.
type Stats struct {
	ID          string             `yaml:"id"`
	Source      string             `yaml:"source,omitempty"`
	DEMType     string             `yaml:"dem_type,omitempty"`
	GeneratedAt time.Time          `yaml:"generated_at"`
	Summary     terrain.Summary    `yaml:"summary"`
	Elevation   heightfield.Stats  `yaml:"elevation"`
	Dimensions  terrain.Dimensions `yaml:"dimensions"`
	Triangles   TriangleCounts     `yaml:"triangles"`
	Grid        GridShape          `yaml:"grid"`
}

// TriangleCounts mirrors mesh.Counts for the stats document.
type TriangleCounts struct {
	Terrain int `yaml:"terrain"`
	Base    int `yaml:"base"`
	Walls   int `yaml:"walls"`
	Total   int `yaml:"total"`
}

// GridShape records the sample dimensions of the meshed grid.
type GridShape struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// NewStats builds the stats document for m.
func NewStats(m *terrain.Model, source, demType string) Stats {
	return Stats{
		ID:          m.ID,
		Source:      source,
		DEMType:     demType,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Summary:     m.Stats,
		Elevation:   m.Elevation,
		Dimensions:  m.Dimensions,
		Triangles:   countsOf(m.Breakdown),
		Grid:        GridShape{Width: m.Surface.Width, Height: m.Surface.Height},
	}
}

func countsOf(c mesh.Counts) TriangleCounts {
	return TriangleCounts{
		Terrain: c.Terrain,
		Base:    c.Base,
		Walls:   c.Walls,
		Total:   c.Total(),
	}
}

// Write stores m as <dir>/<name>.stl plus the selected artifacts and returns
// the paths written, STL first.
func Write(dir, name string, m *terrain.Model, stats Stats, sel Artifacts) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	base := filepath.Join(dir, name)
	stlPath := base + ".stl"
	if err := os.WriteFile(stlPath, m.STL, 0644); err != nil {
		return nil, fmt.Errorf("writing STL: %w", err)
	}
	written := []string{stlPath}

	if sel.Preview {
		path := base + "_preview.png"
		if err := WritePreview(path, m.Preview); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if sel.Histogram {
		path := base + "_histogram.png"
		if err := WriteHistogram(path, m.Surface, HistogramBins); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if sel.Stats {
		path := base + "_stats.yaml"
		if err := WriteStats(path, stats); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WritePreview encodes img as a PNG file.
func WritePreview(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding preview: %w", err)
	}
	return f.Close()
}

// WriteHistogram plots the elevation distribution of g. The image format
// follows the file extension.
func WriteHistogram(path string, g *heightfield.Grid, bins int) error {
	values := make(plotter.Values, 0, len(g.Cells))
	for _, v := range g.Cells {
		if heightfield.IsValid(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return heightfield.ErrEmptyGrid
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Elevation distribution (%dx%d samples)", g.Width, g.Height)
	p.X.Label.Text = "Elevation"
	p.Y.Label.Text = "Samples"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("binning elevations: %w", err)
	}
	h.FillColor = color.RGBA{R: 70, G: 110, B: 160, A: 255}
	p.Add(h)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram: %w", err)
	}
	return nil
}

// WriteStats writes s as YAML.
func WriteStats(path string, s Stats) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadStats loads a stats document written by WriteStats.
func ReadStats(path string) (Stats, error) {
	var s Stats
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing stats: %w", err)
	}
	return s, nil
}
