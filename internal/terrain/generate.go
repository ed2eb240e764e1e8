// Package terrain runs the full heightfield to STL pipeline: gap filling,
// smoothing, meshing and serialization.
package terrain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/terrastl/internal/logger"
	"github.com/Faultbox/terrastl/internal/mesh"
	"github.com/Faultbox/terrastl/pkg/heightfield"
	"github.com/Faultbox/terrastl/pkg/stl"
)

// ErrSizeMismatch is returned when an encoded STL disagrees with the mesh it
// was built from.
var ErrSizeMismatch = errors.New("encoded STL does not match triangle count")

// DefaultHeader is used when no header option is given.
const DefaultHeader = "Terrain model"

// Summary reports the elevation range and scaling of a generated model.
type Summary struct {
	MinElevation        float64 `yaml:"min_elevation" json:"min_elevation"`
	MaxElevation        float64 `yaml:"max_elevation" json:"max_elevation"`
	ElevationRange      float64 `yaml:"elevation_range" json:"elevation_range"`
	MaxModelHeightMM    float64 `yaml:"max_model_height_mm" json:"max_model_height_mm"`
	TriangleCount       uint32  `yaml:"triangle_count" json:"triangle_count"`
	VerticalScaleFactor float64 `yaml:"vertical_scale_factor" json:"vertical_scale_factor"`
	BaseScalingFactor   float64 `yaml:"base_scaling_factor" json:"base_scaling_factor"`
}

// Dimensions is the physical size of the printed model.
type Dimensions struct {
	WidthMM  float64 `yaml:"width_mm" json:"width_mm"`
	LengthMM float64 `yaml:"length_mm" json:"length_mm"`
	HeightMM float64 `yaml:"height_mm" json:"height_mm"`
}

// Model is the result of Generate.
type Model struct {
	ID            string
	STL           []byte
	TriangleCount uint32
	Stats         Summary
	Elevation     heightfield.Stats // full statistics of Surface
	Breakdown     mesh.Counts
	Dimensions    Dimensions

	// Surface is the filled and smoothed grid the mesh was built from.
	Surface *heightfield.Grid
	Preview *image.Gray
}

// Option configures Generate.
type Option func(*options)

type options struct {
	header  string
	workers int
}

// WithHeader sets the STL header text.
func WithHeader(h string) Option {
	return func(o *options) {
		o.header = h
	}
}

// WithWorkers bounds row parallelism in every stage.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Generate converts a raw elevation grid into a binary STL solid.
//
// The input grid is never modified. Missing samples are filled, the result
// is smoothed according to s.Smoothness, and the mesh and preview are both
// derived from that smoothed grid.
func Generate(g *heightfield.Grid, s mesh.Settings, opts ...Option) (*Model, error) {
	o := options{header: DefaultHeader}
	for _, opt := range opts {
		opt(&o)
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validating grid: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := logger.Named("terrain").With(zap.String("request_id", id))
	workers := heightfield.WithWorkers(o.workers)

	start := time.Now()
	missing := g.CountInvalid()
	filled := heightfield.FillGaps(g, workers)
	log.Debug("gaps filled",
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
		zap.Int("missing", missing),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	surface := heightfield.Smooth(filled, s.Smoothness, workers)
	log.Debug("grid smoothed",
		zap.Int("passes", heightfield.SmoothIterations(s.Smoothness)),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	m, sc, err := mesh.Build(surface, s, workers)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	counts := mesh.Breakdown(surface.Width, surface.Height)
	log.Debug("mesh built",
		zap.Int("terrain", counts.Terrain),
		zap.Int("base", counts.Base),
		zap.Int("walls", counts.Walls),
		zap.Duration("elapsed", time.Since(start)))

	data := stl.Marshal(o.header, m.Triangles)
	count := uint32(len(m.Triangles))
	if err := checkEncoded(data, count); err != nil {
		return nil, err
	}

	model := &Model{
		ID:            id,
		STL:           data,
		TriangleCount: count,
		Stats: Summary{
			MinElevation:        sc.Stats.Min,
			MaxElevation:        sc.Stats.Max,
			ElevationRange:      sc.Stats.Range,
			MaxModelHeightMM:    sc.MaxModelHeightMM,
			TriangleCount:       count,
			VerticalScaleFactor: sc.VerticalExaggeration,
			BaseScalingFactor:   sc.BaseScale,
		},
		Elevation: sc.Stats,
		Breakdown: counts,
		Dimensions: Dimensions{
			WidthMM:  s.WidthMM,
			LengthMM: s.LengthMM,
			HeightMM: m.Bounds.Max[2],
		},
		Surface: surface,
		Preview: heightfield.Preview(surface, sc.Stats),
	}

	log.Info("model generated",
		zap.Uint32("triangles", count),
		zap.Int("bytes", len(data)),
		zap.Float64("height_mm", sc.MaxModelHeightMM))
	return model, nil
}

// checkEncoded verifies that data records count triangles in its preamble
// and holds exactly that many.
func checkEncoded(data []byte, count uint32) error {
	if len(data) < stl.PreambleSize {
		return fmt.Errorf("%w: %d bytes is shorter than the preamble", ErrSizeMismatch, len(data))
	}
	if stored := binary.LittleEndian.Uint32(data[stl.HeaderSize:stl.PreambleSize]); stored != count {
		return fmt.Errorf("%w: header records %d triangles, mesh has %d", ErrSizeMismatch, stored, count)
	}
	if len(data) != stl.EncodedSize(int(count)) {
		return fmt.Errorf("%w: %d bytes for %d triangles", ErrSizeMismatch, len(data), count)
	}
	return nil
}
