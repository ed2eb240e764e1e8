// Package config handles terrastl configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Faultbox/terrastl/internal/mesh"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings for a generation run.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Source     SourceConfig     `yaml:"source"`
	Output     OutputConfig     `yaml:"output"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ModelConfig holds the physical print settings.
type ModelConfig struct {
	WidthMM              float64 `yaml:"width_mm"` // 0 derives width from source bounds
	LengthMM             float64 `yaml:"length_mm"`
	VerticalExaggeration float64 `yaml:"vertical_exaggeration"`
	Smoothness           float64 `yaml:"smoothness"`
	Header               string  `yaml:"header"`
}

// SourceConfig describes where elevation samples came from and how raw
// raster values map to elevations.
type SourceConfig struct {
	DEMType         string   `yaml:"dem_type"`
	Bounds          *Bounds  `yaml:"bounds,omitempty"`
	NoData          *float64 `yaml:"nodata,omitempty"`
	ElevationScale  float64  `yaml:"elevation_scale"`
	ElevationOffset float64  `yaml:"elevation_offset"`
}

// OutputConfig selects which artifacts are written next to the STL.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Preview   bool   `yaml:"preview"`
	Histogram bool   `yaml:"histogram"`
	Stats     bool   `yaml:"stats"`
}

// ProcessingConfig holds pipeline tuning.
type ProcessingConfig struct {
	Workers int `yaml:"workers"` // 0 uses GOMAXPROCS
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultHeader is written into the STL header unless overridden.
const DefaultHeader = "Terrain model generated by terrastl"

// DefaultLengthMM is the model length used when none is configured.
const DefaultLengthMM = 100.0

// DEMTypes lists the OpenTopography global DEM products a source may name.
var DEMTypes = []string{
	"SRTMGL3",
	"SRTMGL1",
	"SRTMGL1_E",
	"AW3D30",
	"AW3D30_E",
	"SRTM15Plus",
	"NASADEM",
	"COP30",
	"COP90",
	"EU_DTM",
	"GEDI_L3",
	"GEBCOIceTopo",
	"GEBCOSubIceTopo",
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			WidthMM:              0,
			LengthMM:             DefaultLengthMM,
			VerticalExaggeration: 1,
			Smoothness:           0,
			Header:               DefaultHeader,
		},
		Source: SourceConfig{
			DEMType:        "SRTMGL1",
			ElevationScale: 1,
		},
		Output: OutputConfig{
			Dir:     ".",
			Preview: true,
			Stats:   true,
		},
		Processing: ProcessingConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	m := c.Model
	if !(m.LengthMM > 0) || math.IsInf(m.LengthMM, 0) {
		return fmt.Errorf("%w: model.length_mm must be positive, got %v", ErrInvalidConfig, m.LengthMM)
	}
	if m.WidthMM < 0 || math.IsNaN(m.WidthMM) || math.IsInf(m.WidthMM, 0) {
		return fmt.Errorf("%w: model.width_mm must be positive or 0, got %v", ErrInvalidConfig, m.WidthMM)
	}
	if m.Smoothness < 0 || math.IsNaN(m.Smoothness) {
		return fmt.Errorf("%w: model.smoothness must not be negative, got %v", ErrInvalidConfig, m.Smoothness)
	}
	if math.IsNaN(m.VerticalExaggeration) {
		return fmt.Errorf("%w: model.vertical_exaggeration is NaN", ErrInvalidConfig)
	}
	if !slices.Contains(DEMTypes, c.Source.DEMType) {
		return fmt.Errorf("%w: unknown source.dem_type %q", ErrInvalidConfig, c.Source.DEMType)
	}
	if b := c.Source.Bounds; b != nil {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: source.bounds: %v", ErrInvalidConfig, err)
		}
	}
	if c.Source.ElevationScale == 0 {
		return fmt.Errorf("%w: source.elevation_scale must not be 0", ErrInvalidConfig)
	}
	if c.Processing.Workers < 0 {
		return fmt.Errorf("%w: processing.workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ModelSettings returns the print settings, deriving the width from the
// source bounds' aspect ratio when model.width_mm is 0.
func (c *Config) ModelSettings() mesh.Settings {
	width := c.Model.WidthMM
	if width == 0 {
		width = c.Model.LengthMM
		if b := c.Source.Bounds; b != nil {
			if ratio := b.AspectRatio(); ratio > 0 {
				width = c.Model.LengthMM * ratio
			}
		}
	}
	return mesh.Settings{
		WidthMM:              width,
		LengthMM:             c.Model.LengthMM,
		VerticalExaggeration: c.Model.VerticalExaggeration,
		Smoothness:           c.Model.Smoothness,
	}
}
