// Package demio loads elevation rasters from disk into heightfield grids and
// synthesizes test terrain.
package demio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/Faultbox/terrastl/pkg/heightfield"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot read.
var ErrUnsupportedFormat = errors.New("unsupported raster format")

// RasterOptions maps raw raster pixel values to elevations.
type RasterOptions struct {
	NoData *float64 // raw value marking a missing sample
	Scale  float64  // elevation = raw*Scale + Offset; 0 means 1
	Offset float64
	Signed bool // reinterpret 16-bit samples as two's complement
}

// Load reads an elevation grid. HFG files are returned as stored; PNG and TIFF
// rasters are converted with opts.
func Load(path string, opts RasterOptions) (*heightfield.Grid, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hfg":
		return heightfield.ParseHFGFile(path)
	case ".png", ".tif", ".tiff":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening raster: %w", err)
		}
		defer f.Close()
		return DecodeRaster(f, ext, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// DecodeRaster decodes a PNG or TIFF image and converts it to a grid.
func DecodeRaster(r io.Reader, ext string, opts RasterOptions) (*heightfield.Grid, error) {
	var img image.Image
	var err error
	switch ext {
	case ".png":
		img, err = png.Decode(r)
	case ".tif", ".tiff":
		img, err = tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s raster: %w", ext, err)
	}
	return FromImage(img, opts)
}

// FromImage converts a grayscale image to a grid, one sample per pixel.
func FromImage(img image.Image, opts RasterOptions) (*heightfield.Grid, error) {
	b := img.Bounds()
	g := heightfield.New(b.Dx(), b.Dy())
	if err := g.Validate(); err != nil {
		return nil, err
	}

	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			raw := rawSample(img, b.Min.X+x, b.Min.Y+y, opts.Signed)
			if opts.NoData != nil && raw == *opts.NoData {
				g.Cells[g.Index(x, y)] = math.NaN()
				continue
			}
			g.Cells[g.Index(x, y)] = raw*scale + opts.Offset
		}
	}
	return g, nil
}

func rawSample(img image.Image, x, y int, signed bool) float64 {
	switch im := img.(type) {
	case *image.Gray16:
		v := im.Gray16At(x, y).Y
		if signed {
			return float64(int16(v))
		}
		return float64(v)
	case *image.Gray:
		return float64(im.GrayAt(x, y).Y)
	default:
		v := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
		if signed {
			return float64(int16(v))
		}
		return float64(v)
	}
}
