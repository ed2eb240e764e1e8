package heightfield

import (
	"image"
	"image/color"
)

// Preview renders g as a grayscale raster, black at stats.Min and white at
// stats.Max. Flat grids render black. Row 0 of the grid is row 0 of the image.
func Preview(g *Grid, stats Stats) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var level float64
			if stats.Range > 0 {
				level = (g.Cells[g.Index(x, y)] - stats.Min) / stats.Range
			}
			img.SetGray(x, y, color.Gray{Y: toByte(level)})
		}
	}
	return img
}

func toByte(level float64) uint8 {
	switch {
	case !(level > 0):
		return 0
	case level >= 1:
		return 255
	default:
		return uint8(level*255 + 0.5)
	}
}
