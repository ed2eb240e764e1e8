package heightfield

import "math"

// MaxSmoothIterations caps the number of blur passes.
const MaxSmoothIterations = 5

// SmoothIterations returns the number of blur passes for a smoothness level.
func SmoothIterations(level float64) int {
	if level <= 0 || math.IsNaN(level) {
		return 0
	}
	return int(math.Min(MaxSmoothIterations, math.Ceil(level)))
}

// Smooth applies repeated 3x3 box blurs to g. A level of zero or less
// returns g itself.
//
// Each pass replaces a cell with the mean of itself and its in-bounds
// neighbours and reads only the previous pass's output.
func Smooth(g *Grid, level float64, opts ...Option) *Grid {
	iterations := SmoothIterations(level)
	if iterations == 0 {
		return g
	}
	o := buildOptions(opts)

	src := g
	for n := 0; n < iterations; n++ {
		dst := New(g.Width, g.Height)
		ForEachBand(g.Height, o.workers, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < g.Width; x++ {
					dst.Cells[dst.Index(x, y)] = boxMean(src, x, y)
				}
			}
		})
		src = dst
	}
	return src
}

func boxMean(g *Grid, x, y int) float64 {
	var sum float64
	var count int
	for ny := max(0, y-1); ny <= min(g.Height-1, y+1); ny++ {
		for nx := max(0, x-1); nx <= min(g.Width-1, x+1); nx++ {
			sum += g.Cells[g.Index(nx, ny)]
			count++
		}
	}
	return sum / float64(count)
}
