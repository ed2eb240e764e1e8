package heightfield

// Gap filling constants.
const (
	// MaxSearchRadius is the largest ring searched around a gap before
	// falling back to the global mean.
	MaxSearchRadius = 5

	// DefaultElevation is used when a grid has no valid samples at all.
	DefaultElevation = 500.0
)

// FillGaps returns a copy of g where every invalid sample is replaced.
//
// A gap takes the mean of the valid samples among its 8 neighbours. If there
// are none, square rings of radius 2 through MaxSearchRadius are scanned and
// the first ring holding valid samples supplies the mean. Gaps that are still
// unresolved take the mean of every valid sample in the grid, or
// DefaultElevation when the grid has none.
//
// Neighbourhoods are always read from g, never from already filled cells, so
// the result does not depend on fill order.
func FillGaps(g *Grid, opts ...Option) *Grid {
	o := buildOptions(opts)
	out := g.Clone()

	globalSum, globalCount := 0.0, 0
	for _, v := range g.Cells {
		if IsValid(v) {
			globalSum += v
			globalCount++
		}
	}
	if globalCount == 0 {
		for i := range out.Cells {
			out.Cells[i] = DefaultElevation
		}
		return out
	}
	if globalCount == len(g.Cells) {
		return out
	}
	globalMean := globalSum / float64(globalCount)

	ForEachBand(g.Height, o.workers, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < g.Width; x++ {
				idx := g.Index(x, y)
				if IsValid(g.Cells[idx]) {
					continue
				}
				if v, ok := interpolate(g, x, y); ok {
					out.Cells[idx] = v
				} else {
					out.Cells[idx] = globalMean
				}
			}
		}
	})

	return out
}

// interpolate averages the valid samples of the nearest non-empty ring
// around (x, y).
func interpolate(g *Grid, x, y int) (float64, bool) {
	for radius := 1; radius <= MaxSearchRadius; radius++ {
		sum, count := ringSum(g, x, y, radius)
		if count > 0 {
			return sum / float64(count), true
		}
	}
	return 0, false
}

// ringSum sums the valid samples on the square ring of the given radius,
// skipping cells strictly inside it.
func ringSum(g *Grid, x, y, radius int) (float64, int) {
	var sum float64
	var count int
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if absInt(dx) < radius && absInt(dy) < radius {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if v := g.Cells[g.Index(nx, ny)]; IsValid(v) {
				sum += v
				count++
			}
		}
	}
	return sum, count
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
