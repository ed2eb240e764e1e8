package heightfield

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the elevations of a grid.
type Stats struct {
	Min    float64 `yaml:"min" json:"min"`
	Max    float64 `yaml:"max" json:"max"`
	Mean   float64 `yaml:"mean" json:"mean"`
	Range  float64 `yaml:"range" json:"range"`
	StdDev float64 `yaml:"std_dev" json:"std_dev"` // population standard deviation
}

// ComputeStats returns min, max, mean, range and population standard
// deviation of every cell in g.
func ComputeStats(g *Grid) (Stats, error) {
	if g == nil || len(g.Cells) == 0 {
		return Stats{}, ErrEmptyGrid
	}
	return statsOf(g.Cells), nil
}

func statsOf(values []float64) Stats {
	lo := floats.Min(values)
	hi := floats.Max(values)
	mean, std := stat.PopMeanStdDev(values, nil)
	return Stats{
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		Range:  hi - lo,
		StdDev: std,
	}
}
