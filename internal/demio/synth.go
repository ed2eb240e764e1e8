package demio

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/terrastl/pkg/heightfield"
)

// SynthOptions controls synthetic terrain generation.
type SynthOptions struct {
	Width, Height int
	Seed          int64
	BaseElevation float64 // mean elevation in metres
	Amplitude     float64 // peak deviation from the base
	FeatureSize   float64 // samples per noise period
	HoleFraction  float64 // share of samples replaced by NaN
}

// DefaultSynthOptions returns a hilly 128x128 tile.
func DefaultSynthOptions() SynthOptions {
	return SynthOptions{
		Width:         128,
		Height:        128,
		Seed:          1,
		BaseElevation: 1200,
		Amplitude:     800,
		FeatureSize:   48,
	}
}

// Perlin noise parameters: persistence, lacunarity and octaves.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 4
)

// Synthesize builds a deterministic Perlin-noise heightfield. The same
// options always produce the same grid.
func Synthesize(opts SynthOptions) *heightfield.Grid {
	g := heightfield.New(opts.Width, opts.Height)
	feature := opts.FeatureSize
	if feature <= 0 {
		feature = 1
	}

	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, opts.Seed)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			n := p.Noise2D(float64(x)/feature, float64(y)/feature)
			g.Cells[g.Index(x, y)] = opts.BaseElevation + opts.Amplitude*n
		}
	}

	if opts.HoleFraction > 0 {
		rng := rand.New(rand.NewSource(opts.Seed))
		for i := range g.Cells {
			if rng.Float64() < opts.HoleFraction {
				g.Cells[i] = math.NaN()
			}
		}
	}
	return g
}
