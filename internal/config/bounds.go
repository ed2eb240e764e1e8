package config

import (
	"fmt"
	"math"
)

// kmPerDegree is the approximate length of one degree of latitude.
const kmPerDegree = 111.32

// Bounds is a geographic rectangle in decimal degrees.
type Bounds struct {
	South float64 `yaml:"south"`
	West  float64 `yaml:"west"`
	North float64 `yaml:"north"`
	East  float64 `yaml:"east"`
}

// Validate checks that the rectangle is well formed.
func (b Bounds) Validate() error {
	if b.South < -90 || b.North > 90 || !(b.North > b.South) {
		return fmt.Errorf("latitudes %v..%v out of order or range", b.South, b.North)
	}
	if b.West < -180 || b.East > 180 || !(b.East > b.West) {
		return fmt.Errorf("longitudes %v..%v out of order or range", b.West, b.East)
	}
	return nil
}

// WidthKM returns the approximate east-west extent at the middle latitude.
func (b Bounds) WidthKM() float64 {
	midLat := (b.North + b.South) / 2 * math.Pi / 180
	return (b.East - b.West) * kmPerDegree * math.Cos(midLat)
}

// LengthKM returns the approximate north-south extent.
func (b Bounds) LengthKM() float64 {
	return (b.North - b.South) * kmPerDegree
}

// AspectRatio returns width over length of the rectangle on the ground.
func (b Bounds) AspectRatio() float64 {
	l := b.LengthKM()
	if l == 0 {
		return 0
	}
	return b.WidthKM() / l
}
