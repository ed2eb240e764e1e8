package heightfield

import (
	"errors"
	"math"
	"testing"
)

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr bool
	}{
		{"2x2", Grid{Width: 2, Height: 2, Cells: make([]float64, 4)}, false},
		{"3x5", Grid{Width: 3, Height: 5, Cells: make([]float64, 15)}, false},
		{"width 1", Grid{Width: 1, Height: 4, Cells: make([]float64, 4)}, true},
		{"height 0", Grid{Width: 4, Height: 0, Cells: nil}, true},
		{"short cells", Grid{Width: 3, Height: 3, Cells: make([]float64, 8)}, true},
		{"long cells", Grid{Width: 3, Height: 3, Cells: make([]float64, 10)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGridShape) {
					t.Errorf("expected ErrInvalidGridShape, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFromCells(t *testing.T) {
	g, err := FromCells(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("FromCells failed: %v", err)
	}
	if got := g.At(1, 2); got != 6 {
		t.Errorf("expected At(1,2) = 6, got %v", got)
	}
	if got := g.At(0, 1); got != 3 {
		t.Errorf("expected At(0,1) = 3, got %v", got)
	}
	if !math.IsNaN(g.At(2, 0)) {
		t.Error("expected NaN for out of bounds read")
	}

	if _, err := FromCells(2, 2, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for mismatched cell count")
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := New(2, 2)
	c := g.Clone()
	c.Set(0, 0, 7)
	if g.At(0, 0) != 0 {
		t.Error("modifying clone changed the original")
	}
}

func TestCountInvalid(t *testing.T) {
	nan := math.NaN()
	g := &Grid{Width: 2, Height: 2, Cells: []float64{nan, 1, math.Inf(1), 2}}
	if n := g.CountInvalid(); n != 2 {
		t.Errorf("expected 2 invalid cells, got %d", n)
	}
}
