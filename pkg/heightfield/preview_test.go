package heightfield

import "testing"

func TestPreview(t *testing.T) {
	g := &Grid{Width: 2, Height: 2, Cells: []float64{100, 150, 175, 200}}
	s, err := ComputeStats(g)
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}

	img := Preview(g, s)
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("expected 2x2 image, got %v", b)
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0},
		{1, 0, 128},
		{0, 1, 191},
		{1, 1, 255},
	}
	for _, tt := range tests {
		if got := img.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("pixel (%d,%d): expected %d, got %d", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestPreview_Flat(t *testing.T) {
	g := New(3, 2)
	s, _ := ComputeStats(g)
	img := Preview(g, s)
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatalf("expected black preview for flat grid, got %d", p)
		}
	}
}
