package heightfield

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

// createTestHFG builds a minimal HFG file for testing.
func createTestHFG(width, height uint32, samples []float32) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("HFGD")
	buf.WriteByte(1)
	buf.Write([]byte{0, 0, 0})
	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, height)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestParseHFG_ValidFile(t *testing.T) {
	data := createTestHFG(3, 2, []float32{1, 2, 3, 4, float32(math.NaN()), 6})

	g, err := ParseHFG(data)
	if err != nil {
		t.Fatalf("ParseHFG failed: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", g.Width, g.Height)
	}
	if g.At(2, 1) != 6 {
		t.Errorf("expected At(2,1) = 6, got %v", g.At(2, 1))
	}
	if !math.IsNaN(g.At(1, 1)) {
		t.Errorf("expected NaN at (1,1), got %v", g.At(1, 1))
	}
}

func TestParseHFG_InvalidMagic(t *testing.T) {
	data := createTestHFG(2, 2, []float32{0, 0, 0, 0})
	copy(data, "XXXX")
	if _, err := ParseHFG(data); !errors.Is(err, ErrInvalidHFGMagic) {
		t.Errorf("expected ErrInvalidHFGMagic, got %v", err)
	}
}

func TestParseHFG_UnsupportedVersion(t *testing.T) {
	data := createTestHFG(2, 2, []float32{0, 0, 0, 0})
	data[4] = 9
	if _, err := ParseHFG(data); !errors.Is(err, ErrUnsupportedHFGVersion) {
		t.Errorf("expected ErrUnsupportedHFGVersion, got %v", err)
	}
}

func TestParseHFG_TruncatedData(t *testing.T) {
	if _, err := ParseHFG([]byte("HFGD")); !errors.Is(err, ErrTruncatedHFGData) {
		t.Errorf("expected ErrTruncatedHFGData for short header, got %v", err)
	}

	data := createTestHFG(4, 4, []float32{1, 2, 3})
	if _, err := ParseHFG(data); !errors.Is(err, ErrTruncatedHFGData) {
		t.Errorf("expected ErrTruncatedHFGData for missing samples, got %v", err)
	}
}

func TestParseHFG_InvalidShape(t *testing.T) {
	data := createTestHFG(1, 4, []float32{1, 2, 3, 4})
	if _, err := ParseHFG(data); !errors.Is(err, ErrInvalidGridShape) {
		t.Errorf("expected ErrInvalidGridShape, got %v", err)
	}
}

func TestWriteHFG_RoundTrip(t *testing.T) {
	g := &Grid{Width: 3, Height: 2, Cells: []float64{-12.5, 0, 8848, math.NaN(), 1.25, 400}}
	path := filepath.Join(t.TempDir(), "grid.hfg")

	if err := WriteHFGFile(path, g); err != nil {
		t.Fatalf("WriteHFGFile failed: %v", err)
	}
	got, err := ParseHFGFile(path)
	if err != nil {
		t.Fatalf("ParseHFGFile failed: %v", err)
	}

	for i, want := range g.Cells {
		if math.IsNaN(want) {
			if !math.IsNaN(got.Cells[i]) {
				t.Errorf("cell %d: expected NaN, got %v", i, got.Cells[i])
			}
			continue
		}
		if got.Cells[i] != want {
			t.Errorf("cell %d: expected %v, got %v", i, want, got.Cells[i])
		}
	}
}

func TestParseHFGFile_Missing(t *testing.T) {
	if _, err := ParseHFGFile("/nonexistent/grid.hfg"); err == nil {
		t.Error("expected error for missing file")
	}
}
