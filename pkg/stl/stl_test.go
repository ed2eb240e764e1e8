package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func sampleTriangles() []Triangle {
	return []Triangle{
		{
			Normal:   mgl64.Vec3{0, 0, 1},
			Vertices: [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		},
		{
			Normal:   mgl64.Vec3{0, 0, 1},
			Vertices: [3]mgl64.Vec3{{1, 0, 0.1}, {1, 1, 2.000000001}, {0, 1, 1.0 / 3}},
		},
	}
}

func TestMarshal_Layout(t *testing.T) {
	tris := sampleTriangles()
	data := Marshal("terrain", tris)

	if len(data) != 84+50*len(tris) {
		t.Fatalf("expected %d bytes, got %d", 84+50*len(tris), len(data))
	}
	if got := string(data[:7]); got != "terrain" {
		t.Errorf("expected header text 'terrain', got %q", got)
	}
	for i := 7; i < HeaderSize; i++ {
		if data[i] != 0 {
			t.Fatalf("header byte %d not zero padded: %d", i, data[i])
		}
	}
	if n := binary.LittleEndian.Uint32(data[80:84]); n != 2 {
		t.Errorf("expected triangle count 2, got %d", n)
	}

	// Second triangle, vertex 1, z component.
	off := 84 + 50 + 12 + 12 + 8
	z := math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	if z != float32(2.000000001) {
		t.Errorf("expected z %v, got %v", float32(2.000000001), z)
	}
	if attr := binary.LittleEndian.Uint16(data[84+48 : 84+50]); attr != 0 {
		t.Errorf("expected attribute byte count 0, got %d", attr)
	}
}

func TestMarshal_HeaderTruncated(t *testing.T) {
	long := strings.Repeat("x", 100)
	data := Marshal(long, nil)
	if len(data) != 84 {
		t.Fatalf("expected 84 bytes for empty mesh, got %d", len(data))
	}
	if string(data[:80]) != long[:80] {
		t.Error("expected header to hold the first 80 bytes of the text")
	}
	if n := binary.LittleEndian.Uint32(data[80:84]); n != 0 {
		t.Errorf("expected triangle count 0, got %d", n)
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	tris := sampleTriangles()
	a := Marshal("h", tris)
	b := Marshal("h", tris)
	if !bytes.Equal(a, b) {
		t.Error("serializing the same mesh twice produced different bytes")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, "h", tris); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(a, buf.Bytes()) {
		t.Error("Encode output differs from Marshal output")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tris := sampleTriangles()
	f, err := Parse(Marshal("round trip", tris))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f.HeaderText() != "round trip" {
		t.Errorf("expected header 'round trip', got %q", f.HeaderText())
	}
	if len(f.Facets) != len(tris) {
		t.Fatalf("expected %d facets, got %d", len(tris), len(f.Facets))
	}
	for i, tri := range tris {
		want := Narrow(tri)
		if f.Facets[i] != want {
			t.Errorf("facet %d: expected %+v, got %+v", i, want, f.Facets[i])
		}
	}
}

func TestParse_Truncated(t *testing.T) {
	if _, err := Parse(make([]byte, 40)); !errors.Is(err, ErrTruncatedSTLData) {
		t.Errorf("expected ErrTruncatedSTLData for short preamble, got %v", err)
	}

	data := Marshal("", sampleTriangles())
	if _, err := Parse(data[:len(data)-10]); !errors.Is(err, ErrTruncatedSTLData) {
		t.Errorf("expected ErrTruncatedSTLData for short body, got %v", err)
	}
}

func TestParse_CountMismatch(t *testing.T) {
	data := Marshal("", sampleTriangles())
	binary.LittleEndian.PutUint32(data[80:84], 1)
	if _, err := Parse(data); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("expected ErrCountMismatch, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.stl")
	if err := WriteFile(path, "file", sampleTriangles()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(f.Facets) != 2 {
		t.Errorf("expected 2 facets, got %d", len(f.Facets))
	}
}

func TestEncodedSize(t *testing.T) {
	if got := EncodedSize(0); got != 84 {
		t.Errorf("EncodedSize(0) = %d, expected 84", got)
	}
	if got := EncodedSize(12); got != 684 {
		t.Errorf("EncodedSize(12) = %d, expected 684", got)
	}
}
