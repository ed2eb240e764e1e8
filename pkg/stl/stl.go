// Package stl encodes and decodes binary STL files.
package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrCountMismatch    = errors.New("STL triangle count does not match data length")
)

// Binary STL layout sizes in bytes.
const (
	HeaderSize   = 80
	PreambleSize = HeaderSize + 4
	TriangleSize = 50
)

// Triangle is a facet in model space. Vertices are stored in double
// precision and narrowed to float32 on encoding.
type Triangle struct {
	Normal   mgl64.Vec3
	Vertices [3]mgl64.Vec3
}

// Facet is a triangle as stored in a binary STL file.
type Facet struct {
	Normal        [3]float32
	Vertices      [3][3]float32
	AttrByteCount uint16
}

// File is a parsed binary STL file.
type File struct {
	Header [HeaderSize]byte
	Facets []Facet
}

// HeaderText returns the header with trailing NUL bytes removed.
func (f *File) HeaderText() string {
	return string(bytes.TrimRight(f.Header[:], "\x00"))
}

// EncodedSize returns the size in bytes of a binary STL holding n triangles.
func EncodedSize(n int) int {
	return PreambleSize + TriangleSize*n
}

// Marshal encodes tris as a binary STL. The header text is truncated to 80
// bytes and zero padded. The returned slice is exactly EncodedSize(len(tris))
// bytes long and records len(tris) as its triangle count.
func Marshal(header string, tris []Triangle) []byte {
	buf := make([]byte, EncodedSize(len(tris)))
	copy(buf[:HeaderSize], header)
	binary.LittleEndian.PutUint32(buf[HeaderSize:PreambleSize], uint32(len(tris)))

	off := PreambleSize
	for i := range tris {
		putTriangle(buf[off:off+TriangleSize], &tris[i])
		off += TriangleSize
	}
	return buf
}

// Encode writes tris to w as a binary STL.
func Encode(w io.Writer, header string, tris []Triangle) error {
	_, err := w.Write(Marshal(header, tris))
	return err
}

// WriteFile writes tris to path as a binary STL.
func WriteFile(path, header string, tris []Triangle) error {
	return os.WriteFile(path, Marshal(header, tris), 0644)
}

func putTriangle(b []byte, t *Triangle) {
	putVec(b[0:12], t.Normal)
	putVec(b[12:24], t.Vertices[0])
	putVec(b[24:36], t.Vertices[1])
	putVec(b[36:48], t.Vertices[2])
	binary.LittleEndian.PutUint16(b[48:50], 0)
}

func putVec(b []byte, v mgl64.Vec3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v[0])))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v[1])))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v[2])))
}

// Parse parses a binary STL from raw bytes. The data length must match the
// triangle count in the preamble exactly.
func Parse(data []byte) (*File, error) {
	if len(data) < PreambleSize {
		return nil, ErrTruncatedSTLData
	}

	f := &File{}
	copy(f.Header[:], data[:HeaderSize])
	count := binary.LittleEndian.Uint32(data[HeaderSize:PreambleSize])

	body := data[PreambleSize:]
	if uint64(len(body)) != uint64(count)*TriangleSize {
		if uint64(len(body)) < uint64(count)*TriangleSize {
			return nil, fmt.Errorf("%w: header says %d triangles, data holds %d",
				ErrTruncatedSTLData, count, len(body)/TriangleSize)
		}
		return nil, fmt.Errorf("%w: header says %d triangles, %d bytes follow",
			ErrCountMismatch, count, len(body))
	}

	f.Facets = make([]Facet, count)
	r := bytes.NewReader(body)
	for i := range f.Facets {
		if err := binary.Read(r, binary.LittleEndian, &f.Facets[i]); err != nil {
			return nil, fmt.Errorf("%w: reading triangle %d", ErrTruncatedSTLData, i)
		}
	}
	return f, nil
}

// ParseFile parses a binary STL file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return Parse(data)
}

// Narrow converts t to its stored single precision form.
func Narrow(t Triangle) Facet {
	var f Facet
	f.Normal = narrowVec(t.Normal)
	for i, v := range t.Vertices {
		f.Vertices[i] = narrowVec(v)
	}
	return f
}

func narrowVec(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
