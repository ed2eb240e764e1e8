package heightfield

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// HFG format errors.
var (
	ErrInvalidHFGMagic       = errors.New("invalid HFG magic: expected 'HFGD'")
	ErrUnsupportedHFGVersion = errors.New("unsupported HFG version")
	ErrTruncatedHFGData      = errors.New("truncated HFG data")
)

// HFG file layout: magic "HFGD", version byte, three reserved bytes,
// uint32 width, uint32 height, then width*height little-endian float32
// samples in row-major order. NaN marks a missing sample.
const (
	hfgMagic      = "HFGD"
	hfgVersion    = 1
	hfgHeaderSize = 16

	// maxHFGDimension bounds width and height to reject corrupt headers.
	maxHFGDimension = 1 << 15
)

// ParseHFG parses an HFG grid from raw bytes.
func ParseHFG(data []byte) (*Grid, error) {
	if len(data) < hfgHeaderSize {
		return nil, ErrTruncatedHFGData
	}
	if string(data[0:4]) != hfgMagic {
		return nil, ErrInvalidHFGMagic
	}
	if data[4] != hfgVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedHFGVersion, data[4])
	}

	width := binary.LittleEndian.Uint32(data[8:12])
	height := binary.LittleEndian.Uint32(data[12:16])
	if width > maxHFGDimension || height > maxHFGDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGridShape, width, height)
	}

	cellCount := int(width) * int(height)
	body := data[hfgHeaderSize:]
	if len(body) < cellCount*4 {
		return nil, fmt.Errorf("%w: need %d samples, have %d", ErrTruncatedHFGData,
			cellCount, len(body)/4)
	}

	cells := make([]float64, cellCount)
	r := bytes.NewReader(body)
	var sample float32
	for i := range cells {
		if err := binary.Read(r, binary.LittleEndian, &sample); err != nil {
			return nil, fmt.Errorf("%w: reading sample %d", ErrTruncatedHFGData, i)
		}
		cells[i] = float64(sample)
	}

	return FromCells(int(width), int(height), cells)
}

// ParseHFGFile parses an HFG grid from disk.
func ParseHFGFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HFG file: %w", err)
	}
	return ParseHFG(data)
}

// WriteHFG encodes g in HFG format.
func WriteHFG(w io.Writer, g *Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}

	buf := make([]byte, hfgHeaderSize+4*len(g.Cells))
	copy(buf[0:4], hfgMagic)
	buf[4] = hfgVersion
	binary.LittleEndian.PutUint32(buf[8:12], uint32(g.Width))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(g.Height))
	for i, v := range g.Cells {
		binary.LittleEndian.PutUint32(buf[hfgHeaderSize+4*i:], math.Float32bits(float32(v)))
	}

	_, err := w.Write(buf)
	return err
}

// WriteHFGFile writes g to path in HFG format.
func WriteHFGFile(path string, g *Grid) error {
	var buf bytes.Buffer
	if err := WriteHFG(&buf, g); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
