package terrain

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

const (
	// RegionCells is the number of height cells per region side.
	RegionCells = 256
	// CellSize is the world-unit size of one height cell.
	CellSize = 2.0
	// RegionSpan is the world-unit size of one region side.
	RegionSpan = RegionCells * CellSize
)

// Region holds one region's height grid, row-major (cy*RegionCells + cx).
// Cells with no surface store NaN. Immutable after load.
type Region struct {
	heights []float32
}

// LoadRegion parses one zstd-compressed heightmap region.
// Payload: RegionCells² little-endian float32 heights.
func LoadRegion(data []byte) (*Region, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing region: %w", err)
	}

	const want = RegionCells * RegionCells * 4
	if len(raw) != want {
		return nil, fmt.Errorf("region payload is %d bytes, want %d", len(raw), want)
	}

	heights := make([]float32, RegionCells*RegionCells)
	for i := range heights {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		heights[i] = math.Float32frombits(bits)
	}
	return &Region{heights: heights}, nil
}

// WriteRegion writes a region's height grid in the on-disk format.
// Used by heightmap tooling and tests.
func WriteRegion(w io.Writer, heights []float32) error {
	if len(heights) != RegionCells*RegionCells {
		return fmt.Errorf("region grid has %d cells, want %d", len(heights), RegionCells*RegionCells)
	}

	raw := make([]byte, len(heights)*4)
	for i, h := range heights {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(h))
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return fmt.Errorf("writing region payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing region payload: %w", err)
	}
	return nil
}

// at returns the height at cell (cx, cy) and whether a surface exists there.
func (r *Region) at(cx, cy int) (float64, bool) {
	if cx < 0 || cx >= RegionCells || cy < 0 || cy >= RegionCells {
		return 0, false
	}
	h := r.heights[cy*RegionCells+cx]
	if math.IsNaN(float64(h)) {
		return 0, false
	}
	return float64(h), true
}
