// Package formats provides parsers for 3D model file formats.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// STL format errors.
var (
	ErrASCIISTL     = errors.New("ASCII STL not supported: export the model as binary STL")
	ErrTruncatedSTL = errors.New("truncated STL data")
)

// Binary STL layout: an 80-byte header, a uint32 little-endian triangle
// count, then 50 bytes per triangle (12-byte facet normal, three 12-byte
// vertices, 2-byte attribute count).
const (
	stlHeaderSize   = 80
	stlCountSize    = 4
	stlTriangleSize = 50
)

// STL is a decoded binary STL file kept as an unreduced triangle soup.
// Positions holds three corners per triangle, three floats per corner, in
// file order. Normals is parallel to Positions with the facet normal
// replicated once per corner. Corners that coincide geometrically across
// triangles occupy distinct indices here; deduplication is a separate step
// (see internal/mesh).
type STL struct {
	Header    string
	Triangles int
	Positions []float32
	Normals   []float32
}

// VertexCount returns the number of unreduced corner vertices (3 per triangle).
func (s *STL) VertexCount() int {
	return len(s.Positions) / 3
}

// Bounds returns the axis-aligned bounding box of all vertices.
// Returns zero boxes for empty meshes.
func (s *STL) Bounds() (min, max [3]float32) {
	if len(s.Positions) == 0 {
		return
	}
	min = [3]float32{s.Positions[0], s.Positions[1], s.Positions[2]}
	max = min
	for i := 3; i+2 < len(s.Positions); i += 3 {
		for c := 0; c < 3; c++ {
			v := s.Positions[i+c]
			if v < min[c] {
				min[c] = v
			}
			if v > max[c] {
				max[c] = v
			}
		}
	}
	return
}

// ParseSTL parses a binary STL file from raw bytes.
// Degenerate or inverted triangles are passed through unchanged; geometric
// validation is not this parser's job.
func ParseSTL(data []byte) (*STL, error) {
	// The textual variant starts with the "solid" keyword where the binary
	// variant has a free-form comment header.
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return nil, ErrASCIISTL
	}

	if len(data) < stlHeaderSize+stlCountSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedSTL, len(data), stlHeaderSize+stlCountSize)
	}

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	need := stlHeaderSize + stlCountSize + int(count)*stlTriangleSize
	if len(data) < need {
		return nil, fmt.Errorf("%w: header declares %d triangles (%d bytes), have %d", ErrTruncatedSTL, count, need, len(data))
	}

	stl := &STL{
		Header:    strings.TrimRight(string(data[:stlHeaderSize]), "\x00 "),
		Triangles: int(count),
		Positions: make([]float32, 0, count*9),
		Normals:   make([]float32, 0, count*9),
	}

	off := stlHeaderSize + stlCountSize
	for i := 0; i < int(count); i++ {
		var n [3]float32
		for c := 0; c < 3; c++ {
			n[c] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+4*c:]))
		}
		for v := 0; v < 3; v++ {
			base := off + 12 + 12*v
			for c := 0; c < 3; c++ {
				stl.Positions = append(stl.Positions, math.Float32frombits(binary.LittleEndian.Uint32(data[base+4*c:])))
			}
			stl.Normals = append(stl.Normals, n[0], n[1], n[2])
		}
		off += stlTriangleSize // includes the 2-byte attribute count
	}

	return stl, nil
}

// ParseSTLFile parses a binary STL file from disk.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}
