// Package mesh collapses unreduced triangle-soup vertex buffers into a
// canonical deduplicated vertex space and maps region results back.
//
// A triangle soup stores one entry per triangle corner, so a position shared
// by several triangles appears several times under different raw indices.
// The segmentation oracle works on unique positions, so both directions of
// the mapping have to be kept: raw index -> canonical index to build the
// request, and canonical index -> raw indices to re-duplicate the oracle's
// answer onto every corner at a shared edge.
package mesh

// Quantization precision in decimal digits. Two vertices whose coordinates
// agree after truncation to this many digits are deliberately merged into
// one canonical vertex; that is the dedup policy, not an accident. The same
// precision must be used for the whole lifetime of a table.
const (
	DefaultPrecision = 6
	LegacyPrecision  = 4
)

// key is a position quantized to a fixed decimal grid.
type key struct {
	x, y, z int64
}

// CanonicalTable is the deduplicated vertex space of one loaded model.
// Canonical indices are dense and assigned in first-seen order of the raw
// buffer scan, which makes the assignment deterministic: the oracle's
// returned indices are only meaningful against the exact ordering sent.
type CanonicalTable struct {
	// Positions holds the unique positions, 3 floats per canonical index,
	// in canonical index order.
	Positions []float32

	// Forward maps every raw index to its canonical index. It is total:
	// len(Forward) equals the raw vertex count.
	Forward []int

	// Reverse maps every canonical index to the raw indices that collapsed
	// into it. Every entry is non-empty; the cardinality is the multiplicity
	// of that position in the soup.
	Reverse [][]int

	precision int
}

// Canonicalize builds a CanonicalTable from an unreduced position buffer
// (3 floats per raw vertex). precision is the number of decimal digits kept
// when forming dedup keys; values < 1 fall back to DefaultPrecision.
// This is pure data transformation and cannot fail on well-formed input.
func Canonicalize(positions []float32, precision int) *CanonicalTable {
	if precision < 1 {
		precision = DefaultPrecision
	}
	scale := float64(1)
	for i := 0; i < precision; i++ {
		scale *= 10
	}

	rawCount := len(positions) / 3
	t := &CanonicalTable{
		Forward:   make([]int, rawCount),
		precision: precision,
	}

	seen := make(map[key]int, rawCount)
	for raw := 0; raw < rawCount; raw++ {
		k := quantize(positions[raw*3], positions[raw*3+1], positions[raw*3+2], scale)

		canonical, ok := seen[k]
		if !ok {
			canonical = len(t.Reverse)
			seen[k] = canonical
			t.Positions = append(t.Positions, positions[raw*3], positions[raw*3+1], positions[raw*3+2])
			t.Reverse = append(t.Reverse, nil)
		}
		t.Forward[raw] = canonical
		t.Reverse[canonical] = append(t.Reverse[canonical], raw)
	}

	return t
}

// quantize truncates each coordinate to the decimal grid.
func quantize(x, y, z float32, scale float64) key {
	return key{
		x: int64(float64(x) * scale),
		y: int64(float64(y) * scale),
		z: int64(float64(z) * scale),
	}
}

// UniqueCount returns the number of canonical vertices.
func (t *CanonicalTable) UniqueCount() int {
	return len(t.Reverse)
}

// RawCount returns the number of unreduced vertices the table was built from.
func (t *CanonicalTable) RawCount() int {
	return len(t.Forward)
}

// Precision returns the decimal precision the table was built with.
func (t *CanonicalTable) Precision() int {
	return t.precision
}

// Vertices returns the canonical positions as index-ordered 3-tuples, the
// shape the segmentation request wants.
func (t *CanonicalTable) Vertices() [][3]float32 {
	out := make([][3]float32, t.UniqueCount())
	for i := range out {
		out[i] = [3]float32{t.Positions[i*3], t.Positions[i*3+1], t.Positions[i*3+2]}
	}
	return out
}

// Expand lifts a list of canonical indices onto the raw vertex space.
// Every raw index sharing a listed canonical position is appended exactly
// once, even if the canonical index appears more than once in the input.
// Indices outside [0, UniqueCount) are skipped, not fatal: a single bad
// index from the oracle must not sink the whole region.
func (t *CanonicalTable) Expand(canonical []int) []int {
	raw := make([]int, 0, len(canonical))
	taken := make(map[int]struct{}, len(canonical))

	for _, c := range canonical {
		if c < 0 || c >= len(t.Reverse) {
			continue
		}
		for _, r := range t.Reverse[c] {
			if _, dup := taken[r]; dup {
				continue
			}
			taken[r] = struct{}{}
			raw = append(raw, r)
		}
	}
	return raw
}
