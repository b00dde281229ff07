package mesh

import (
	"testing"
)

// cubeSoup returns the unreduced position buffer of a unit cube
// triangulated into 12 triangles (36 raw vertices, 8 unique corners).
func cubeSoup() []float32 {
	corners := [8][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	// Two triangles per face, corner indices.
	faces := [12][3]int{
		{0, 1, 2}, {0, 2, 3}, // back
		{4, 6, 5}, {4, 7, 6}, // front
		{0, 4, 5}, {0, 5, 1}, // bottom
		{3, 2, 6}, {3, 6, 7}, // top
		{0, 3, 7}, {0, 7, 4}, // left
		{1, 5, 6}, {1, 6, 2}, // right
	}

	buf := make([]float32, 0, 12*9)
	for _, f := range faces {
		for _, ci := range f {
			buf = append(buf, corners[ci][0], corners[ci][1], corners[ci][2])
		}
	}
	return buf
}

func TestCanonicalize_Cube(t *testing.T) {
	table := Canonicalize(cubeSoup(), DefaultPrecision)

	if table.RawCount() != 36 {
		t.Fatalf("expected 36 raw vertices, got %d", table.RawCount())
	}
	if table.UniqueCount() != 8 {
		t.Fatalf("expected 8 canonical vertices, got %d", table.UniqueCount())
	}

	// Multiplicities must account for every raw vertex.
	sum := 0
	for c, raws := range table.Reverse {
		if len(raws) == 0 {
			t.Errorf("canonical index %d has empty reverse mapping", c)
		}
		sum += len(raws)
	}
	if sum != table.RawCount() {
		t.Errorf("reverse cardinalities sum to %d, expected %d", sum, table.RawCount())
	}
}

func TestCanonicalize_ForwardIsTotalAndConsistent(t *testing.T) {
	table := Canonicalize(cubeSoup(), DefaultPrecision)

	if len(table.Forward) != table.RawCount() {
		t.Fatalf("forward map has %d entries, expected %d", len(table.Forward), table.RawCount())
	}

	for raw, canonical := range table.Forward {
		if canonical < 0 || canonical >= table.UniqueCount() {
			t.Fatalf("raw %d maps to out-of-range canonical %d", raw, canonical)
		}
		found := false
		for _, r := range table.Reverse[canonical] {
			if r == raw {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("reverse[%d] does not contain raw index %d", canonical, raw)
		}
	}
}

func TestCanonicalize_Deterministic(t *testing.T) {
	soup := cubeSoup()
	a := Canonicalize(soup, DefaultPrecision)
	b := Canonicalize(soup, DefaultPrecision)

	if a.UniqueCount() != b.UniqueCount() {
		t.Fatalf("unique counts differ: %d vs %d", a.UniqueCount(), b.UniqueCount())
	}
	for i := range a.Forward {
		if a.Forward[i] != b.Forward[i] {
			t.Fatalf("forward[%d] differs: %d vs %d", i, a.Forward[i], b.Forward[i])
		}
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("positions[%d] differs: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestCanonicalize_FirstSeenOrder(t *testing.T) {
	// Three distinct positions, the first repeated at the end.
	buf := []float32{
		5, 5, 5,
		1, 0, 0,
		0, 1, 0,
		5, 5, 5,
	}
	table := Canonicalize(buf, DefaultPrecision)

	if table.UniqueCount() != 3 {
		t.Fatalf("expected 3 canonical vertices, got %d", table.UniqueCount())
	}
	want := []int{0, 1, 2, 0}
	for raw, c := range want {
		if table.Forward[raw] != c {
			t.Errorf("forward[%d] = %d, expected %d", raw, table.Forward[raw], c)
		}
	}
	if table.Positions[0] != 5 {
		t.Errorf("canonical 0 should be the first-seen position, got x=%v", table.Positions[0])
	}
}

func TestCanonicalize_ToleranceMerges(t *testing.T) {
	// Differ only in the 7th decimal digit: merged at precision 6,
	// separate at a higher precision.
	buf := []float32{
		0.1234567, 0, 0,
		0.1234569, 0, 0,
	}

	if got := Canonicalize(buf, 6).UniqueCount(); got != 1 {
		t.Errorf("precision 6: expected positions merged into 1, got %d", got)
	}
	if got := Canonicalize(buf, 7).UniqueCount(); got != 2 {
		t.Errorf("precision 7: expected 2 distinct positions, got %d", got)
	}
}

func TestCanonicalize_LegacyPrecision(t *testing.T) {
	// Differ in the 5th decimal digit: merged on the legacy path only.
	buf := []float32{
		0.12345, 0, 0,
		0.12348, 0, 0,
	}

	if got := Canonicalize(buf, LegacyPrecision).UniqueCount(); got != 1 {
		t.Errorf("legacy precision: expected 1 canonical vertex, got %d", got)
	}
	if got := Canonicalize(buf, DefaultPrecision).UniqueCount(); got != 2 {
		t.Errorf("default precision: expected 2 canonical vertices, got %d", got)
	}
}

func TestVertices_MatchesCanonicalOrder(t *testing.T) {
	table := Canonicalize(cubeSoup(), DefaultPrecision)
	verts := table.Vertices()

	if len(verts) != table.UniqueCount() {
		t.Fatalf("expected %d vertices, got %d", table.UniqueCount(), len(verts))
	}
	for i, v := range verts {
		if v[0] != table.Positions[i*3] || v[1] != table.Positions[i*3+1] || v[2] != table.Positions[i*3+2] {
			t.Errorf("vertex %d = %v does not match table positions", i, v)
		}
	}
}

func TestExpand_RedupesSeamVertices(t *testing.T) {
	table := Canonicalize(cubeSoup(), DefaultPrecision)

	// Expanding a single corner must yield every raw copy of it.
	raw := table.Expand([]int{0})
	if len(raw) != len(table.Reverse[0]) {
		t.Fatalf("expected %d raw indices, got %d", len(table.Reverse[0]), len(raw))
	}

	// Expanding all canonical indices covers the whole soup.
	all := make([]int, table.UniqueCount())
	for i := range all {
		all[i] = i
	}
	if got := table.Expand(all); len(got) != table.RawCount() {
		t.Errorf("full expansion yields %d raw indices, expected %d", len(got), table.RawCount())
	}
}

func TestExpand_NoDuplicatesOnRepeatedInput(t *testing.T) {
	table := Canonicalize(cubeSoup(), DefaultPrecision)

	once := table.Expand([]int{3})
	twice := table.Expand([]int{3, 3})

	if len(once) != len(twice) {
		t.Fatalf("repeated canonical index changed expansion: %d vs %d", len(once), len(twice))
	}
	seen := make(map[int]bool)
	for _, r := range twice {
		if seen[r] {
			t.Fatalf("raw index %d appears twice in expansion", r)
		}
		seen[r] = true
	}
}

func TestExpand_SkipsOutOfRange(t *testing.T) {
	table := Canonicalize(cubeSoup(), DefaultPrecision)

	raw := table.Expand([]int{-1, 2, 9999})
	if len(raw) != len(table.Reverse[2]) {
		t.Errorf("expected only canonical 2 expanded (%d raws), got %d", len(table.Reverse[2]), len(raw))
	}
}

func TestCanonicalize_Empty(t *testing.T) {
	table := Canonicalize(nil, DefaultPrecision)
	if table.RawCount() != 0 || table.UniqueCount() != 0 {
		t.Errorf("empty input should yield empty table, got raw=%d unique=%d",
			table.RawCount(), table.UniqueCount())
	}
	if got := table.Expand([]int{0}); len(got) != 0 {
		t.Errorf("expansion on empty table should be empty, got %v", got)
	}
}
