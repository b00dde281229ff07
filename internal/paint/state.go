// Package paint holds the per-model painting state and rebuilds the
// per-vertex color buffer from it.
//
// The region list order is significant and stable: when regions overlap,
// the compositor applies them in list order and the last one wins. That is
// the single overlap-resolution rule of the whole program.
package paint

// Region is a named, colorable subset of the model's vertices.
type Region struct {
	ID        string
	Name      string
	BaseColor RGB
	Visible   bool

	// Canonical holds the oracle's canonical indices as received (minus
	// out-of-range entries). Raw holds the expansion onto the unreduced
	// vertex space, each raw index at most once.
	Canonical []int
	Raw       []int
}

// State is the paint state of one loaded model. A fresh model load replaces
// the whole State; nothing else ever empties it.
type State struct {
	regions   []*Region
	overrides map[string]RGB
	rawCount  int
	base      RGB
}

// DefaultBaseColor is the unpainted-plastic grey every vertex starts from.
var DefaultBaseColor = RGB{R: 0.78, G: 0.78, B: 0.78}

// NewState builds a populated paint state: all regions visible, no
// overrides. rawCount is the length of the unreduced vertex buffer.
func NewState(rawCount int, regions []*Region) *State {
	for _, r := range regions {
		r.Visible = true
	}
	return &State{
		regions:   regions,
		overrides: make(map[string]RGB),
		rawCount:  rawCount,
		base:      DefaultBaseColor,
	}
}

// Regions returns the region list in its stable compositing order.
// Callers must not reorder it.
func (s *State) Regions() []*Region {
	return s.regions
}

// RawCount returns the unreduced vertex count the state was built for.
func (s *State) RawCount() int {
	return s.rawCount
}

// Region looks a region up by id.
func (s *State) Region(id string) *Region {
	for _, r := range s.regions {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// SetVisibility toggles a region. Returns false for an unknown id.
func (s *State) SetVisibility(id string, visible bool) bool {
	r := s.Region(id)
	if r == nil {
		return false
	}
	r.Visible = visible
	return true
}

// SetOverride replaces a region's displayed color without touching its
// base color. Returns false for an unknown id.
func (s *State) SetOverride(id string, c RGB) bool {
	if s.Region(id) == nil {
		return false
	}
	s.overrides[id] = c
	return true
}

// ClearOverride removes a single override; the region falls back to its
// base color.
func (s *State) ClearOverride(id string) {
	delete(s.overrides, id)
}

// ClearOverrides removes every override.
func (s *State) ClearOverrides() {
	s.overrides = make(map[string]RGB)
}

// ResolvedColor returns the color a region currently paints with:
// the override if one is set, the base color otherwise.
func (s *State) ResolvedColor(r *Region) RGB {
	if c, ok := s.overrides[r.ID]; ok {
		return c
	}
	return r.BaseColor
}

// Coverage returns the fraction of raw vertices a region covers, in percent.
func (s *State) Coverage(r *Region) float64 {
	if s.rawCount == 0 {
		return 0
	}
	return float64(len(r.Raw)) / float64(s.rawCount) * 100
}
