package paint

// Composite rebuilds the full per-vertex color buffer from the current
// state: 3 floats per raw vertex, same length and order as the unreduced
// position buffer.
//
// The buffer is always recomputed from scratch rather than patched
// incrementally; with mesh sizes in the tens of thousands of vertices the
// full pass is cheap and removes a whole class of stale-patch bugs.
//
// Steps: fill every vertex with the default color, then overwrite each
// visible region's raw indices in region list order with its resolved
// color. An invisible region is simply not applied, so hiding it reveals
// whatever an earlier region or the default left underneath. The function
// is pure: identical state yields a byte-identical buffer.
func (s *State) Composite() []float32 {
	buf := make([]float32, s.rawCount*3)
	for i := 0; i < s.rawCount; i++ {
		buf[i*3] = s.base.R
		buf[i*3+1] = s.base.G
		buf[i*3+2] = s.base.B
	}

	for _, r := range s.regions {
		if !r.Visible {
			continue
		}
		c := s.ResolvedColor(r)
		for _, raw := range r.Raw {
			if raw < 0 || raw >= s.rawCount {
				continue
			}
			buf[raw*3] = c.R
			buf[raw*3+1] = c.G
			buf[raw*3+2] = c.B
		}
	}

	return buf
}
