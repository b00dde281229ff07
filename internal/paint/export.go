package paint

import (
	"encoding/json"
	"io"
)

// RegionSummary is one row of the exported paint plan.
type RegionSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	VertexCount int     `json:"vertex_count"`
	Coverage    float64 `json:"vertex_percentage"`
}

// Summaries reports every region with its resolved color (override if set,
// base otherwise), raw vertex count and coverage percentage, in region
// list order. Produced on demand; the pipeline never depends on it.
func (s *State) Summaries() []RegionSummary {
	out := make([]RegionSummary, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, RegionSummary{
			ID:          r.ID,
			Name:        r.Name,
			Color:       s.ResolvedColor(r).Hex(),
			VertexCount: len(r.Raw),
			Coverage:    s.Coverage(r),
		})
	}
	return out
}

// WriteExport writes the paint plan as indented JSON.
func (s *State) WriteExport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Summaries())
}
