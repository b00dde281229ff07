package segment

// Profile selects the oracle's region template set. Mirrors the backend's
// /segment-advanced options.
type Profile string

const (
	ProfileHumanoid Profile = "humanoid"
	ProfileCreature Profile = "creature"
	ProfileVehicle  Profile = "vehicle"
)

// Request is the segmentation request body. Vertices are canonical
// positions in canonical index order; the indices the oracle returns are
// only meaningful against this exact ordering.
type Request struct {
	Vertices [][3]float32 `json:"vertices"`
	Type     Profile      `json:"type,omitempty"`
}

// Region is one region of the oracle's answer. VertexIndices are canonical
// indices into the request's vertex list; they may overlap other regions
// and need not cover every vertex.
type Region struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	VertexIndices []int  `json:"vertex_indices"`
	VertexCount   int    `json:"vertex_count"`
}

// response is the oracle's wire envelope.
type response struct {
	Success bool     `json:"success"`
	Regions []Region `json:"regions"`
	Error   string   `json:"error"`
}

// healthResponse is the /health probe body.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
