// Package session orchestrates the model pipeline: decode, canonicalize,
// segment, expand, paint. It owns the single mutable state of the program.
//
// One goroutine owns the Session (the viewer's event loop). The only
// asynchronous step is the segmentation exchange, which runs on a worker
// goroutine and delivers its result through a channel drained by Poll.
// Every result carries the model generation it was requested for; a result
// from a superseded generation is discarded, never applied. All failure
// paths resolve before the new model touches paint state, so the previously
// loaded model stays fully interactive throughout.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/minipaint/internal/mesh"
	"github.com/Faultbox/minipaint/internal/paint"
	"github.com/Faultbox/minipaint/internal/segment"
	"github.com/Faultbox/minipaint/pkg/formats"
)

// Session errors.
var (
	ErrUploadInFlight = errors.New("segmentation request already in flight")
	ErrNoModel        = errors.New("no model loaded")
)

// Config holds session parameters.
type Config struct {
	Profile   segment.Profile
	Precision int
	Log       *zap.Logger
}

// Model is one successfully loaded and segmented model. It is replaced
// wholesale on the next successful load and never mutated partially.
type Model struct {
	Path      string
	Positions []float32 // unreduced, 3 floats per raw vertex
	Normals   []float32 // parallel to Positions
	Table     *mesh.CanonicalTable
	Paint     *paint.State
	Colors    []float32 // current composite, parallel to Positions

	BoundsMin, BoundsMax [3]float32
}

// staged holds the decoded-and-canonicalized half of an upload while its
// segmentation request is in flight.
type staged struct {
	generation uint64
	model      *Model
}

type segmentOutcome struct {
	generation uint64
	regions    []segment.Region
	err        error
}

// Session drives the pipeline for one model at a time.
type Session struct {
	client *segment.Client
	cfg    Config
	log    *zap.Logger

	generation uint64
	pending    *staged
	model      *Model
	lastErr    error
	healthy    bool

	// colorsVersion increments every time Colors is replaced, so the
	// viewer knows when to re-upload its color buffer.
	colorsVersion uint64

	results chan segmentOutcome
}

// New creates a session talking to the given segmentation client.
func New(client *segment.Client, cfg Config) *Session {
	if cfg.Precision < 1 {
		cfg.Precision = mesh.DefaultPrecision
	}
	if cfg.Profile == "" {
		cfg.Profile = segment.ProfileHumanoid
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		client:  client,
		cfg:     cfg,
		log:     log,
		results: make(chan segmentOutcome, 1),
	}
}

// Model returns the current model, or nil before the first successful load.
func (s *Session) Model() *Model {
	return s.model
}

// Busy reports whether a segmentation request is outstanding. While busy,
// new uploads are refused and the upload affordance should be disabled.
func (s *Session) Busy() bool {
	return s.pending != nil
}

// CanUpload reports whether a new upload should be accepted right now.
func (s *Session) CanUpload() bool {
	return s.healthy && s.pending == nil
}

// LastError returns the most recent pipeline failure, cleared by the next
// successful load.
func (s *Session) LastError() error {
	return s.lastErr
}

// ColorsVersion changes whenever the current model's color buffer does.
func (s *Session) ColorsVersion() uint64 {
	return s.colorsVersion
}

// CheckHealth probes the oracle and updates upload availability. An
// unreachable oracle disables uploads but does not affect a loaded model.
func (s *Session) CheckHealth(ctx context.Context) error {
	err := s.client.Health(ctx)
	s.healthy = err == nil
	if err != nil {
		s.log.Warn("segmentation backend not reachable", zap.Error(err))
	}
	return err
}

// Load decodes an STL file, canonicalizes it and fires the segmentation
// request. The decode and canonicalization are synchronous; a decode
// failure surfaces immediately and leaves the current model untouched.
// Returns ErrUploadInFlight while a previous request is unresolved.
func (s *Session) Load(path string) error {
	if s.pending != nil {
		return ErrUploadInFlight
	}

	stl, err := formats.ParseSTLFile(path)
	if err != nil {
		s.lastErr = err
		return err
	}
	return s.loadDecoded(path, stl)
}

// LoadBytes is Load for an in-memory STL buffer.
func (s *Session) LoadBytes(name string, data []byte) error {
	if s.pending != nil {
		return ErrUploadInFlight
	}

	stl, err := formats.ParseSTL(data)
	if err != nil {
		s.lastErr = err
		return err
	}
	return s.loadDecoded(name, stl)
}

func (s *Session) loadDecoded(path string, stl *formats.STL) error {
	table := mesh.Canonicalize(stl.Positions, s.cfg.Precision)
	min, max := stl.Bounds()

	s.generation++
	s.pending = &staged{
		generation: s.generation,
		model: &Model{
			Path:      path,
			Positions: stl.Positions,
			Normals:   stl.Normals,
			Table:     table,
			BoundsMin: min,
			BoundsMax: max,
		},
	}

	s.log.Info("model decoded",
		zap.String("path", path),
		zap.Int("triangles", stl.Triangles),
		zap.Int("raw_vertices", table.RawCount()),
		zap.Int("unique_vertices", table.UniqueCount()),
		zap.Uint64("generation", s.generation),
	)

	req := segment.Request{
		Vertices: table.Vertices(),
		Type:     s.cfg.Profile,
	}
	gen := s.generation
	go func() {
		regions, err := s.client.Segment(context.Background(), req)
		s.results <- segmentOutcome{generation: gen, regions: regions, err: err}
	}()

	return nil
}

// Poll drains a pending segmentation result if one has arrived. Returns
// true when the current model changed (new model applied). Call once per
// event-loop iteration.
func (s *Session) Poll() bool {
	select {
	case res := <-s.results:
		return s.apply(res)
	default:
		return false
	}
}

// apply installs a segmentation outcome, guarding against stale results.
func (s *Session) apply(res segmentOutcome) bool {
	if res.generation != s.generation {
		s.log.Warn("discarding stale segmentation result",
			zap.Uint64("result_generation", res.generation),
			zap.Uint64("current_generation", s.generation),
		)
		return false
	}

	pending := s.pending
	s.pending = nil

	if res.err != nil {
		s.lastErr = res.err
		s.log.Error("segmentation failed", zap.Error(res.err))
		return false
	}
	if pending == nil {
		return false
	}

	model := pending.model
	regions := make([]*paint.Region, 0, len(res.regions))
	for _, r := range res.regions {
		color, err := paint.ParseHexColor(r.Color)
		if err != nil {
			s.log.Warn("region has unparseable color, using default",
				zap.String("region", r.ID), zap.String("color", r.Color))
			color = paint.DefaultBaseColor
		}
		name := r.Name
		if name == "" {
			name = r.ID
		}
		regions = append(regions, &paint.Region{
			ID:        r.ID,
			Name:      name,
			BaseColor: color,
			Canonical: r.VertexIndices,
			Raw:       model.Table.Expand(r.VertexIndices),
		})
	}

	model.Paint = paint.NewState(model.Table.RawCount(), regions)
	model.Colors = model.Paint.Composite()

	// Replace wholesale: overrides and regions of the previous model die
	// with it.
	s.model = model
	s.lastErr = nil
	s.colorsVersion++

	for _, r := range regions {
		s.log.Info("region assigned",
			zap.String("id", r.ID),
			zap.Int("raw_vertices", len(r.Raw)),
			zap.Float64("coverage_pct", model.Paint.Coverage(r)),
		)
	}
	return true
}

// recomposite rebuilds the color buffer after a paint state mutation.
func (s *Session) recomposite() {
	s.model.Colors = s.model.Paint.Composite()
	s.colorsVersion++
}

// SetVisibility toggles a region of the current model.
func (s *Session) SetVisibility(id string, visible bool) error {
	if s.model == nil {
		return ErrNoModel
	}
	if !s.model.Paint.SetVisibility(id, visible) {
		return fmt.Errorf("unknown region %q", id)
	}
	s.recomposite()
	return nil
}

// ToggleVisibility flips a region's visibility.
func (s *Session) ToggleVisibility(id string) error {
	if s.model == nil {
		return ErrNoModel
	}
	r := s.model.Paint.Region(id)
	if r == nil {
		return fmt.Errorf("unknown region %q", id)
	}
	return s.SetVisibility(id, !r.Visible)
}

// SetOverride sets a user color override for a region.
func (s *Session) SetOverride(id string, c paint.RGB) error {
	if s.model == nil {
		return ErrNoModel
	}
	if !s.model.Paint.SetOverride(id, c) {
		return fmt.Errorf("unknown region %q", id)
	}
	s.recomposite()
	return nil
}

// ClearOverride drops one region's override.
func (s *Session) ClearOverride(id string) error {
	if s.model == nil {
		return ErrNoModel
	}
	s.model.Paint.ClearOverride(id)
	s.recomposite()
	return nil
}

// ClearOverrides drops every override.
func (s *Session) ClearOverrides() error {
	if s.model == nil {
		return ErrNoModel
	}
	s.model.Paint.ClearOverrides()
	s.recomposite()
	return nil
}

// Export writes the current paint plan.
func (s *Session) Export(w io.Writer) error {
	if s.model == nil {
		return ErrNoModel
	}
	return s.model.Paint.WriteExport(w)
}
