package viewer

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/minipaint/internal/logger"
	"github.com/Faultbox/minipaint/internal/paint"
	"github.com/Faultbox/minipaint/internal/session"
	"github.com/Faultbox/minipaint/pkg/math"
)

// overridePalette is cycled through by Shift+1..9 to recolor a region.
var overridePalette = []paint.RGB{
	{R: 0.86, G: 0.20, B: 0.18}, // red
	{R: 0.22, G: 0.56, B: 0.24}, // green
	{R: 0.16, G: 0.38, B: 0.80}, // blue
	{R: 0.95, G: 0.77, B: 0.06}, // gold
	{R: 0.56, G: 0.27, B: 0.68}, // purple
	{R: 0.90, G: 0.90, B: 0.92}, // silver
}

// Config holds viewer parameters.
type Config struct {
	Width      int
	Height     int
	VSync      bool
	ExportPath string
}

// Viewer runs the preview window around a session.
type Viewer struct {
	cfg    Config
	sess   *session.Session
	win    *window
	input  *input
	camera *orbitCamera

	program     uint32
	locMVP      int32
	locLightDir int32

	mesh          *glMesh
	shownModel    *session.Model
	shownColors   uint64
	shownError    string
	paletteCursor int
	width, height int
}

// New creates the viewer window and GL state.
func New(cfg Config, sess *session.Session) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		sess:   sess,
		input:  newInput(),
		camera: newOrbitCamera(),
		width:  cfg.Width,
		height: cfg.Height,
	}

	var err error
	v.win, err = newWindow(windowConfig{
		Title:  "Minipaint",
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		v.win.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	v.program, err = compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		v.win.Close()
		return nil, fmt.Errorf("compiling preview shader: %w", err)
	}
	v.locMVP = uniform(v.program, "uMVP")
	v.locLightDir = uniform(v.program, "uLightDir")

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)

	return v, nil
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	if v.mesh != nil {
		v.mesh.Destroy()
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
	if v.win != nil {
		v.win.Close()
	}
}

// Run drives the event loop until the window closes.
func (v *Viewer) Run() error {
	for {
		if v.input.Update() {
			return nil
		}
		for _, e := range v.input.Events() {
			if quit := v.handleEvent(e); quit {
				return nil
			}
		}

		// Drain the segmentation pipeline and mirror its buffers.
		if v.sess.Poll() {
			v.refreshTitle()
		}
		if err := v.syncModel(); err != nil {
			return err
		}
		if msg := errorText(v.sess.LastError()); msg != v.shownError {
			v.shownError = msg
			v.refreshTitle()
		}

		v.render()
		v.win.SwapBuffers()
	}
}

// handleEvent processes one input event. Returns true to quit.
func (v *Viewer) handleEvent(e event) bool {
	switch e.Type {
	case eventQuit:
		return true

	case eventResize:
		v.width, v.height = e.Width, e.Height
		gl.Viewport(0, 0, int32(e.Width), int32(e.Height))

	case eventMouseMove:
		v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))

	case eventMouseWheel:
		v.camera.HandleZoom(e.WheelY)

	case eventKeyDown:
		return v.handleKey(e)
	}
	return false
}

// handleKey maps the paint controls: 1..9 toggles a region, Shift+1..9
// recolors it from the palette, R clears overrides, E exports the plan.
func (v *Viewer) handleKey(e event) bool {
	switch {
	case e.Key == sdl.K_ESCAPE:
		return true

	case e.Key >= sdl.K_1 && e.Key <= sdl.K_9:
		idx := int(e.Key - sdl.K_1)
		model := v.sess.Model()
		if model == nil || idx >= len(model.Paint.Regions()) {
			return false
		}
		region := model.Paint.Regions()[idx]
		if e.Shift {
			color := overridePalette[v.paletteCursor%len(overridePalette)]
			v.paletteCursor++
			if err := v.sess.SetOverride(region.ID, color); err != nil {
				logger.Warn("override failed", zap.Error(err))
			}
		} else {
			if err := v.sess.ToggleVisibility(region.ID); err != nil {
				logger.Warn("visibility toggle failed", zap.Error(err))
			}
		}

	case e.Key == sdl.K_r:
		if err := v.sess.ClearOverrides(); err != nil && !errors.Is(err, session.ErrNoModel) {
			logger.Warn("clearing overrides failed", zap.Error(err))
		}

	case e.Key == sdl.K_e:
		v.export()
	}
	return false
}

// export writes the paint plan to the configured path.
func (v *Viewer) export() {
	f, err := os.Create(v.cfg.ExportPath)
	if err != nil {
		logger.Error("creating export file", zap.Error(err))
		return
	}
	defer f.Close()

	if err := v.sess.Export(f); err != nil {
		logger.Error("exporting paint plan", zap.Error(err))
		return
	}
	logger.Info("paint plan exported", zap.String("path", v.cfg.ExportPath))
}

// syncModel mirrors the session's model and color buffer into GL state.
func (v *Viewer) syncModel() error {
	model := v.sess.Model()
	if model == nil {
		return nil
	}

	if model != v.shownModel {
		if v.mesh != nil {
			v.mesh.Destroy()
			v.mesh = nil
		}
		mesh, err := newGLMesh(model.Positions, model.Normals, model.Colors)
		if err != nil {
			return fmt.Errorf("uploading mesh: %w", err)
		}
		v.mesh = mesh
		v.shownModel = model
		v.shownColors = v.sess.ColorsVersion()
		v.camera.FitToBounds(model.BoundsMin, model.BoundsMax)
		v.refreshTitle()
		return nil
	}

	if version := v.sess.ColorsVersion(); version != v.shownColors {
		v.mesh.UpdateColors(model.Colors)
		v.shownColors = version
	}
	return nil
}

// render draws the current frame.
func (v *Viewer) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if v.mesh == nil {
		return
	}

	aspect := float32(v.width) / float32(v.height)
	proj := math.Perspective(float32(gomath.Pi/4), aspect, 0.01, 1e6)
	view := v.camera.ViewMatrix()
	mvp := proj.Mul(view)

	// Headlight: light from the camera toward the model.
	light := v.camera.Position().Sub(v.camera.Center).Normalize()

	gl.UseProgram(v.program)
	gl.UniformMatrix4fv(v.locMVP, 1, false, mvp.Ptr())
	gl.Uniform3f(v.locLightDir, light.X, light.Y, light.Z)
	v.mesh.Draw()
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// refreshTitle mirrors session state into the window title: the loaded
// model, region count, and any current error or disabled-upload notice.
func (v *Viewer) refreshTitle() {
	title := "Minipaint"
	if model := v.sess.Model(); model != nil {
		title = fmt.Sprintf("Minipaint — %s (%d regions)", model.Path, len(model.Paint.Regions()))
	}
	if err := v.sess.LastError(); err != nil {
		title += " — " + err.Error()
	} else if v.sess.Busy() {
		title += " — segmenting..."
	}
	v.win.SetTitle(title)
}
