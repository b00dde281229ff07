// Package viewer renders the live-shaded preview: an SDL2 window, an orbit
// camera and the model mesh with a per-vertex color attribute fed from the
// session's color buffer. The viewer only ever consumes the session's
// read-only snapshot; painting decisions stay in internal/paint.
package viewer

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/minipaint/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// windowConfig holds window creation parameters.
type windowConfig struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// window wraps the SDL2 window and its OpenGL context.
type window struct {
	cfg       windowConfig
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// newWindow creates the preview window with a GL 4.1 core context.
func newWindow(cfg windowConfig) (*window, error) {
	w := &window{cfg: cfg}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// GL attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Sugar.Warnf("failed to enable vsync: %v", err)
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Sugar.Infof("window created: %dx%d vsync=%v", cfg.Width, cfg.Height, cfg.VSync)
	return w, nil
}

// Close destroys the window and shuts SDL down.
func (w *window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the rendered frame.
func (w *window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current drawable size.
func (w *window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
