package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
)

// eventType classifies processed input events.
type eventType int

const (
	eventNone eventType = iota
	eventQuit
	eventResize
	eventKeyDown
	eventMouseMove
	eventMouseWheel
)

// event is one processed input event.
type event struct {
	Type   eventType
	Key    sdl.Keycode
	Shift  bool
	Width  int
	Height int
	DeltaX int
	DeltaY int
	WheelY float32
}

// input polls SDL and turns raw events into viewer events. It also tracks
// whether the left mouse button is held, which is what drag-rotate keys on.
type input struct {
	events   []event
	dragging bool
}

func newInput() *input {
	return &input{events: make([]event, 0, 16)}
}

// Update polls pending SDL events. Returns true on quit.
func (i *input) Update() bool {
	i.events = i.events[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, event{Type: eventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, event{
					Type:   eventResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, event{
					Type:  eventKeyDown,
					Key:   e.Keysym.Sym,
					Shift: e.Keysym.Mod&sdl.KMOD_SHIFT != 0,
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.events = append(i.events, event{
					Type:   eventMouseMove,
					DeltaX: int(e.XRel),
					DeltaY: int(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, event{
				Type:   eventMouseWheel,
				WheelY: float32(e.Y),
			})
		}
	}

	return false
}

// Events returns the events collected by the last Update.
func (i *input) Events() []event {
	return i.events
}
