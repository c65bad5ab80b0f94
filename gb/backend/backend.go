// Package backend defines the host frontend surface a console drives once
// per frame: render the framebuffer, collect input, clean up on exit. The
// default implementation is the tcell-based gb/render package; an optional
// SDL2 window backend lives behind the "sdl2" build tag.
package backend

import (
	"github.com/hollow-byte/pocketgb/gb/input/action"
	"github.com/hollow-byte/pocketgb/gb/input/event"
	"github.com/hollow-byte/pocketgb/gb/video"
)

// InputEvent is a single input occurrence a backend observed this frame.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Config configures a backend at startup.
type Config struct {
	Title string
	Scale int
}

// Backend is a complete host frontend: rendering, input capture, and
// whatever platform resources it needs to acquire/release.
type Backend interface {
	// Init acquires platform resources (window, screen, audio device).
	Init(config Config) error
	// Update renders one frame and returns the input events observed
	// since the last call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)
	// Cleanup releases platform resources.
	Cleanup() error
}
