//go:build sdl2

package backend

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/hollow-byte/pocketgb/gb/input/action"
	"github.com/hollow-byte/pocketgb/gb/input/event"
	"github.com/hollow-byte/pocketgb/gb/video"
)

const (
	rgbaBytesPerPixel = 4
	defaultPixelScale = 4
)

// SDL2 is a windowed Backend alternative to render.Terminal, built only
// with the "sdl2" tag since it requires the SDL2 development libraries.
type SDL2 struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	scale    int
}

// NewSDL2 creates an uninitialized SDL2 backend; call Init before the
// first Update.
func NewSDL2() *SDL2 {
	return &SDL2{}
}

func (s *SDL2) Init(config Config) error {
	s.scale = config.Scale
	if s.scale <= 0 {
		s.scale = defaultPixelScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("backend: initializing SDL2: %w", err)
	}

	title := config.Title
	if title == "" {
		title = "pocketgb"
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*s.scale),
		int32(video.FramebufferHeight*s.scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("backend: creating window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("backend: creating renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("backend: creating texture: %w", err)
	}
	s.texture = texture

	s.running = true
	slog.Info("SDL2 backend initialized", "scale", s.scale)
	return nil
}

func (s *SDL2) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	if !s.running {
		return nil, nil
	}

	var events []InputEvent
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		events = append(events, s.handleEvent(ev)...)
	}

	if !s.running {
		return events, nil
	}

	s.renderFrame(frame)
	return events, nil
}

func (s *SDL2) Cleanup() error {
	slog.Info("cleaning up SDL2 backend")
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}

func (s *SDL2) handleEvent(ev sdl.Event) []InputEvent {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.running = false
		return []InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}
	case *sdl.KeyboardEvent:
		act, ok := sdlKeyToAction(e.Keysym.Sym)
		if !ok {
			return nil
		}
		if act == action.EmulatorQuit && e.Type == sdl.KEYDOWN {
			s.running = false
		}
		switch e.Type {
		case sdl.KEYDOWN:
			return []InputEvent{{Action: act, Type: event.Press}}
		case sdl.KEYUP:
			return []InputEvent{{Action: act, Type: event.Release}}
		}
	}
	return nil
}

func sdlKeyToAction(key sdl.Keycode) (action.Action, bool) {
	switch key {
	case sdl.K_RETURN:
		return action.GBButtonStart, true
	case sdl.K_RIGHT:
		return action.GBDPadRight, true
	case sdl.K_LEFT:
		return action.GBDPadLeft, true
	case sdl.K_UP:
		return action.GBDPadUp, true
	case sdl.K_DOWN:
		return action.GBDPadDown, true
	case sdl.K_z:
		return action.GBButtonA, true
	case sdl.K_x:
		return action.GBButtonB, true
	case sdl.K_RSHIFT, sdl.K_LSHIFT:
		return action.GBButtonSelect, true
	case sdl.K_SPACE:
		return action.EmulatorPauseToggle, true
	case sdl.K_ESCAPE:
		return action.EmulatorQuit, true
	default:
		return 0, false
	}
}

func (s *SDL2) renderFrame(frame *video.FrameBuffer) {
	frameData := frame.ToSlice()
	pixels := make([]byte, video.FramebufferWidth*video.FramebufferHeight*rgbaBytesPerPixel)

	for i, gbPixel := range frameData {
		r, g, b, a := gbColorToRGBA(gbPixel)
		dst := i * rgbaBytesPerPixel
		pixels[dst] = a
		pixels[dst+1] = b
		pixels[dst+2] = g
		pixels[dst+3] = r
	}

	s.texture.Update(nil, unsafe.Pointer(&pixels[0]), video.FramebufferWidth*rgbaBytesPerPixel)
	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}

func gbColorToRGBA(gbColor uint32) (r, g, b, a byte) {
	switch video.GBColor(gbColor) {
	case video.WhiteColor:
		return 255, 255, 255, 255
	case video.LightGreyColor:
		return 170, 170, 170, 255
	case video.DarkGreyColor:
		return 85, 85, 85, 255
	case video.BlackColor:
		return 0, 0, 0, 255
	default:
		shade := byte(gbColor >> 24)
		return shade, shade, shade, 255
	}
}
