// Package render implements the default host-video backend: a terminal
// frontend built on tcell, rendering the Game Boy framebuffer as a grid of
// half-block glyphs and polling keyboard events into input actions.
package render

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/hollow-byte/pocketgb/gb/backend"
	"github.com/hollow-byte/pocketgb/gb/input"
	"github.com/hollow-byte/pocketgb/gb/input/action"
	"github.com/hollow-byte/pocketgb/gb/input/event"
	"github.com/hollow-byte/pocketgb/gb/video"
)

// keyTimeout is how long a game-input key stays "held" between repeat
// events before Terminal synthesizes a Release; tcell's PollEvent only
// delivers key-down, never key-up, so held state has to be inferred from
// repeat cadence.
const keyTimeout = 100 * time.Millisecond

// Terminal is the tcell-based Backend implementation.
type Terminal struct {
	screen  tcell.Screen
	scale   int
	running bool

	keyStates  map[action.Action]time.Time
	activeKeys map[action.Action]bool
}

// NewTerminal creates an uninitialized terminal backend; call Init before
// the first Update.
func NewTerminal() *Terminal {
	return &Terminal{
		keyStates:  make(map[action.Action]time.Time),
		activeKeys: make(map[action.Action]bool),
	}
}

func (t *Terminal) Init(config backend.Config) error {
	t.scale = config.Scale
	if t.scale <= 0 {
		t.scale = 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("render: initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("render: initializing terminal: %w", err)
	}

	t.screen = screen
	t.running = true
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("terminal backend initialized", "scale", t.scale)
	return nil
}

func (t *Terminal) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := time.Now()

	var events []backend.InputEvent
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
			if name, ok := tcellKeyName(ev); ok {
				if act, ok := input.GetDefaultMapping(name); ok && action.GetInfo(act).Category == action.CategoryEmulator {
					events = append(events, backend.InputEvent{Action: act, Type: event.Press})
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	currentlyActive := make(map[action.Action]bool)

	for act, lastSeen := range t.keyStates {
		if action.GetInfo(act).Category != action.CategoryGameInput {
			continue
		}
		if now.Sub(lastSeen) < keyTimeout {
			currentlyActive[act] = true
			if !t.activeKeys[act] {
				events = append(events, backend.InputEvent{Action: act, Type: event.Press})
			} else {
				events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
			}
		} else {
			delete(t.keyStates, act)
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	t.activeKeys = currentlyActive

	if !t.running {
		return events, nil
	}

	t.render(frame)
	t.screen.Show()

	return events, nil
}

func (t *Terminal) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Terminal) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	name, ok := tcellKeyName(ev)
	if !ok {
		return
	}

	act, ok := input.GetDefaultMapping(name)
	if !ok {
		return
	}

	if action.GetInfo(act).Category == action.CategoryGameInput {
		if act == action.GBDPadUp || act == action.GBDPadDown ||
			act == action.GBDPadLeft || act == action.GBDPadRight {
			delete(t.keyStates, action.GBDPadUp)
			delete(t.keyStates, action.GBDPadDown)
			delete(t.keyStates, action.GBDPadLeft)
			delete(t.keyStates, action.GBDPadRight)
		}
		t.keyStates[act] = now
		return
	}

	if act == action.EmulatorQuit {
		t.running = false
	}
}

// tcellKeyName maps a tcell key event to the string keys gb/input's
// DefaultKeyMap uses, covering both named keys and plain runes.
func tcellKeyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyUp:
		return "Up", true
	case tcell.KeyDown:
		return "Down", true
	case tcell.KeyLeft:
		return "Left", true
	case tcell.KeyRight:
		return "Right", true
	case tcell.KeyEscape:
		return "Escape", true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "Space", true
		}
		return string(ev.Rune()), true
	default:
		return "", false
	}
}

func (t *Terminal) render(frame *video.FrameBuffer) {
	lines := renderFrameToHalfBlocks(frame.ToSlice(), video.FramebufferWidth, video.FramebufferHeight)

	t.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y, line := range lines {
		x := 0
		for _, ch := range line {
			for sx := 0; sx < t.scale; sx++ {
				t.screen.SetContent(x+sx, y, ch, nil, style)
			}
			x += t.scale
		}
	}
}
