// Package input routes backend key/button events into Game Boy joypad
// presses and a small set of emulator-level actions (pause, step, quit).
package input

import (
	"time"

	"github.com/hollow-byte/pocketgb/gb/input/action"
	"github.com/hollow-byte/pocketgb/gb/input/event"
	"github.com/hollow-byte/pocketgb/gb/memory"
)

const debounceDuration = 300 * time.Millisecond

// Joypad is the MMU surface the manager drives directly for GB buttons.
type Joypad interface {
	HandleKeyPress(key memory.JoypadKey)
	HandleKeyRelease(key memory.JoypadKey)
}

// Manager dispatches actions to either the joypad (for GB hardware
// controls) or to registered callbacks (for emulator-level actions),
// debouncing Press/Release events of every action alike; Hold events are
// not debounced. action.Info's Debounce flag is not consulted.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	joypad        Joypad
}

func NewManager(joypad Joypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		joypad:        joypad,
	}
}

// On registers a callback for a specific action and event type.
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type, routing GB hardware
// controls straight to the joypad and everything else to registered
// callbacks.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if evt == event.Press || evt == event.Release {
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		now := time.Now()
		if now.Sub(m.lastTriggered[act][evt]) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	if m.joypad != nil {
		if key, ok := joypadKeyFor(act); ok {
			switch evt {
			case event.Press:
				m.joypad.HandleKeyPress(key)
			case event.Release:
				m.joypad.HandleKeyRelease(key)
			}
			return
		}
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

func joypadKeyFor(act action.Action) (memory.JoypadKey, bool) {
	switch act {
	case action.GBButtonA:
		return memory.JoypadA, true
	case action.GBButtonB:
		return memory.JoypadB, true
	case action.GBButtonStart:
		return memory.JoypadStart, true
	case action.GBButtonSelect:
		return memory.JoypadSelect, true
	case action.GBDPadUp:
		return memory.JoypadUp, true
	case action.GBDPadDown:
		return memory.JoypadDown, true
	case action.GBDPadLeft:
		return memory.JoypadLeft, true
	case action.GBDPadRight:
		return memory.JoypadRight, true
	default:
		return 0, false
	}
}
