// Package action names the input actions a backend can trigger, whether
// they map onto a Game Boy hardware button or an emulator-level control.
package action

// Action is an input action a backend's key/button mapping resolves to.
type Action int

const (
	GBButtonA Action = iota
	GBButtonB
	GBButtonStart
	GBButtonSelect
	GBDPadUp
	GBDPadDown
	GBDPadLeft
	GBDPadRight

	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorQuit
)

// Category groups actions for routing purposes.
type Category int

const (
	CategoryGameInput Category = iota
	CategoryEmulator
)

// Info carries metadata about an action.
type Info struct {
	Action      Action
	Category    Category
	Debounce    bool // marks actions meant to trigger once per key press; input.Manager does not read it and debounces every action
	Description string
}

var infoByAction = map[Action]Info{
	GBButtonA:      {Action: GBButtonA, Category: CategoryGameInput, Description: "A button"},
	GBButtonB:      {Action: GBButtonB, Category: CategoryGameInput, Description: "B button"},
	GBButtonStart:  {Action: GBButtonStart, Category: CategoryGameInput, Description: "Start button"},
	GBButtonSelect: {Action: GBButtonSelect, Category: CategoryGameInput, Description: "Select button"},
	GBDPadUp:       {Action: GBDPadUp, Category: CategoryGameInput, Description: "D-Pad Up"},
	GBDPadDown:     {Action: GBDPadDown, Category: CategoryGameInput, Description: "D-Pad Down"},
	GBDPadLeft:     {Action: GBDPadLeft, Category: CategoryGameInput, Description: "D-Pad Left"},
	GBDPadRight:    {Action: GBDPadRight, Category: CategoryGameInput, Description: "D-Pad Right"},

	EmulatorPauseToggle: {Action: EmulatorPauseToggle, Category: CategoryEmulator, Debounce: true, Description: "Toggle pause"},
	EmulatorStepFrame:   {Action: EmulatorStepFrame, Category: CategoryEmulator, Debounce: true, Description: "Step one frame"},
	EmulatorQuit:        {Action: EmulatorQuit, Category: CategoryEmulator, Debounce: true, Description: "Quit"},
}

// GetInfo returns metadata for an action, or a zero-value default for an
// unrecognized one.
func GetInfo(a Action) Info {
	if info, ok := infoByAction[a]; ok {
		return info
	}
	return Info{Action: a, Category: CategoryEmulator}
}
