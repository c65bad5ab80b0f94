// Package gb ties the CPU, PPU, and memory bus into a runnable console:
// cartridge loading, the scheduler loop, save-RAM persistence, and the
// debugger-state machine a host frontend drives.
package gb

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/hollow-byte/pocketgb/gb/addr"
	"github.com/hollow-byte/pocketgb/gb/cpu"
	"github.com/hollow-byte/pocketgb/gb/memory"
	"github.com/hollow-byte/pocketgb/gb/video"
)

const cyclesPerFrame = 70224

// DebuggerState represents the current debugger mode.
type DebuggerState int

const (
	DebuggerRunning   DebuggerState = iota // normal execution
	DebuggerPaused                         // paused, waiting for commands
	DebuggerStep                           // execute one instruction then pause
	DebuggerStepFrame                      // execute one frame then pause
)

// Console is the root emulator: CPU, PPU and memory bus advanced in
// lock-step by the scheduler loop, plus the debugger-state machine a
// frontend drives via Pause/Resume/StepInstruction/StepFrame.
type Console struct {
	cpu *cpu.CPU
	ppu *video.PPU
	mem *memory.MMU

	savePath string

	debuggerState    DebuggerState
	debuggerMutex    sync.RWMutex
	stepRequested    bool
	frameRequested   bool
	instructionCount uint64
	frameCount       uint64
}

// New creates a console with an empty cartridge slot (useful for running
// only the boot ROM, or for tests).
func New() *Console {
	mmu := memory.New()
	return newConsole(mmu)
}

// NewWithROM loads a cartridge image from path, wires its MBC, and restores
// any existing battery-backed save file (path with its extension replaced
// by ".sav").
func NewWithROM(path string) (*Console, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gb: reading ROM: %w", err)
	}

	cart, err := memory.NewCartridgeWithData(data)
	if err != nil {
		return nil, fmt.Errorf("gb: parsing cartridge header: %w", err)
	}

	mmu, err := memory.NewWithCartridge(cart)
	if err != nil {
		return nil, fmt.Errorf("gb: initializing MBC: %w", err)
	}

	c := newConsole(mmu)

	if cart.HasBattery() {
		c.savePath = savePathFor(path)
		if saveData, err := os.ReadFile(c.savePath); err == nil {
			mmu.LoadRAM(saveData)
			slog.Info("loaded save RAM", "path", c.savePath, "bytes", len(saveData))
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("gb: reading save file: %w", err)
		}
	}

	return c, nil
}

func savePathFor(romPath string) string {
	ext := ""
	if i := strings.LastIndexByte(romPath, '.'); i >= 0 {
		ext = romPath[i:]
	}
	return strings.TrimSuffix(romPath, ext) + ".sav"
}

func newConsole(mmu *memory.MMU) *Console {
	c := &Console{
		cpu: cpu.New(mmu),
		ppu: video.New(mmu),
		mem: mmu,
	}
	mmu.SetTimerSeed(0xABCC)
	return c
}

// LoadBootROM installs a 256-byte boot ROM image, overlaying the cartridge
// entry point until the boot ROM disables itself. When omitted (or
// --no-boot is passed at the CLI), call ResetSkipBoot instead.
func (c *Console) LoadBootROM(image []byte) error {
	return c.mem.LoadBootROM(image)
}

// ResetSkipBoot initializes CPU registers to the documented DMG post-boot
// state and jumps straight to the cartridge entry point (0x100), equivalent
// to running the boot ROM without actually executing it.
func (c *Console) ResetSkipBoot() {
	c.cpu.ResetPostBoot()
}

// FlushSave writes the active MBC's battery-backed RAM to the save file
// path derived from the ROM path, if the cartridge is battery-backed. A
// host should call this on clean shutdown.
func (c *Console) FlushSave() error {
	if c.savePath == "" {
		return nil
	}
	data := c.mem.SaveRAM()
	if len(data) == 0 {
		return nil
	}
	if err := os.WriteFile(c.savePath, data, 0644); err != nil {
		return fmt.Errorf("gb: writing save file: %w", err)
	}
	slog.Info("flushed save RAM", "path", c.savePath, "bytes", len(data))
	return nil
}

// RunUntilFrame advances the console until one full frame (70224 T-states)
// has been produced, honoring the debugger state: paused consoles do
// nothing, step/step-frame consoles advance once then re-pause.
func (c *Console) RunUntilFrame() {
	c.debuggerMutex.RLock()
	state := c.debuggerState
	c.debuggerMutex.RUnlock()

	switch state {
	case DebuggerPaused:
		return
	case DebuggerStep:
		c.debuggerMutex.Lock()
		requested := c.stepRequested
		c.stepRequested = false
		c.debuggerMutex.Unlock()
		if requested {
			c.step()
			c.SetDebuggerState(DebuggerPaused)
		}
		return
	case DebuggerStepFrame:
		c.debuggerMutex.Lock()
		requested := c.frameRequested
		c.frameRequested = false
		c.debuggerMutex.Unlock()
		if requested {
			c.runFrame()
			c.SetDebuggerState(DebuggerPaused)
		}
		return
	default:
		c.runFrame()
	}
}

func (c *Console) runFrame() {
	total := 0
	for total < cyclesPerFrame {
		total += c.step()
	}
	c.frameCount++
	if c.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", c.frameCount, "pc", fmt.Sprintf("0x%04X", c.cpu.PC()))
	}
}

// step executes one CPU instruction (or one idle M-cycle while halted) and
// advances PPU/timer/serial/APU by the equivalent T-states. Returns the
// number of T-states consumed, for frame-boundary accounting.
func (c *Console) step() int {
	mCycles := c.cpu.Step()
	tStates := mCycles * 4

	c.mem.Tick(tStates)
	c.mem.APU.Tick(tStates)
	c.ppu.Tick(tStates)

	c.instructionCount++
	return tStates
}

// GetCurrentFrame returns the most recently completed PPU frame.
func (c *Console) GetCurrentFrame() *video.FrameBuffer {
	return c.ppu.FrameBuffer()
}

// HandleKeyPress routes a Game Boy joypad button press into the console.
func (c *Console) HandleKeyPress(key memory.JoypadKey) {
	c.mem.HandleKeyPress(key)
}

// HandleKeyRelease routes a Game Boy joypad button release into the console.
func (c *Console) HandleKeyRelease(key memory.JoypadKey) {
	c.mem.HandleKeyRelease(key)
}

// CPU exposes the CPU for debuggers/tests.
func (c *Console) CPU() *cpu.CPU { return c.cpu }

// MMU exposes the memory bus for debuggers/tests.
func (c *Console) MMU() *memory.MMU { return c.mem }

// SetDebuggerState changes the debugger mode.
func (c *Console) SetDebuggerState(state DebuggerState) {
	c.debuggerMutex.Lock()
	defer c.debuggerMutex.Unlock()
	c.debuggerState = state
}

// GetDebuggerState reports the current debugger mode.
func (c *Console) GetDebuggerState() DebuggerState {
	c.debuggerMutex.RLock()
	defer c.debuggerMutex.RUnlock()
	return c.debuggerState
}

// Pause stops execution; RunUntilFrame becomes a no-op until Resume.
func (c *Console) Pause() {
	c.SetDebuggerState(DebuggerPaused)
}

// Resume returns to normal frame-by-frame execution.
func (c *Console) Resume() {
	c.SetDebuggerState(DebuggerRunning)
}

// StepInstruction requests a single-instruction advance on the next
// RunUntilFrame call, then re-pauses.
func (c *Console) StepInstruction() {
	c.debuggerMutex.Lock()
	defer c.debuggerMutex.Unlock()
	c.stepRequested = true
	c.debuggerState = DebuggerStep
}

// StepFrame requests a single-frame advance on the next RunUntilFrame
// call, then re-pauses.
func (c *Console) StepFrame() {
	c.debuggerMutex.Lock()
	defer c.debuggerMutex.Unlock()
	c.frameRequested = true
	c.debuggerState = DebuggerStepFrame
}

// InstructionCount returns the total number of CPU instructions executed.
func (c *Console) InstructionCount() uint64 { return c.instructionCount }

// FrameCount returns the total number of frames completed.
func (c *Console) FrameCount() uint64 { return c.frameCount }

// RequestInterrupt lets the joypad subsystem (or a host frontend) raise an
// interrupt directly, matching the memory bus's own interrupt surface.
func (c *Console) RequestInterrupt(interrupt addr.Interrupt) {
	c.mem.RequestInterrupt(interrupt)
}
