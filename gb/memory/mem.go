package memory

import (
	"fmt"
	"log/slog"

	"github.com/hollow-byte/pocketgb/gb/addr"
	"github.com/hollow-byte/pocketgb/gb/audio"
	"github.com/hollow-byte/pocketgb/gb/bit"
	"github.com/hollow-byte/pocketgb/gb/serial"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

// JoypadKey represents a key on the Game Boy joypad.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// SerialPort is the minimal interface for a device connected to SB/SC.
// Implementations must only accept reads/writes to addr.SB and addr.SC.
type SerialPort interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Tick(cycles int)
	Reset()
}

// MMU routes every CPU-visible address to the region or peripheral that owns
// it: cartridge ROM/RAM via the active MBC, VRAM/WRAM/OAM as flat slices,
// and the timer/serial/APU/joypad registers that live in the I/O page.
type MMU struct {
	cart *Cartridge
	mbc  MBC

	memory    []byte
	regionMap [256]memRegion

	APU *audio.APU

	joypadButtons uint8
	joypadDpad    uint8

	serial SerialPort
	timer  Timer

	bootROM    []byte
	bootActive bool
}

// New creates a memory unit with no cartridge loaded, equivalent to turning
// on the console with an empty cartridge slot.
func New() *MMU {
	mmu := &MMU{
		memory:        make([]byte, 0x10000),
		cart:          NewCartridge(),
		mbc:           NewNoMBC(make([]byte, 0x8000)),
		APU:           audio.New(),
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
	}
	mmu.serial = serial.NewLogSink(func() { mmu.RequestInterrupt(addr.SerialInterrupt) })
	mmu.timer.TimerInterruptHandler = func() { mmu.RequestInterrupt(addr.TimerInterrupt) }
	initRegionMap(mmu)
	return mmu
}

// NewWithCartridge creates a memory unit with the given cartridge's ROM
// loaded and its MBC wired up.
func NewWithCartridge(cart *Cartridge) (*MMU, error) {
	mmu := New()
	mmu.cart = cart

	switch cart.mbcType {
	case NoMBCType:
		mmu.mbc = NewNoMBC(cart.data)
	case MBC1Type, MBC1MultiType:
		mmu.mbc = NewMBC1(cart.data, cart.hasBattery, cart.ramBankCount)
	case MBC2Type:
		mmu.mbc = NewMBC2(cart.data)
	case MBC3Type:
		mmu.mbc = NewMBC3(cart.data, cart.ramBankCount, cart.hasRTC, nil)
	case MBC5Type:
		mmu.mbc = NewMBC5(cart.data, cart.hasRumble, cart.ramBankCount)
	default:
		return nil, fmt.Errorf("memory: unsupported MBC type %d", cart.mbcType)
	}

	slog.Info("cartridge loaded", "title", cart.Title(), "ramBanks", cart.ramBankCount, "battery", cart.hasBattery)
	return mmu, nil
}

// LoadBootROM installs a 256-byte boot ROM image, overlaying 0x0000-0x00FF
// until the game writes a non-zero value to addr.BootOff.
func (m *MMU) LoadBootROM(image []byte) error {
	if len(image) != 0x100 {
		return fmt.Errorf("memory: boot ROM must be exactly 256 bytes, got %d", len(image))
	}
	m.bootROM = make([]byte, 0x100)
	copy(m.bootROM, image)
	m.bootActive = true
	return nil
}

// Tick advances the timer and serial port by the given number of T-cycles.
func (m *MMU) Tick(cycles int) {
	m.timer.Tick(cycles)
	if m.serial != nil {
		m.serial.Tick(cycles)
	}
}

// SetTimerSeed initializes the timer's internal divider counter.
func (m *MMU) SetTimerSeed(seed uint16) {
	m.timer.SetSeed(seed)
}

func initRegionMap(m *MMU) {
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	m.regionMap[0xFE] = regionOAM
	m.regionMap[0xFF] = regionIO
}

// RequestInterrupt sets the corresponding bit of the IF register.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	flags := m.Read(addr.IF)
	newFlags := bit.Set(uint8(interrupt), flags)
	m.Write(addr.IF, newFlags)
}

// SetLY sets the LY register directly, bypassing the reset-to-0 behavior
// that applies to CPU/bus writes. The PPU calls this to advance its own
// scanline counter; only writes coming in through Write (a game touching
// the register itself) reset LY to 0.
func (m *MMU) SetLY(line uint8) {
	m.memory[addr.LY] = line
}

func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, m.Read(address))
}

func (m *MMU) SetBit(index uint8, address uint16, set bool) {
	value := m.Read(address)
	if set {
		value = bit.Set(index, value)
	} else {
		value = bit.Reset(index, value)
	}
	m.Write(address, value)
}

func (m *MMU) Read(address uint16) byte {
	if m.bootActive && address <= 0x00FF {
		return m.bootROM[address]
	}

	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		return m.mbc.Read(address)
	case regionVRAM, regionWRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-0x2000]
	case regionOAM:
		return m.memory[address]
	case regionIO:
		return m.readIO(address)
	default:
		return 0xFF
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return m.memory[address]
	case address == addr.SB || address == addr.SC:
		return m.serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.timer.Read(address)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return m.APU.ReadRegister(address)
	case address == addr.IF:
		// Unused upper 3 bits always read back as 1 on real hardware.
		return m.memory[address] | 0xE0
	default:
		return m.memory[address]
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		m.mbc.Write(address, value)
	case regionVRAM, regionWRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[address-0x2000] = value
	case regionOAM:
		m.memory[address] = value
	case regionIO:
		m.writeIO(address, value)
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.writeJoypad(value)
	case address == addr.SB || address == addr.SC:
		m.serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.timer.Write(address, value)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		m.APU.WriteRegister(address, value)
	case address == addr.IF:
		m.memory[address] = value | 0xE0
	case address == addr.DMA:
		m.runOAMDMA(value)
	case address == addr.LY:
		// Writes to LY reset the scanline counter to 0.
		m.memory[address] = 0
	case address == addr.BootOff:
		if value != 0 {
			m.bootActive = false
		}
		m.memory[address] = value
	default:
		m.memory[address] = value
	}
}

// runOAMDMA copies 160 bytes from sourceHigh*0x100 into OAM (0xFE00-0xFE9F).
func (m *MMU) runOAMDMA(sourceHigh byte) {
	sourceAddr := uint16(sourceHigh) << 8
	for i := uint16(0); i < 160; i++ {
		m.memory[0xFE00+i] = m.Read(sourceAddr + i)
	}
	m.memory[addr.DMA] = sourceHigh
}

// updateJoypadRegister recomputes P1's low nibble from the selection bits
// (written by the game) and the live button/d-pad state.
func (m *MMU) updateJoypadRegister() {
	p1 := m.memory[addr.P1]
	result := uint8(0b11000000)
	result |= p1 & 0b00110000

	selectDpad := !bit.IsSet(4, p1)
	selectButtons := !bit.IsSet(5, p1)

	switch {
	case selectButtons && !selectDpad:
		result |= m.joypadButtons & 0x0F
	case selectDpad && !selectButtons:
		result |= m.joypadDpad & 0x0F
	case selectButtons && selectDpad:
		result |= m.joypadButtons & m.joypadDpad & 0x0F
	default:
		result |= 0x0F
	}

	m.memory[addr.P1] = result
}

func (m *MMU) writeJoypad(value uint8) {
	m.memory[addr.P1] = value & 0b00110000
	m.updateJoypadRegister()
}

// HandleKeyPress marks key as pressed (active-low internally) and raises the
// joypad interrupt if this is a genuine 1->0 transition while selected.
func (m *MMU) HandleKeyPress(key JoypadKey) {
	oldButtons, oldDpad := m.joypadButtons, m.joypadDpad

	switch key {
	case JoypadRight:
		m.joypadDpad = bit.Reset(0, m.joypadDpad)
	case JoypadLeft:
		m.joypadDpad = bit.Reset(1, m.joypadDpad)
	case JoypadUp:
		m.joypadDpad = bit.Reset(2, m.joypadDpad)
	case JoypadDown:
		m.joypadDpad = bit.Reset(3, m.joypadDpad)
	case JoypadA:
		m.joypadButtons = bit.Reset(0, m.joypadButtons)
	case JoypadB:
		m.joypadButtons = bit.Reset(1, m.joypadButtons)
	case JoypadSelect:
		m.joypadButtons = bit.Reset(2, m.joypadButtons)
	case JoypadStart:
		m.joypadButtons = bit.Reset(3, m.joypadButtons)
	}

	buttonTransitions := oldButtons &^ m.joypadButtons
	dpadTransitions := oldDpad &^ m.joypadDpad
	p1 := m.memory[addr.P1]
	buttonsSelected := !bit.IsSet(5, p1)
	dpadSelected := !bit.IsSet(4, p1)
	if (buttonTransitions != 0 && buttonsSelected) || (dpadTransitions != 0 && dpadSelected) {
		m.RequestInterrupt(addr.JoypadInterrupt)
	}

	m.updateJoypadRegister()
}

func (m *MMU) HandleKeyRelease(key JoypadKey) {
	switch key {
	case JoypadRight:
		m.joypadDpad = bit.Set(0, m.joypadDpad)
	case JoypadLeft:
		m.joypadDpad = bit.Set(1, m.joypadDpad)
	case JoypadUp:
		m.joypadDpad = bit.Set(2, m.joypadDpad)
	case JoypadDown:
		m.joypadDpad = bit.Set(3, m.joypadDpad)
	case JoypadA:
		m.joypadButtons = bit.Set(0, m.joypadButtons)
	case JoypadB:
		m.joypadButtons = bit.Set(1, m.joypadButtons)
	case JoypadSelect:
		m.joypadButtons = bit.Set(2, m.joypadButtons)
	case JoypadStart:
		m.joypadButtons = bit.Set(3, m.joypadButtons)
	}
	m.updateJoypadRegister()
}

// Cartridge exposes the loaded cartridge's metadata (title, etc).
func (m *MMU) Cartridge() *Cartridge {
	return m.cart
}

// SaveRAM returns the active MBC's external RAM, for writing to a save
// file when the cartridge is battery-backed.
func (m *MMU) SaveRAM() []byte {
	return m.mbc.SaveRAM()
}

// LoadRAM restores external RAM from a save file loaded at startup.
func (m *MMU) LoadRAM(data []byte) {
	m.mbc.LoadRAM(data)
}
