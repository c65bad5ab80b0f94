// Package addr collects the memory-mapped I/O register addresses and
// interrupt identifiers shared across the cpu, memory, video and audio
// packages, so none of them need to hardcode magic numbers.
package addr

// Interrupt identifies one of the five Game Boy interrupt sources.
type Interrupt uint8

const (
	VBlankInterrupt  Interrupt = iota // bit 0
	LCDSTATInterrupt                  // bit 1
	TimerInterrupt                    // bit 2
	SerialInterrupt                   // bit 3
	JoypadInterrupt                   // bit 4
)

// Interrupt service vectors, in priority order (lowest bit serviced first).
const (
	VBlankVector  uint16 = 0x40
	LCDSTATVector uint16 = 0x48
	TimerVector   uint16 = 0x50
	SerialVector  uint16 = 0x58
	JoypadVector  uint16 = 0x60
)

// joypad
const P1 uint16 = 0xFF00

// serial
const (
	SB uint16 = 0xFF01
	SC uint16 = 0xFF02
)

// timer
const (
	DIV  uint16 = 0xFF04
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
)

// interrupt flags / enable
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// gpu registers
const (
	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// boot ROM disable latch
const BootOff uint16 = 0xFF50

// Audio/Sound registers - APU (Audio Processing Unit)
// Reference: https://gbdev.io/pandocs/Audio_Registers.html
const (
	AudioStart uint16 = 0xFF10
	AudioEnd   uint16 = 0xFF3F

	// Channel 1 - Square wave with sweep
	NR10 uint16 = 0xFF10
	NR11 uint16 = 0xFF11
	NR12 uint16 = 0xFF12
	NR13 uint16 = 0xFF13
	NR14 uint16 = 0xFF14

	// Channel 2 - Square wave
	NR21 uint16 = 0xFF16
	NR22 uint16 = 0xFF17
	NR23 uint16 = 0xFF18
	NR24 uint16 = 0xFF19

	// Channel 3 - Custom wave
	NR30 uint16 = 0xFF1A
	NR31 uint16 = 0xFF1B
	NR32 uint16 = 0xFF1C
	NR33 uint16 = 0xFF1D
	NR34 uint16 = 0xFF1E

	// Channel 4 - Noise
	NR41 uint16 = 0xFF20
	NR42 uint16 = 0xFF21
	NR43 uint16 = 0xFF22
	NR44 uint16 = 0xFF23

	// Global sound control
	NR50 uint16 = 0xFF24
	NR51 uint16 = 0xFF25
	NR52 uint16 = 0xFF26

	WaveRAMStart uint16 = 0xFF30
	WaveRAMEnd   uint16 = 0xFF3F
)

// OAM (Object Attribute Memory)
const (
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F
)

// tile data and tile maps
const (
	TileData0 uint16 = 0x8000
	TileData2 uint16 = 0x9000

	TileMap0 uint16 = 0x9800
	TileMap1 uint16 = 0x9C00
)

// high RAM
const (
	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE
)
