package memory

import (
	"testing"

	"github.com/hollow-byte/pocketgb/gb/addr"
	"github.com/stretchr/testify/assert"
)

func TestMMU_echoRAMMirrorsWorkRAM(t *testing.T) {
	m := New()

	m.Write(0xC010, 0x55)
	assert.Equal(t, uint8(0x55), m.Read(0xE010))

	m.Write(0xE020, 0x66)
	assert.Equal(t, uint8(0x66), m.Read(0xC020))
}

func TestMMU_oamDMACopies160Bytes(t *testing.T) {
	m := New()

	for i := uint16(0); i < 160; i++ {
		m.Write(0xC000+i, byte(i))
	}

	m.Write(addr.DMA, 0xC0)

	for i := uint16(0); i < 160; i++ {
		assert.Equal(t, byte(i), m.Read(0xFE00+i))
	}
}

func TestMMU_writeToLYResetsToZero(t *testing.T) {
	m := New()
	m.SetLY(42)
	assert.Equal(t, uint8(42), m.Read(addr.LY))

	m.Write(addr.LY, 99)
	assert.Equal(t, uint8(0), m.Read(addr.LY))
}

func TestMMU_setLYBypassesResetBehavior(t *testing.T) {
	m := New()
	m.SetLY(10)
	assert.Equal(t, uint8(10), m.Read(addr.LY))
	m.SetLY(11)
	assert.Equal(t, uint8(11), m.Read(addr.LY))
}

func TestMMU_writeToDIVResetsDivider(t *testing.T) {
	m := New()
	m.SetTimerSeed(0x1234)
	assert.NotEqual(t, uint8(0), m.Read(addr.DIV))

	m.Write(addr.DIV, 0xFF)
	assert.Equal(t, uint8(0), m.Read(addr.DIV))
}

func TestMMU_bootROMOverlaysLowMemoryUntilDisabled(t *testing.T) {
	m := New()
	boot := make([]byte, 0x100)
	boot[0x00] = 0xAA
	assert.NoError(t, m.LoadBootROM(boot))

	m.Write(0x0000, 0x11) // ROM writes are ignored, boot overlay still reads back
	assert.Equal(t, uint8(0xAA), m.Read(0x0000))

	m.Write(addr.BootOff, 0x01)
	assert.NotEqual(t, uint8(0xAA), m.Read(0x0000))
}

func TestMMU_loadBootROMRejectsWrongSize(t *testing.T) {
	m := New()
	err := m.LoadBootROM(make([]byte, 10))
	assert.Error(t, err)
}

func TestMMU_ifRegisterUnusedBitsReadAsSet(t *testing.T) {
	m := New()
	m.Write(addr.IF, 0x00)
	assert.Equal(t, uint8(0xE0), m.Read(addr.IF))
}

func TestMMU_handleKeyPressRequestsInterruptOnTransition(t *testing.T) {
	m := New()
	m.HandleKeyPress(JoypadA)
	assert.NotEqual(t, byte(0), m.Read(addr.IF)&(1<<uint(addr.JoypadInterrupt)))
}

func TestMMU_timerOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	m := New()
	m.Write(addr.TAC, 0x05) // enabled, input clock selects counter bit 3
	m.Write(addr.TIMA, 0xFF)
	m.Write(addr.TMA, 0x20)
	m.timer.systemCounter = 0x0008
	m.timer.lastTimerBit = true // bit 3 already observed high, next fall triggers the edge

	m.Tick(8) // counter reaches 0x0010, bit 3 falls, TIMA wraps and schedules the delayed reload

	assert.Equal(t, uint8(0x00), m.Read(addr.TIMA), "TIMA has wrapped but not yet reloaded")
	assert.Equal(t, byte(0), m.Read(addr.IF)&(1<<uint(addr.TimerInterrupt)))

	m.Tick(4) // the delayed reload fires

	assert.Equal(t, uint8(0x20), m.Read(addr.TIMA))

	m.Tick(1) // interrupt request is flagged at the start of the following tick

	assert.NotEqual(t, byte(0), m.Read(addr.IF)&(1<<uint(addr.TimerInterrupt)))
}

func TestMMU_handleKeyPressIsIdempotentWithoutInterrupt(t *testing.T) {
	m := New()
	m.HandleKeyPress(JoypadA)
	m.Write(addr.IF, 0x00) // clear
	m.HandleKeyPress(JoypadA) // already pressed, no new transition
	assert.Equal(t, byte(0), m.Read(addr.IF)&(1<<uint(addr.JoypadInterrupt)))
}

func TestMMU_joypadSelectsButtonsVsDpad(t *testing.T) {
	m := New()
	m.HandleKeyPress(JoypadA)
	m.HandleKeyPress(JoypadUp)

	m.Write(addr.P1, 0b00010000) // select buttons (bit4 low)
	buttons := m.Read(addr.P1) & 0x0F
	assert.Equal(t, uint8(0x0E), buttons) // bit0 (A) clear, rest set

	m.Write(addr.P1, 0b00100000) // select d-pad (bit5 low)
	dpad := m.Read(addr.P1) & 0x0F
	assert.Equal(t, uint8(0x0B), dpad) // bit2 (Up) clear, rest set
}
