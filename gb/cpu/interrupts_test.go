package cpu

import (
	"testing"

	"github.com/hollow-byte/pocketgb/gb/addr"
	"github.com/hollow-byte/pocketgb/gb/memory"
	"github.com/stretchr/testify/assert"
)

func TestCPU_serviceInterrupts_vblankVector(t *testing.T) {
	mmu := memory.New()
	cpu := New(mmu)
	cpu.pc = 0xC050
	cpu.sp = 0xFFFE
	cpu.ime = true

	mmu.Write(addr.IE, 0x01)
	mmu.Write(addr.IF, 0x01)

	tStates := cpu.serviceInterrupts()

	assert.Equal(t, 20, tStates)
	assert.Equal(t, addr.VBlankVector, cpu.pc)
	assert.False(t, cpu.ime)
	assert.Equal(t, uint8(0xE0), mmu.Read(addr.IF), "serviced bit cleared; unused upper bits read as 1")
	assert.Equal(t, uint16(0xFFFC), cpu.sp)
}

func TestCPU_serviceInterrupts_disabledByIME(t *testing.T) {
	mmu := memory.New()
	cpu := New(mmu)
	cpu.pc = 0xC050
	cpu.ime = false

	mmu.Write(addr.IE, 0x01)
	mmu.Write(addr.IF, 0x01)

	tStates := cpu.serviceInterrupts()

	assert.Equal(t, 0, tStates)
	assert.Equal(t, uint16(0xC050), cpu.pc)
}

func TestCPU_serviceInterrupts_priority(t *testing.T) {
	mmu := memory.New()
	cpu := New(mmu)
	cpu.pc = 0xC050
	cpu.sp = 0xFFFE
	cpu.ime = true

	mmu.Write(addr.IE, 0x1F)
	mmu.Write(addr.IF, 0x06) // LCDSTAT and Timer both pending

	cpu.serviceInterrupts()

	assert.Equal(t, addr.LCDSTATVector, cpu.pc, "lower-numbered interrupt bit wins")
	assert.Equal(t, uint8(0xE4), mmu.Read(addr.IF), "only the serviced bit is cleared")
}

func TestCPU_serviceInterrupts_wakesFromHalt(t *testing.T) {
	mmu := memory.New()
	cpu := New(mmu)
	cpu.halted = true
	cpu.ime = false

	mmu.Write(addr.IE, 0x01)
	mmu.Write(addr.IF, 0x01)

	cpu.serviceInterrupts()

	assert.False(t, cpu.halted, "a pending interrupt wakes the CPU even with IME disabled")
}
