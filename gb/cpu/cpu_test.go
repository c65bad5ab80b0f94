package cpu

import (
	"testing"

	"github.com/hollow-byte/pocketgb/gb/memory"
	"github.com/stretchr/testify/assert"
)

func newTestCPU(t *testing.T) *CPU {
	t.Helper()
	mmu := memory.New()
	return New(mmu)
}

func TestCPU_addToA_halfCarryAndCarry(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.a = 0x3A
	cpu.addToA(0xC6)

	assert.Equal(t, uint8(0x00), cpu.a)
	assert.True(t, cpu.isSetFlag(zeroFlag))
	assert.True(t, cpu.isSetFlag(halfCarryFlag))
	assert.True(t, cpu.isSetFlag(carryFlag))
	assert.False(t, cpu.isSetFlag(subFlag))
}

func TestCPU_daa_afterAdd(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.a = 0x45
	cpu.addToA(0x38)
	cpu.daa()

	assert.Equal(t, uint8(0x83), cpu.a)
	assert.False(t, cpu.isSetFlag(carryFlag))
	assert.False(t, cpu.isSetFlag(zeroFlag))
}

func TestCPU_swap(t *testing.T) {
	cpu := newTestCPU(t)

	result := cpu.swap(0xF0)

	assert.Equal(t, uint8(0x0F), result)
	assert.False(t, cpu.isSetFlag(zeroFlag))
	assert.False(t, cpu.isSetFlag(carryFlag))

	result = cpu.swap(0x00)
	assert.Equal(t, uint8(0x00), result)
	assert.True(t, cpu.isSetFlag(zeroFlag))
}

func TestCPU_pushPopAF_lowNibbleAlwaysZero(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.sp = 0xFFFE

	cpu.setAF(0x12FF)
	assert.Equal(t, uint8(0xF0), cpu.f, "low nibble of F must be masked on write")

	cpu.push(cpu.getAF())
	cpu.setAF(0)
	popped := cpu.pop()

	assert.Equal(t, uint16(0x12F0), popped)
}

func TestCPU_rotateRoundTrip(t *testing.T) {
	cpu := newTestCPU(t)

	original := uint8(0xB5)
	rotated := cpu.rlc(original)
	restored := cpu.rrc(rotated)

	assert.Equal(t, original, restored)
}

func TestCPU_rl_rr_throughCarry(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.resetFlag(carryFlag)
	result := cpu.rl(0x80)

	assert.Equal(t, uint8(0x00), result)
	assert.True(t, cpu.isSetFlag(carryFlag))
	assert.True(t, cpu.isSetFlag(zeroFlag))

	result = cpu.rr(0x01)
	assert.Equal(t, uint8(0x80), result, "carry from the previous op feeds into bit 7")
	assert.True(t, cpu.isSetFlag(carryFlag))
}

func TestCPU_bitTest(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.bitTest(7, 0x80)
	assert.False(t, cpu.isSetFlag(zeroFlag))

	cpu.bitTest(7, 0x7F)
	assert.True(t, cpu.isSetFlag(zeroFlag))
	assert.True(t, cpu.isSetFlag(halfCarryFlag))
	assert.False(t, cpu.isSetFlag(subFlag))
}

func TestCPU_cp_doesNotModifyA(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.a = 0x10
	cpu.cp(0x10)

	assert.Equal(t, uint8(0x10), cpu.a)
	assert.True(t, cpu.isSetFlag(zeroFlag))
	assert.True(t, cpu.isSetFlag(subFlag))
}

func TestCPU_addToHL_carry(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.setHL(0xFFFF)
	cpu.addToHL(0x0001)

	assert.Equal(t, uint16(0x0000), cpu.getHL())
	assert.True(t, cpu.isSetFlag(carryFlag))
	assert.True(t, cpu.isSetFlag(halfCarryFlag))
}

func TestCPU_regAt_indirectHL(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.setHL(0xC000)
	cpu.setRegAt(6, 0x42)

	assert.Equal(t, uint8(0x42), cpu.regAt(6))
}
