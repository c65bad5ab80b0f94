// Package cpu implements the Sharp LR35902 CPU: registers, the full
// unprefixed and CB-prefixed instruction sets, and interrupt servicing.
package cpu

import (
	"fmt"

	"github.com/hollow-byte/pocketgb/gb/bit"
)

// Flag bit positions within the F register.
const (
	zeroFlag      uint8 = 7
	subFlag       uint8 = 6
	halfCarryFlag uint8 = 5
	carryFlag     uint8 = 4
)

// Memory is the bus surface the CPU needs: byte-addressed read/write only.
// Interrupt flags are read and cleared through IF/IE like any other
// address; IME is held in the CPU itself.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU holds the DMG register file and drives fetch-decode-execute.
type CPU struct {
	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16

	ime     bool
	halted  bool
	stopped bool

	currentOpcode uint8

	memory Memory

	opcodeTable   [256]func(*CPU) int
	cbOpcodeTable [256]func(*CPU) int
}

// New creates a CPU wired to the given bus, with registers zeroed (PC=0),
// suitable for running the boot ROM from address 0.
func New(memory Memory) *CPU {
	cpu := &CPU{memory: memory}
	cpu.buildOpcodeTable()
	cpu.buildCBOpcodeTable()
	return cpu
}

// ResetPostBoot initializes registers to the documented DMG post-boot-ROM
// state and sets PC=0x100, for running with --no-boot.
func (cpu *CPU) ResetPostBoot() {
	cpu.a, cpu.f = 0x01, 0xB0
	cpu.b, cpu.c = 0x00, 0x13
	cpu.d, cpu.e = 0x00, 0xD8
	cpu.h, cpu.l = 0x01, 0x4D
	cpu.sp = 0xFFFE
	cpu.pc = 0x100
	cpu.ime = false
	cpu.halted = false
	cpu.stopped = false
}

func (cpu *CPU) isSetFlag(flag uint8) bool {
	return bit.IsSet(flag, cpu.f)
}

func (cpu *CPU) setFlag(flag uint8) {
	cpu.f = bit.Set(flag, cpu.f) & 0xF0
}

func (cpu *CPU) resetFlag(flag uint8) {
	cpu.f = bit.Reset(flag, cpu.f) & 0xF0
}

func (cpu *CPU) setFlagToCondition(flag uint8, condition bool) {
	if condition {
		cpu.setFlag(flag)
	} else {
		cpu.resetFlag(flag)
	}
}

// regAt returns the value of the r8 operand encoded by index (standard
// B,C,D,E,H,L,(HL),A ordering used throughout the unprefixed and CB tables).
func (cpu *CPU) regAt(index uint8) uint8 {
	switch index {
	case 0:
		return cpu.b
	case 1:
		return cpu.c
	case 2:
		return cpu.d
	case 3:
		return cpu.e
	case 4:
		return cpu.h
	case 5:
		return cpu.l
	case 6:
		return cpu.memory.Read(cpu.getHL())
	case 7:
		return cpu.a
	default:
		panic(fmt.Sprintf("cpu: invalid register index %d", index))
	}
}

func (cpu *CPU) setRegAt(index uint8, value uint8) {
	switch index {
	case 0:
		cpu.b = value
	case 1:
		cpu.c = value
	case 2:
		cpu.d = value
	case 3:
		cpu.e = value
	case 4:
		cpu.h = value
	case 5:
		cpu.l = value
	case 6:
		cpu.memory.Write(cpu.getHL(), value)
	case 7:
		cpu.a = value
	default:
		panic(fmt.Sprintf("cpu: invalid register index %d", index))
	}
}

// illegalOpcode panics, matching real hardware locking up on these bytes.
func illegalOpcode(cpu *CPU) int {
	panic(fmt.Sprintf("cpu: illegal opcode 0x%02X at PC=0x%04X", cpu.currentOpcode, cpu.pc-1))
}
