package cpu

import "github.com/hollow-byte/pocketgb/gb/bit"

func (cpu *CPU) getAF() uint16 { return bit.Combine(cpu.a, cpu.f) }

func (cpu *CPU) setAF(value uint16) {
	cpu.a = bit.High(value)
	cpu.f = bit.Low(value) & 0xF0
}

func (cpu *CPU) getBC() uint16 { return bit.Combine(cpu.b, cpu.c) }

func (cpu *CPU) setBC(value uint16) {
	cpu.b = bit.High(value)
	cpu.c = bit.Low(value)
}

func (cpu *CPU) getDE() uint16 { return bit.Combine(cpu.d, cpu.e) }

func (cpu *CPU) setDE(value uint16) {
	cpu.d = bit.High(value)
	cpu.e = bit.Low(value)
}

func (cpu *CPU) getHL() uint16 { return bit.Combine(cpu.h, cpu.l) }

func (cpu *CPU) setHL(value uint16) {
	cpu.h = bit.High(value)
	cpu.l = bit.Low(value)
}

// readImmediate fetches the byte at PC and advances PC by one.
func (cpu *CPU) readImmediate() uint8 {
	value := cpu.memory.Read(cpu.pc)
	cpu.pc++
	return value
}

// readImmediateWord fetches the little-endian word at PC and advances PC by two.
func (cpu *CPU) readImmediateWord() uint16 {
	low := cpu.readImmediate()
	high := cpu.readImmediate()
	return bit.Combine(high, low)
}

// readSignedImmediate fetches the byte at PC as a signed displacement.
func (cpu *CPU) readSignedImmediate() int8 {
	return int8(cpu.readImmediate())
}
