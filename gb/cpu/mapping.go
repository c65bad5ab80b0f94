package cpu

// Step advances the CPU by one instruction (or one idle tick while halted),
// servicing a pending interrupt first if one is ready. It returns the
// number of machine cycles (M-cycles) consumed; callers advance PPU/timer/
// APU state by 4x this value to get T-states/dots.
func (cpu *CPU) Step() int {
	if tStates := cpu.serviceInterrupts(); tStates > 0 {
		return tStates / 4
	}

	if cpu.halted || cpu.stopped {
		return 1
	}

	cpu.currentOpcode = cpu.readImmediate()
	handler := cpu.opcodeTable[cpu.currentOpcode]
	tStates := handler(cpu)
	return tStates / 4
}

// IME reports whether interrupts are currently enabled, for debuggers/tests.
func (cpu *CPU) IME() bool { return cpu.ime }

// Halted reports whether the CPU is in the HALT state.
func (cpu *CPU) Halted() bool { return cpu.halted }

// PC returns the current program counter, for debuggers/tests.
func (cpu *CPU) PC() uint16 { return cpu.pc }

// SP returns the current stack pointer, for debuggers/tests.
func (cpu *CPU) SP() uint16 { return cpu.sp }

// Registers returns the full 8-bit register file (A,F,B,C,D,E,H,L), for
// debuggers/tests.
func (cpu *CPU) Registers() (a, f, b, c, d, e, h, l uint8) {
	return cpu.a, cpu.f, cpu.b, cpu.c, cpu.d, cpu.e, cpu.h, cpu.l
}

// SetPC forcibly sets the program counter, for debuggers and tests.
func (cpu *CPU) SetPC(pc uint16) { cpu.pc = pc }
