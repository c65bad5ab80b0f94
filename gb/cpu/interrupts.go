package cpu

import "github.com/hollow-byte/pocketgb/gb/addr"

// interruptVectors gives the ISR jump target and IF/IE bit for each
// interrupt source, in hardware priority order (VBlank highest).
var interruptVectors = []struct {
	bit    uint8
	vector uint16
}{
	{0, addr.VBlankVector},
	{1, addr.LCDSTATVector},
	{2, addr.TimerVector},
	{3, addr.SerialVector},
	{4, addr.JoypadVector},
}

// serviceInterrupts checks IF & IE and, if IME is set and a pending
// interrupt exists, services the highest-priority one: pushes PC, jumps to
// its vector, clears its IF bit, and clears IME. Returns the T-states
// consumed, 0 if nothing was serviced. Also wakes the CPU from HALT on any
// pending interrupt regardless of IME, matching documented behavior.
func (cpu *CPU) serviceInterrupts() int {
	flags := cpu.memory.Read(addr.IF)
	enabled := cpu.memory.Read(addr.IE)
	pending := flags & enabled & 0x1F

	if pending == 0 {
		return 0
	}

	if cpu.halted {
		cpu.halted = false
	}

	if !cpu.ime {
		return 0
	}

	for _, iv := range interruptVectors {
		if pending&(1<<iv.bit) == 0 {
			continue
		}
		cpu.ime = false
		cpu.memory.Write(addr.IF, flags&^(1<<iv.bit))
		cpu.push(cpu.pc)
		cpu.pc = iv.vector
		return 20
	}

	return 0
}
