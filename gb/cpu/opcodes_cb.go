package cpu

// buildCBOpcodeTable fills in all 256 CB-prefixed opcodes: the eight
// rotate/shift/swap operations and BIT/RES/SET, each applied to every r8
// operand (B,C,D,E,H,L,(HL),A). All 256 entries follow this same regular
// grid, so the table is built by looping over operation and operand rather
// than by hand.
func (cpu *CPU) buildCBOpcodeTable() {
	t := &cpu.cbOpcodeTable

	shiftOps := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}
	for op := uint8(0); op < 8; op++ {
		for reg := uint8(0); reg < 8; reg++ {
			opcode := op*8 + reg
			fn, r := shiftOps[op], reg
			cycles := 8
			if r == 6 {
				cycles = 16
			}
			t[opcode] = func(cpu *CPU) int {
				cpu.setRegAt(r, fn(cpu, cpu.regAt(r)))
				return cycles
			}
		}
	}

	for bitIndex := uint8(0); bitIndex < 8; bitIndex++ {
		for reg := uint8(0); reg < 8; reg++ {
			b, r := bitIndex, reg

			bitOpcode := 0x40 + b*8 + r
			bitCycles := 8
			if r == 6 {
				bitCycles = 12
			}
			t[bitOpcode] = func(cpu *CPU) int {
				cpu.bitTest(b, cpu.regAt(r))
				return bitCycles
			}

			resOpcode := 0x80 + b*8 + r
			resSetCycles := 8
			if r == 6 {
				resSetCycles = 16
			}
			t[resOpcode] = func(cpu *CPU) int {
				cpu.setRegAt(r, resBit(b, cpu.regAt(r)))
				return resSetCycles
			}

			setOpcode := 0xC0 + b*8 + r
			t[setOpcode] = func(cpu *CPU) int {
				cpu.setRegAt(r, setBit(b, cpu.regAt(r)))
				return resSetCycles
			}
		}
	}
}
