package cpu

// buildOpcodeTable fills in all 256 unprefixed opcodes. The LD r,r' block
// (0x40-0x7F, minus HALT) and the accumulator ALU block (0x80-0xBF) follow a
// regular operand encoding so they're built by looping over the register
// index rather than writing 64+64 near-identical functions by hand; every
// other opcode gets its own entry.
func (cpu *CPU) buildOpcodeTable() {
	t := &cpu.opcodeTable

	t[0x00] = func(cpu *CPU) int { return 4 }
	t[0x01] = func(cpu *CPU) int { cpu.setBC(cpu.readImmediateWord()); return 12 }
	t[0x02] = func(cpu *CPU) int { cpu.memory.Write(cpu.getBC(), cpu.a); return 8 }
	t[0x03] = func(cpu *CPU) int { cpu.setBC(cpu.getBC() + 1); return 8 }
	t[0x04] = func(cpu *CPU) int { cpu.b = cpu.inc(cpu.b); return 4 }
	t[0x05] = func(cpu *CPU) int { cpu.b = cpu.dec(cpu.b); return 4 }
	t[0x06] = func(cpu *CPU) int { cpu.b = cpu.readImmediate(); return 8 }
	t[0x07] = func(cpu *CPU) int {
		cpu.a = cpu.rlc(cpu.a)
		cpu.resetFlag(zeroFlag)
		return 4
	}
	t[0x08] = func(cpu *CPU) int {
		address := cpu.readImmediateWord()
		cpu.memory.Write(address, uint8(cpu.sp))
		cpu.memory.Write(address+1, uint8(cpu.sp>>8))
		return 20
	}
	t[0x09] = func(cpu *CPU) int { cpu.addToHL(cpu.getBC()); return 8 }
	t[0x0A] = func(cpu *CPU) int { cpu.a = cpu.memory.Read(cpu.getBC()); return 8 }
	t[0x0B] = func(cpu *CPU) int { cpu.setBC(cpu.getBC() - 1); return 8 }
	t[0x0C] = func(cpu *CPU) int { cpu.c = cpu.inc(cpu.c); return 4 }
	t[0x0D] = func(cpu *CPU) int { cpu.c = cpu.dec(cpu.c); return 4 }
	t[0x0E] = func(cpu *CPU) int { cpu.c = cpu.readImmediate(); return 8 }
	t[0x0F] = func(cpu *CPU) int {
		cpu.a = cpu.rrc(cpu.a)
		cpu.resetFlag(zeroFlag)
		return 4
	}

	t[0x10] = func(cpu *CPU) int { cpu.readImmediate(); cpu.stopped = true; return 4 }
	t[0x11] = func(cpu *CPU) int { cpu.setDE(cpu.readImmediateWord()); return 12 }
	t[0x12] = func(cpu *CPU) int { cpu.memory.Write(cpu.getDE(), cpu.a); return 8 }
	t[0x13] = func(cpu *CPU) int { cpu.setDE(cpu.getDE() + 1); return 8 }
	t[0x14] = func(cpu *CPU) int { cpu.d = cpu.inc(cpu.d); return 4 }
	t[0x15] = func(cpu *CPU) int { cpu.d = cpu.dec(cpu.d); return 4 }
	t[0x16] = func(cpu *CPU) int { cpu.d = cpu.readImmediate(); return 8 }
	t[0x17] = func(cpu *CPU) int {
		cpu.a = cpu.rl(cpu.a)
		cpu.resetFlag(zeroFlag)
		return 4
	}
	t[0x18] = func(cpu *CPU) int { cpu.jr(); return 12 }
	t[0x19] = func(cpu *CPU) int { cpu.addToHL(cpu.getDE()); return 8 }
	t[0x1A] = func(cpu *CPU) int { cpu.a = cpu.memory.Read(cpu.getDE()); return 8 }
	t[0x1B] = func(cpu *CPU) int { cpu.setDE(cpu.getDE() - 1); return 8 }
	t[0x1C] = func(cpu *CPU) int { cpu.e = cpu.inc(cpu.e); return 4 }
	t[0x1D] = func(cpu *CPU) int { cpu.e = cpu.dec(cpu.e); return 4 }
	t[0x1E] = func(cpu *CPU) int { cpu.e = cpu.readImmediate(); return 8 }
	t[0x1F] = func(cpu *CPU) int {
		cpu.a = cpu.rr(cpu.a)
		cpu.resetFlag(zeroFlag)
		return 4
	}

	t[0x20] = func(cpu *CPU) int {
		if !cpu.isSetFlag(zeroFlag) {
			cpu.jr()
			return 12
		}
		cpu.readSignedImmediate()
		return 8
	}
	t[0x21] = func(cpu *CPU) int { cpu.setHL(cpu.readImmediateWord()); return 12 }
	t[0x22] = func(cpu *CPU) int {
		cpu.memory.Write(cpu.getHL(), cpu.a)
		cpu.setHL(cpu.getHL() + 1)
		return 8
	}
	t[0x23] = func(cpu *CPU) int { cpu.setHL(cpu.getHL() + 1); return 8 }
	t[0x24] = func(cpu *CPU) int { cpu.h = cpu.inc(cpu.h); return 4 }
	t[0x25] = func(cpu *CPU) int { cpu.h = cpu.dec(cpu.h); return 4 }
	t[0x26] = func(cpu *CPU) int { cpu.h = cpu.readImmediate(); return 8 }
	t[0x27] = func(cpu *CPU) int { cpu.daa(); return 4 }
	t[0x28] = func(cpu *CPU) int {
		if cpu.isSetFlag(zeroFlag) {
			cpu.jr()
			return 12
		}
		cpu.readSignedImmediate()
		return 8
	}
	t[0x29] = func(cpu *CPU) int { cpu.addToHL(cpu.getHL()); return 8 }
	t[0x2A] = func(cpu *CPU) int {
		cpu.a = cpu.memory.Read(cpu.getHL())
		cpu.setHL(cpu.getHL() + 1)
		return 8
	}
	t[0x2B] = func(cpu *CPU) int { cpu.setHL(cpu.getHL() - 1); return 8 }
	t[0x2C] = func(cpu *CPU) int { cpu.l = cpu.inc(cpu.l); return 4 }
	t[0x2D] = func(cpu *CPU) int { cpu.l = cpu.dec(cpu.l); return 4 }
	t[0x2E] = func(cpu *CPU) int { cpu.l = cpu.readImmediate(); return 8 }
	t[0x2F] = func(cpu *CPU) int {
		cpu.a = ^cpu.a
		cpu.setFlag(subFlag)
		cpu.setFlag(halfCarryFlag)
		return 4
	}

	t[0x30] = func(cpu *CPU) int {
		if !cpu.isSetFlag(carryFlag) {
			cpu.jr()
			return 12
		}
		cpu.readSignedImmediate()
		return 8
	}
	t[0x31] = func(cpu *CPU) int { cpu.sp = cpu.readImmediateWord(); return 12 }
	t[0x32] = func(cpu *CPU) int {
		cpu.memory.Write(cpu.getHL(), cpu.a)
		cpu.setHL(cpu.getHL() - 1)
		return 8
	}
	t[0x33] = func(cpu *CPU) int { cpu.sp++; return 8 }
	t[0x34] = func(cpu *CPU) int {
		cpu.memory.Write(cpu.getHL(), cpu.inc(cpu.memory.Read(cpu.getHL())))
		return 12
	}
	t[0x35] = func(cpu *CPU) int {
		cpu.memory.Write(cpu.getHL(), cpu.dec(cpu.memory.Read(cpu.getHL())))
		return 12
	}
	t[0x36] = func(cpu *CPU) int { cpu.memory.Write(cpu.getHL(), cpu.readImmediate()); return 12 }
	t[0x37] = func(cpu *CPU) int {
		cpu.resetFlag(subFlag)
		cpu.resetFlag(halfCarryFlag)
		cpu.setFlag(carryFlag)
		return 4
	}
	t[0x38] = func(cpu *CPU) int {
		if cpu.isSetFlag(carryFlag) {
			cpu.jr()
			return 12
		}
		cpu.readSignedImmediate()
		return 8
	}
	t[0x39] = func(cpu *CPU) int { cpu.addToHL(cpu.sp); return 8 }
	t[0x3A] = func(cpu *CPU) int {
		cpu.a = cpu.memory.Read(cpu.getHL())
		cpu.setHL(cpu.getHL() - 1)
		return 8
	}
	t[0x3B] = func(cpu *CPU) int { cpu.sp--; return 8 }
	t[0x3C] = func(cpu *CPU) int { cpu.a = cpu.inc(cpu.a); return 4 }
	t[0x3D] = func(cpu *CPU) int { cpu.a = cpu.dec(cpu.a); return 4 }
	t[0x3E] = func(cpu *CPU) int { cpu.a = cpu.readImmediate(); return 8 }
	t[0x3F] = func(cpu *CPU) int {
		cpu.resetFlag(subFlag)
		cpu.resetFlag(halfCarryFlag)
		cpu.setFlagToCondition(carryFlag, !cpu.isSetFlag(carryFlag))
		return 4
	}

	// 0x40-0x7F: LD r,r' for every destination/source pair, except 0x76 (HALT).
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := 4
			if d == 6 || s == 6 {
				cycles = 8
			}
			t[opcode] = func(cpu *CPU) int {
				cpu.setRegAt(d, cpu.regAt(s))
				return cycles
			}
		}
	}
	t[0x76] = func(cpu *CPU) int { cpu.halted = true; return 4 }

	// 0x80-0xBF: ALU op A, r8 for ADD/ADC/SUB/SBC/AND/XOR/OR/CP.
	aluOps := [8]func(*CPU, uint8){
		(*CPU).addToA,
		(*CPU).adc,
		(*CPU).sub,
		(*CPU).sbc,
		(*CPU).and,
		(*CPU).xor,
		(*CPU).or,
		(*CPU).cp,
	}
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + op*8 + src
			fn, s := aluOps[op], src
			cycles := 4
			if s == 6 {
				cycles = 8
			}
			t[opcode] = func(cpu *CPU) int {
				fn(cpu, cpu.regAt(s))
				return cycles
			}
		}
	}

	t[0xC0] = func(cpu *CPU) int {
		if !cpu.isSetFlag(zeroFlag) {
			cpu.ret()
			return 20
		}
		return 8
	}
	t[0xC1] = func(cpu *CPU) int { cpu.setBC(cpu.pop()); return 12 }
	t[0xC2] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if !cpu.isSetFlag(zeroFlag) {
			cpu.pc = target
			return 16
		}
		return 12
	}
	t[0xC3] = func(cpu *CPU) int { cpu.jp(); return 16 }
	t[0xC4] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if !cpu.isSetFlag(zeroFlag) {
			cpu.push(cpu.pc)
			cpu.pc = target
			return 24
		}
		return 12
	}
	t[0xC5] = func(cpu *CPU) int { cpu.push(cpu.getBC()); return 16 }
	t[0xC6] = func(cpu *CPU) int { cpu.addToA(cpu.readImmediate()); return 8 }
	t[0xC7] = func(cpu *CPU) int { cpu.rst(0x00); return 16 }
	t[0xC8] = func(cpu *CPU) int {
		if cpu.isSetFlag(zeroFlag) {
			cpu.ret()
			return 20
		}
		return 8
	}
	t[0xC9] = func(cpu *CPU) int { cpu.ret(); return 16 }
	t[0xCA] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if cpu.isSetFlag(zeroFlag) {
			cpu.pc = target
			return 16
		}
		return 12
	}
	t[0xCB] = func(cpu *CPU) int {
		cbOpcode := cpu.readImmediate()
		return cpu.cbOpcodeTable[cbOpcode](cpu)
	}
	t[0xCC] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if cpu.isSetFlag(zeroFlag) {
			cpu.push(cpu.pc)
			cpu.pc = target
			return 24
		}
		return 12
	}
	t[0xCD] = func(cpu *CPU) int { cpu.call(); return 24 }
	t[0xCE] = func(cpu *CPU) int { cpu.adc(cpu.readImmediate()); return 8 }
	t[0xCF] = func(cpu *CPU) int { cpu.rst(0x08); return 16 }

	t[0xD0] = func(cpu *CPU) int {
		if !cpu.isSetFlag(carryFlag) {
			cpu.ret()
			return 20
		}
		return 8
	}
	t[0xD1] = func(cpu *CPU) int { cpu.setDE(cpu.pop()); return 12 }
	t[0xD2] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if !cpu.isSetFlag(carryFlag) {
			cpu.pc = target
			return 16
		}
		return 12
	}
	t[0xD3] = illegalOpcode
	t[0xD4] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if !cpu.isSetFlag(carryFlag) {
			cpu.push(cpu.pc)
			cpu.pc = target
			return 24
		}
		return 12
	}
	t[0xD5] = func(cpu *CPU) int { cpu.push(cpu.getDE()); return 16 }
	t[0xD6] = func(cpu *CPU) int { cpu.sub(cpu.readImmediate()); return 8 }
	t[0xD7] = func(cpu *CPU) int { cpu.rst(0x10); return 16 }
	t[0xD8] = func(cpu *CPU) int {
		if cpu.isSetFlag(carryFlag) {
			cpu.ret()
			return 20
		}
		return 8
	}
	t[0xD9] = func(cpu *CPU) int { cpu.ret(); cpu.ime = true; return 16 }
	t[0xDA] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if cpu.isSetFlag(carryFlag) {
			cpu.pc = target
			return 16
		}
		return 12
	}
	t[0xDB] = illegalOpcode
	t[0xDC] = func(cpu *CPU) int {
		target := cpu.readImmediateWord()
		if cpu.isSetFlag(carryFlag) {
			cpu.push(cpu.pc)
			cpu.pc = target
			return 24
		}
		return 12
	}
	t[0xDD] = illegalOpcode
	t[0xDE] = func(cpu *CPU) int { cpu.sbc(cpu.readImmediate()); return 8 }
	t[0xDF] = func(cpu *CPU) int { cpu.rst(0x18); return 16 }

	t[0xE0] = func(cpu *CPU) int {
		cpu.memory.Write(0xFF00+uint16(cpu.readImmediate()), cpu.a)
		return 12
	}
	t[0xE1] = func(cpu *CPU) int { cpu.setHL(cpu.pop()); return 12 }
	t[0xE2] = func(cpu *CPU) int { cpu.memory.Write(0xFF00+uint16(cpu.c), cpu.a); return 8 }
	t[0xE3] = illegalOpcode
	t[0xE4] = illegalOpcode
	t[0xE5] = func(cpu *CPU) int { cpu.push(cpu.getHL()); return 16 }
	t[0xE6] = func(cpu *CPU) int { cpu.and(cpu.readImmediate()); return 8 }
	t[0xE7] = func(cpu *CPU) int { cpu.rst(0x20); return 16 }
	t[0xE8] = func(cpu *CPU) int { cpu.sp = cpu.addSPSigned(cpu.readSignedImmediate()); return 16 }
	t[0xE9] = func(cpu *CPU) int { cpu.pc = cpu.getHL(); return 4 }
	t[0xEA] = func(cpu *CPU) int { cpu.memory.Write(cpu.readImmediateWord(), cpu.a); return 16 }
	t[0xEB] = illegalOpcode
	t[0xEC] = illegalOpcode
	t[0xED] = illegalOpcode
	t[0xEE] = func(cpu *CPU) int { cpu.xor(cpu.readImmediate()); return 8 }
	t[0xEF] = func(cpu *CPU) int { cpu.rst(0x28); return 16 }

	t[0xF0] = func(cpu *CPU) int {
		cpu.a = cpu.memory.Read(0xFF00 + uint16(cpu.readImmediate()))
		return 12
	}
	t[0xF1] = func(cpu *CPU) int { cpu.setAF(cpu.pop()); return 12 }
	t[0xF2] = func(cpu *CPU) int { cpu.a = cpu.memory.Read(0xFF00 + uint16(cpu.c)); return 8 }
	t[0xF3] = func(cpu *CPU) int { cpu.ime = false; return 4 }
	t[0xF4] = illegalOpcode
	t[0xF5] = func(cpu *CPU) int { cpu.push(cpu.getAF()); return 16 }
	t[0xF6] = func(cpu *CPU) int { cpu.or(cpu.readImmediate()); return 8 }
	t[0xF7] = func(cpu *CPU) int { cpu.rst(0x30); return 16 }
	t[0xF8] = func(cpu *CPU) int { cpu.setHL(cpu.addSPSigned(cpu.readSignedImmediate())); return 12 }
	t[0xF9] = func(cpu *CPU) int { cpu.sp = cpu.getHL(); return 8 }
	t[0xFA] = func(cpu *CPU) int { cpu.a = cpu.memory.Read(cpu.readImmediateWord()); return 16 }
	t[0xFB] = func(cpu *CPU) int { cpu.ime = true; return 4 }
	t[0xFC] = illegalOpcode
	t[0xFD] = illegalOpcode
	t[0xFE] = func(cpu *CPU) int { cpu.cp(cpu.readImmediate()); return 8 }
	t[0xFF] = func(cpu *CPU) int { cpu.rst(0x38); return 16 }
}
