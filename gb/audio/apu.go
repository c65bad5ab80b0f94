// Package audio implements the Game Boy's Audio Processing Unit. Per this
// build's scope, every channel's registers are stored and read back
// faithfully, but only channel 2 (the simple square wave channel) actually
// generates sound; channels 1, 3 and 4 are register-shadow only.
package audio

import (
	"github.com/hollow-byte/pocketgb/gb/addr"
	"github.com/hollow-byte/pocketgb/gb/bit"
	"github.com/hollow-byte/pocketgb/gb/timing"
)

// channel2 holds the live generator state for the one channel that actually
// produces audio.
type channel2 struct {
	enabled bool

	duty   uint8
	dutyStep uint8

	length       uint16
	lengthEnable bool

	volume       uint8
	envelopeUp   bool
	envelopePace uint8
	envelopeCounter uint8

	period    uint16
	freqTimer int
}

// APU is the Audio Processing Unit of a DMG Game Boy.
type APU struct {
	enabled bool
	ch2     channel2

	step   int // frame sequencer step, 0-7
	cycles int // cycles since the last frame sequencer tick

	sampleAcc          float64
	cyclesPerSample    float64
	samples            []uint8

	// raw registers for channels 1/3/4 and global control, stored and
	// returned verbatim, no waveform generation attached to them.
	NR10, NR11, NR12, NR13, NR14 uint8
	NR21, NR22, NR23, NR24       uint8
	NR30, NR31, NR32, NR33, NR34 uint8
	NR41, NR42, NR43, NR44       uint8
	NR50, NR51, NR52             uint8
	waveRAM                      [waveRAMSize]uint8
}

// New creates an APU targeting a 44.1kHz host sample rate.
func New() *APU {
	a := &APU{}
	a.cyclesPerSample = float64(timing.CPUFrequency) / 44100.0
	return a
}

// Tick advances the APU by the given number of T-cycles.
func (a *APU) Tick(cycles int) {
	if !a.enabled {
		return
	}

	a.stepChannel2(cycles)

	a.cycles += cycles
	for a.cycles >= cyclesPerStep {
		a.cycles -= cyclesPerStep
		a.tickSequence()
	}
}

func (a *APU) stepChannel2(cycles int) {
	ch := &a.ch2

	level := uint8(128)
	if ch.enabled && ch.period < 2048 {
		period := (2048 - int(ch.period)) * 4
		if ch.freqTimer <= 0 {
			ch.freqTimer = period
		}
		ch.freqTimer -= cycles
		for ch.freqTimer <= 0 {
			ch.freqTimer += period
			ch.dutyStep = (ch.dutyStep + 1) & 0x7
		}

		amplitude := dutyPatterns[ch.duty&0x3][ch.dutyStep]
		if amplitude != 0 && ch.volume > 0 {
			level = 128 + uint8(ch.volume)*7
		} else {
			level = 128
		}
	}

	a.sampleAcc += float64(cycles)
	for a.sampleAcc >= a.cyclesPerSample {
		a.sampleAcc -= a.cyclesPerSample
		a.samples = append(a.samples, level)
	}
}

// tickSequence advances the 512Hz frame sequencer by one step, clocking
// channel 2's length counter and envelope on the steps real hardware does.
func (a *APU) tickSequence() {
	switch a.step {
	case 0, 2, 4, 6:
		a.tickLength()
	}
	if a.step == 7 {
		a.tickEnvelope()
	}
	if a.step == 2 || a.step == 6 {
		// Sweep only applies to channel 1, which we don't generate; no-op here.
	}

	a.step = (a.step + 1) % 8
}

func (a *APU) tickLength() {
	ch := &a.ch2
	if ch.lengthEnable && ch.length > 0 {
		ch.length--
		if ch.length == 0 {
			ch.enabled = false
		}
	}
}

func (a *APU) tickEnvelope() {
	ch := &a.ch2
	pace := ch.envelopePace
	if pace == 0 {
		return
	}
	if ch.envelopeCounter == 0 {
		ch.envelopeCounter = pace
	}
	ch.envelopeCounter--
	if ch.envelopeCounter > 0 {
		return
	}
	if ch.envelopeUp {
		if ch.volume < 15 {
			ch.volume++
		}
	} else if ch.volume > 0 {
		ch.volume--
	}
	ch.envelopeCounter = pace
}

// Drain removes and returns up to count pending samples.
func (a *APU) Drain(count int) []uint8 {
	if count <= 0 || len(a.samples) == 0 {
		return nil
	}
	n := min(count, len(a.samples))
	out := make([]uint8, n)
	copy(out, a.samples[:n])
	a.samples = a.samples[n:]
	return out
}

// ReadRegister returns the raw stored value for any audio register,
// including unused/write-only ones (resolved scope: no bit masking applied
// on read-back beyond NR52's status bits).
func (a *APU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.NR10:
		return a.NR10
	case addr.NR11:
		return a.NR11
	case addr.NR12:
		return a.NR12
	case addr.NR13:
		return a.NR13
	case addr.NR14:
		return a.NR14
	case addr.NR21:
		return a.NR21
	case addr.NR22:
		return a.NR22
	case addr.NR23:
		return a.NR23
	case addr.NR24:
		return a.NR24
	case addr.NR30:
		return a.NR30
	case addr.NR31:
		return a.NR31
	case addr.NR32:
		return a.NR32
	case addr.NR33:
		return a.NR33
	case addr.NR34:
		return a.NR34
	case addr.NR41:
		return a.NR41
	case addr.NR42:
		return a.NR42
	case addr.NR43:
		return a.NR43
	case addr.NR44:
		return a.NR44
	case addr.NR50:
		return a.NR50
	case addr.NR51:
		return a.NR51
	case addr.NR52:
		status := uint8(0b0111_0000)
		if a.enabled {
			status = bit.Set(7, status)
		}
		if a.ch2.enabled {
			status = bit.Set(1, status)
		}
		return status
	}
	if address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd {
		return a.waveRAM[address-addr.WaveRAMStart]
	}
	return 0xFF
}

// WriteRegister stores the written byte verbatim and, for channel 2's
// registers, updates the live generator state. While NR52 bit 7 is clear,
// writes to every register other than NR52 and wave RAM are ignored.
func (a *APU) WriteRegister(address uint16, value uint8) {
	isWaveRAM := address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd
	if !a.enabled && address != addr.NR52 && !isWaveRAM {
		return
	}

	switch address {
	case addr.NR10:
		a.NR10 = value
	case addr.NR11:
		a.NR11 = value
	case addr.NR12:
		a.NR12 = value
	case addr.NR13:
		a.NR13 = value
	case addr.NR14:
		a.NR14 = value
	case addr.NR21:
		a.NR21 = value
		a.ch2.duty = bit.ExtractBits(value, 7, 6)
		a.ch2.length = 64 - uint16(bit.ExtractBits(value, 5, 0))
	case addr.NR22:
		a.NR22 = value
		a.ch2.volume = bit.ExtractBits(value, 7, 4)
		a.ch2.envelopeUp = bit.IsSet(3, value)
		a.ch2.envelopePace = bit.ExtractBits(value, 2, 0)
	case addr.NR23:
		a.NR23 = value
		a.ch2.period = bit.Combine(a.NR24&0b111, a.NR23)
	case addr.NR24:
		a.NR24 = value
		a.ch2.period = bit.Combine(a.NR24&0b111, a.NR23)
		a.ch2.lengthEnable = bit.IsSet(6, value)
		if bit.IsSet(7, value) {
			a.triggerChannel2()
		}
	case addr.NR30:
		a.NR30 = value
	case addr.NR31:
		a.NR31 = value
	case addr.NR32:
		a.NR32 = value
	case addr.NR33:
		a.NR33 = value
	case addr.NR34:
		a.NR34 = value
	case addr.NR41:
		a.NR41 = value
	case addr.NR42:
		a.NR42 = value
	case addr.NR43:
		a.NR43 = value
	case addr.NR44:
		a.NR44 = value
	case addr.NR50:
		a.NR50 = value
	case addr.NR51:
		a.NR51 = value
	case addr.NR52:
		a.NR52 = value
		a.enabled = bit.IsSet(7, value)
		if !a.enabled {
			a.ch2 = channel2{}
		}
	}

	if isWaveRAM {
		a.waveRAM[address-addr.WaveRAMStart] = value
	}
}

func (a *APU) triggerChannel2() {
	ch := &a.ch2
	ch.enabled = true
	if ch.length == 0 {
		ch.length = 64
	}
	ch.dutyStep = 0
	ch.envelopeCounter = ch.envelopePace
	if ch.volume == 0 && !ch.envelopeUp {
		ch.enabled = false
	}
}
