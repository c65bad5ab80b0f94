package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMBC1_romBankZeroFixed(t *testing.T) {
	rom := make([]uint8, 0x8000)
	for i := range rom {
		rom[i] = uint8(i & 0xFF)
	}

	mbc := NewMBC1(rom, false, 0)
	for addr := uint16(0x0000); addr < 0x4000; addr++ {
		assert.Equal(t, uint8(addr&0xFF), mbc.Read(addr))
	}
}

func TestMBC1_romBankSwitching(t *testing.T) {
	rom := make([]uint8, 0x10000)
	for i := range rom {
		rom[i] = uint8(i / 0x4000)
	}

	mbc := NewMBC1(rom, false, 0)
	mbc.Write(0x2000, 2)
	assert.Equal(t, uint8(2), mbc.Read(0x4000))

	mbc.Write(0x2000, 3)
	assert.Equal(t, uint8(3), mbc.Read(0x4000))
}

func TestMBC1_romBankWrapsToAvailableBankCount(t *testing.T) {
	// 8 banks of 16KB; selecting bank 37 (00101b lower + 1 upper) should wrap
	// modulo the ROM's actual size, landing back on bank 5 (37 % 8 == 5).
	rom := make([]uint8, 8*0x4000)
	for i := range rom {
		rom[i] = uint8(i / 0x4000)
	}

	mbc := NewMBC1(rom, false, 0)
	mbc.Write(0x6000, 0) // ROM banking mode
	mbc.Write(0x2000, 5)
	mbc.Write(0x4000, 1) // upper bits would select bank 37

	assert.Equal(t, uint8(5), mbc.Read(0x4000))
}

func TestMBC1_ramDisabledByDefault(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), false, 4)
	assert.Equal(t, uint8(0xFF), mbc.Read(0xA000))
}

func TestMBC1_ramEnableDisable(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), false, 4)

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), mbc.Read(0xA000))

	mbc.Write(0x0000, 0x00)
	assert.Equal(t, uint8(0xFF), mbc.Read(0xA000))
}

func TestMBC1_ramBanking(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), false, 4)
	mbc.Write(0x0000, 0x0A) // enable RAM
	mbc.Write(0x6000, 0x01) // RAM banking mode

	values := map[uint8]uint8{0: 0x42, 1: 0x43, 2: 0x44, 3: 0x45}
	for bank, value := range values {
		mbc.Write(0x4000, bank)
		mbc.Write(0xA000, value)
	}
	for bank, value := range values {
		mbc.Write(0x4000, bank)
		assert.Equal(t, value, mbc.Read(0xA000))
	}
}

func TestMBC1_ramModeDoesNotAffectROMBank(t *testing.T) {
	rom := make([]uint8, 8*0x4000)
	for i := range rom {
		rom[i] = uint8(i / 0x4000)
	}
	mbc := NewMBC1(rom, false, 4)

	mbc.Write(0x6000, 1) // RAM banking mode
	mbc.Write(0x2000, 5) // ROM bank
	mbc.Write(0x4000, 2) // RAM bank, not ROM bank in this mode

	assert.Equal(t, uint8(5), mbc.romBank)
	assert.Equal(t, uint8(2), mbc.ramBank)
	assert.Equal(t, uint8(5), mbc.Read(0x4000))
}

func TestMBC1_leavingRAMModeZeroesEffectiveRAMBank(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), false, 4)
	mbc.Write(0x0000, 0x0A) // enable RAM

	mbc.Write(0x6000, 1) // RAM banking mode
	mbc.Write(0x4000, 2) // RAM bank 2
	mbc.Write(0xA000, 0x42)

	mbc.Write(0x6000, 0) // back to ROM banking mode

	assert.Equal(t, uint8(2), mbc.ramBank, "register keeps its last value")
	assert.Equal(t, uint8(0x00), mbc.Read(0xA000), "bank 0 was never written and RAM starts zeroed")

	mbc.Write(0xA000, 0x24)
	assert.Equal(t, uint8(0x24), mbc.Read(0xA000), "writes now land in bank 0")
}

func TestMBC1_bankZeroTranslatesToOne(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), false, 0)
	mbc.Write(0x2000, 0)
	assert.Equal(t, uint8(1), mbc.romBank)
}

func TestMBC1_saveAndLoadRAM(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), true, 1)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x7E)

	saved := mbc.SaveRAM()
	assert.Equal(t, uint8(0x7E), saved[0])

	restored := NewMBC1(make([]uint8, 0x8000), true, 1)
	restored.LoadRAM(saved)
	restored.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x7E), restored.Read(0xA000))
}

func TestMBC1_loadRAMIgnoresLengthMismatch(t *testing.T) {
	mbc := NewMBC1(make([]uint8, 0x8000), true, 1)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x11)

	mbc.LoadRAM([]byte{1, 2, 3})
	assert.Equal(t, uint8(0x11), mbc.Read(0xA000))
}

func TestMBC2_upperNibbleReadsAsOnes(t *testing.T) {
	mbc := NewMBC2(make([]uint8, 0x8000))
	mbc.Write(0x0000, 0x0A) // enable RAM (A8 clear)
	mbc.Write(0xA000, 0x05)

	assert.Equal(t, uint8(0xF5), mbc.Read(0xA000))
}

func TestMBC2_romBankSelectViaAddressBit8(t *testing.T) {
	rom := make([]uint8, 4*0x4000)
	for i := range rom {
		rom[i] = uint8(i / 0x4000)
	}
	mbc := NewMBC2(rom)

	mbc.Write(0x2100, 3) // bit 8 set selects ROM bank register
	assert.Equal(t, uint8(3), mbc.Read(0x4000))
}

func TestMBC2_saveAndLoadRAM(t *testing.T) {
	mbc := NewMBC2(make([]uint8, 0x8000))
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x0C)

	saved := mbc.SaveRAM()
	restored := NewMBC2(make([]uint8, 0x8000))
	restored.LoadRAM(saved)
	restored.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0xFC), restored.Read(0xA000))
}

func TestMBC3_latchesRTCOnZeroThenOneWrite(t *testing.T) {
	mbc := NewMBC3(make([]uint8, 0x8000), 1, true, nil)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x4000, 0x08) // select seconds register
	mbc.Write(0xA000, 30)   // live seconds register

	// Before latching, reads observe the stale latched snapshot (zero).
	assert.Equal(t, uint8(0), mbc.Read(0xA000))

	mbc.Write(0x6000, 0x00)
	mbc.Write(0x6000, 0x01)

	assert.Equal(t, uint8(30), mbc.Read(0xA000))
}

func TestMBC3_saveAndLoadRAM(t *testing.T) {
	mbc := NewMBC3(make([]uint8, 0x8000), 1, false, nil)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x4000, 0x00)
	mbc.Write(0xA000, 0x99)

	saved := mbc.SaveRAM()
	restored := NewMBC3(make([]uint8, 0x8000), 1, false, nil)
	restored.LoadRAM(saved)
	restored.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x99), restored.Read(0xA000))
}

func TestMBC3_rtcNilWithoutHasRTC(t *testing.T) {
	mbc := NewMBC3(make([]uint8, 0x8000), 1, false, nil)
	assert.Nil(t, mbc.RTC())
}

func TestMBC5_romBankSpans9Bits(t *testing.T) {
	rom := make([]uint8, 300*0x4000)
	for i := range rom {
		rom[i] = uint8((i / 0x4000) & 0xFF)
	}
	mbc := NewMBC5(rom, false, 0)

	mbc.Write(0x2000, 0x00) // low 8 bits of bank 256
	mbc.Write(0x3000, 0x01) // bit 8 set -> bank 256
	assert.Equal(t, rom[256*0x4000], mbc.Read(0x4000))
}

func TestMBC5_rumbleMasksTopRAMBankBit(t *testing.T) {
	mbc := NewMBC5(make([]uint8, 0x8000), true, 16)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x4000, 0x08) // bit 3 set: rumble motor bit, not a real bank select
	mbc.Write(0xA000, 0x55)

	mbc.Write(0x4000, 0x00) // bank 0, masked identically to bank 8 with rumble
	assert.Equal(t, uint8(0x55), mbc.Read(0xA000))
}

func TestMBC5_saveAndLoadRAM(t *testing.T) {
	mbc := NewMBC5(make([]uint8, 0x8000), false, 1)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x21)

	saved := mbc.SaveRAM()
	restored := NewMBC5(make([]uint8, 0x8000), false, 1)
	restored.LoadRAM(saved)
	restored.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x21), restored.Read(0xA000))
}

func TestNoMBC_hasNoRAMToSave(t *testing.T) {
	mbc := NewNoMBC(make([]uint8, 0x8000))
	assert.Nil(t, mbc.SaveRAM())
	mbc.LoadRAM([]byte{1, 2, 3}) // must not panic
}

func TestNoMBC_readsDirectlyMapped(t *testing.T) {
	rom := make([]uint8, 0x8000)
	rom[0x1234] = 0x77
	mbc := NewNoMBC(rom)
	assert.Equal(t, uint8(0x77), mbc.Read(0x1234))
}
