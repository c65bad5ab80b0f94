package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalHeader(cartType, ramSize byte) []byte {
	data := make([]byte, 0x150)
	copy(data[0x134:0x134+16], "TEST GAME")
	data[cartridgeTypeAddress] = cartType
	data[ramSizeAddress] = ramSize
	return data
}

func TestNewCartridgeWithData_rejectsTooSmallROM(t *testing.T) {
	_, err := NewCartridgeWithData(make([]byte, 0x10))
	assert.Error(t, err)
}

func TestNewCartridgeWithData_rejectsUnsupportedCartridgeType(t *testing.T) {
	_, err := NewCartridgeWithData(minimalHeader(0xFE, 0))
	assert.Error(t, err)
}

func TestNewCartridgeWithData_parsesTitle(t *testing.T) {
	cart, err := NewCartridgeWithData(minimalHeader(0x00, 0))
	require.NoError(t, err)
	assert.Equal(t, "TEST GAME", cart.Title())
}

func TestNewCartridgeWithData_blankTitleBecomesUntitled(t *testing.T) {
	data := make([]byte, 0x150)
	data[cartridgeTypeAddress] = 0x00
	cart, err := NewCartridgeWithData(data)
	require.NoError(t, err)
	assert.Equal(t, "(Untitled)", cart.Title())
}

func TestNewCartridgeWithData_mbc1WithBattery(t *testing.T) {
	cart, err := NewCartridgeWithData(minimalHeader(0x03, 0x03))
	require.NoError(t, err)
	assert.True(t, cart.HasBattery())
	assert.Equal(t, MBC1Type, cart.mbcType)
	assert.Equal(t, uint8(4), cart.ramBankCount)
}

func TestNewCartridgeWithData_mbc3WithRTC(t *testing.T) {
	cart, err := NewCartridgeWithData(minimalHeader(0x10, 0x02))
	require.NoError(t, err)
	assert.True(t, cart.hasRTC)
	assert.True(t, cart.HasBattery())
}

func TestNewCartridgeWithData_mbc2IgnoresHeaderRAMSize(t *testing.T) {
	cart, err := NewCartridgeWithData(minimalHeader(0x06, 0x03))
	require.NoError(t, err)
	assert.Equal(t, MBC2Type, cart.mbcType)
	assert.Equal(t, uint8(0), cart.ramBankCount)
}

func TestNewCartridgeWithData_mbc5WithRumble(t *testing.T) {
	cart, err := NewCartridgeWithData(minimalHeader(0x1C, 0))
	require.NoError(t, err)
	assert.Equal(t, MBC5Type, cart.mbcType)
	assert.True(t, cart.hasRumble)
	assert.False(t, cart.HasBattery())
}

func TestRAMBankCount_mapsHeaderByteToBankCount(t *testing.T) {
	cases := map[byte]uint8{
		0x00: 0,
		0x01: 1,
		0x02: 1,
		0x03: 4,
		0x04: 16,
		0x05: 8,
	}
	for headerByte, want := range cases {
		assert.Equal(t, want, ramBankCount(headerByte))
	}
}
