package memory

import (
	"fmt"
	"strings"
	"unicode"
)

const titleLength = 16

const (
	titleAddress          = 0x134
	cgbFlagAddress        = 0x143
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	headerChecksumAddress = 0x14D
)

// mbcKind identifies which memory bank controller chip a cartridge carries.
type mbcKind uint8

const (
	NoMBCType mbcKind = iota
	MBC1Type
	MBC1MultiType
	MBC2Type
	MBC3Type
	MBC5Type
	MBCUnknownType
)

// Cartridge holds the raw ROM image and the header fields needed to pick
// and size the right MBC.
type Cartridge struct {
	data []byte

	title          string
	headerChecksum uint8

	mbcType      mbcKind
	hasBattery   bool
	hasRTC       bool
	hasRumble    bool
	ramBankCount uint8
}

// NewCartridge creates an empty cartridge, useful only for running the core
// without a ROM loaded (e.g. boot ROM animation, debugging).
func NewCartridge() *Cartridge {
	return &Cartridge{
		data:    make([]byte, 0x8000),
		mbcType: NoMBCType,
	}
}

// NewCartridgeWithData parses a ROM image's header and returns a Cartridge
// ready to be handed to NewWithCartridge.
func NewCartridgeWithData(data []byte) (*Cartridge, error) {
	if len(data) < 0x150 {
		return nil, fmt.Errorf("cartridge: ROM too small to contain a header (%d bytes)", len(data))
	}
	if len(data) > 8<<20 {
		return nil, fmt.Errorf("cartridge: ROM too large (%d bytes, maximum is 8 MiB)", len(data))
	}

	cart := &Cartridge{
		data:           make([]byte, len(data)),
		title:          cleanGameboyTitle(data[titleAddress : titleAddress+titleLength]),
		headerChecksum: data[headerChecksumAddress],
	}
	copy(cart.data, data)

	cartType := data[cartridgeTypeAddress]
	cart.mbcType, cart.hasBattery, cart.hasRTC, cart.hasRumble = decodeCartridgeType(cartType)
	if cart.mbcType == MBCUnknownType {
		return nil, fmt.Errorf("cartridge: unsupported cartridge type byte 0x%02X", cartType)
	}

	cart.ramBankCount = ramBankCount(data[ramSizeAddress])
	if cart.mbcType == MBC2Type {
		// MBC2 has its own built-in 512x4bit RAM, the header RAM size byte is unused.
		cart.ramBankCount = 0
	}

	return cart, nil
}

// Title returns the cleaned-up game title extracted from the header.
func (c *Cartridge) Title() string {
	return c.title
}

// HasBattery reports whether the cartridge's RAM is battery-backed, i.e.
// whether it's worth persisting to a save file across runs.
func (c *Cartridge) HasBattery() bool {
	return c.hasBattery
}

// decodeCartridgeType maps the cartridge type header byte (0x147) to an MBC
// kind plus feature flags, per the standard Game Boy header layout.
func decodeCartridgeType(b byte) (kind mbcKind, battery, rtc, rumble bool) {
	switch b {
	case 0x00:
		return NoMBCType, false, false, false
	case 0x01, 0x02:
		return MBC1Type, false, false, false
	case 0x03:
		return MBC1Type, true, false, false
	case 0x05:
		return MBC2Type, false, false, false
	case 0x06:
		return MBC2Type, true, false, false
	case 0x0F:
		return MBC3Type, true, true, false
	case 0x10:
		return MBC3Type, true, true, false
	case 0x11, 0x12:
		return MBC3Type, false, false, false
	case 0x13:
		return MBC3Type, true, false, false
	case 0x19, 0x1A:
		return MBC5Type, false, false, false
	case 0x1B:
		return MBC5Type, true, false, false
	case 0x1C, 0x1D:
		return MBC5Type, false, false, true
	case 0x1E:
		return MBC5Type, true, false, true
	default:
		return MBCUnknownType, false, false, false
	}
}

// ramBankCount translates the RAM size header byte (0x149) into a count of
// 8KB banks.
func ramBankCount(b byte) uint8 {
	switch b {
	case 0x00:
		return 0
	case 0x01:
		return 1 // 2KB, treated as a single partial bank
	case 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 8
	default:
		return 0
	}
}

// cleanGameboyTitle converts a raw header title into a printable string:
// NULL bytes become spaces, non-printable bytes become '?', and the result
// is trimmed.
func cleanGameboyTitle(titleBytes []byte) string {
	runes := make([]rune, 0, len(titleBytes))
	for _, b := range titleBytes {
		r := rune(b)
		switch {
		case r == 0:
			r = ' '
		case !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}
