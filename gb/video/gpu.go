// Package video implements the Game Boy's Picture Processing Unit: the
// mode state machine, background/window/sprite compositing, and the
// resulting 160x144 framebuffer.
package video

import (
	"github.com/hollow-byte/pocketgb/gb/addr"
	"github.com/hollow-byte/pocketgb/gb/bit"
	"github.com/hollow-byte/pocketgb/gb/memory"
)

// Mode represents the PPU's current rendering stage, matching STAT bits 1-0.
type Mode int

const (
	hblankMode   Mode = 0
	vblankMode   Mode = 1
	oamReadMode  Mode = 2
	vramReadMode Mode = 3
)

const (
	hblankCycles       = 204
	oamScanlineCycles  = 80
	vramScanlineCycles = 172
	scanlineCycles     = oamScanlineCycles + vramScanlineCycles + hblankCycles
	cyclesPerFrame     = 70224
)

// PPU drives the mode state machine and pixel compositing.
type PPU struct {
	memory         *memory.MMU
	framebuffer    *FrameBuffer
	bgPixelBuffer  []byte // background/window color index per pixel, for sprite priority
	spritePriority SpritePriorityBuffer

	mode                 Mode
	line                 int
	cycles               int
	modeCounterAux       int
	vBlankLine           int
	isScanLineTransfered bool
	windowLine           int
}

// New creates a PPU attached to the given bus, starting mid-VBlank the way
// the teacher's implementation does, matching the state real hardware is
// in just after the boot ROM hands off.
func New(mmu *memory.MMU) *PPU {
	return &PPU{
		memory:        mmu,
		framebuffer:   NewFrameBuffer(),
		bgPixelBuffer: make([]byte, FramebufferSize),
		mode:          vblankMode,
		line:          144,
	}
}

// FrameBuffer returns the PPU's backing framebuffer.
func (p *PPU) FrameBuffer() *FrameBuffer {
	return p.framebuffer
}

// Tick advances the PPU by the given number of T-cycles.
func (p *PPU) Tick(cycles int) {
	if p.readLCDCVariable(lcdDisplayEnable) != 1 {
		p.freezeWhileDisabled()
		return
	}

	p.cycles += cycles

	switch p.mode {
	case hblankMode:
		if p.cycles < hblankCycles {
			break
		}
		p.cycles -= hblankCycles
		p.setMode(oamReadMode)
		p.setLY(p.line + 1)

		if p.line == 144 {
			p.setMode(vblankMode)
			p.vBlankLine = 0
			p.modeCounterAux = p.cycles
			p.windowLine = 0

			p.memory.RequestInterrupt(addr.VBlankInterrupt)
			if p.memory.ReadBit(statVblankIrq, addr.STAT) {
				p.memory.RequestInterrupt(addr.LCDSTATInterrupt)
			}
		} else if p.memory.ReadBit(statOamIrq, addr.STAT) {
			p.memory.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	case vblankMode:
		p.modeCounterAux += cycles

		if p.modeCounterAux >= scanlineCycles {
			p.modeCounterAux -= scanlineCycles
			p.vBlankLine++
			if p.vBlankLine <= 9 {
				p.setLY(p.line + 1)
			}
		}

		if p.cycles >= 4104 && p.modeCounterAux >= 4 && p.line == 153 {
			p.setLY(0)
		}

		if p.cycles >= 4560 {
			p.cycles -= 4560
			p.setMode(oamReadMode)
			if p.memory.ReadBit(statOamIrq, addr.STAT) {
				p.memory.RequestInterrupt(addr.LCDSTATInterrupt)
			}
		}
	case oamReadMode:
		if p.cycles >= oamScanlineCycles {
			p.cycles -= oamScanlineCycles
			p.setMode(vramReadMode)
			p.isScanLineTransfered = false
		}
	case vramReadMode:
		if !p.isScanLineTransfered {
			if p.readLCDCVariable(lcdDisplayEnable) == 1 {
				p.drawScanline()
			}
			p.isScanLineTransfered = true
		}

		if p.cycles >= vramScanlineCycles {
			p.cycles -= vramScanlineCycles
			p.setMode(hblankMode)
			if p.memory.ReadBit(statHblankIrq, addr.STAT) {
				p.memory.RequestInterrupt(addr.LCDSTATInterrupt)
			}
		}
	}

	if p.cycles >= cyclesPerFrame {
		p.cycles -= cyclesPerFrame
	}
}

// freezeWhileDisabled holds the PPU at mode 0, LY=0, while LCDC bit 7 is
// clear. No STAT or VBlank interrupt fires and no scanline work happens
// until the display is switched back on.
func (p *PPU) freezeWhileDisabled() {
	p.mode = hblankMode
	p.cycles = 0
	p.modeCounterAux = 0
	p.vBlankLine = 0
	p.windowLine = 0
	p.isScanLineTransfered = false
	if p.line != 0 {
		p.line = 0
		p.memory.SetLY(0)
	}
	stat := p.memory.Read(addr.STAT)
	p.memory.Write(addr.STAT, stat&0xFC)
}

func (p *PPU) drawScanline() {
	if p.readLCDCVariable(lcdDisplayEnable) != 1 {
		lineWidth := p.line * FramebufferWidth
		for i := 0; i < FramebufferWidth; i++ {
			p.framebuffer.buffer[lineWidth+i] = uint32(WhiteColor)
		}
		return
	}

	p.drawBackground()
	p.drawWindow()
	p.drawSprites()
}

func (p *PPU) drawBackground() {
	lineWidth := p.line * FramebufferWidth

	if p.readLCDCVariable(bgDisplay) != 1 {
		palette := p.memory.Read(addr.BGP)
		color := uint32(ByteToColor(palette & 0x03))
		for i := range FramebufferWidth {
			p.framebuffer.buffer[lineWidth+i] = color
			p.bgPixelBuffer[lineWidth+i] = 0
		}
		return
	}

	useSignedTileSet := p.readLCDCVariable(bgWindowTileDataSelect) == 0
	useTileMapZero := p.readLCDCVariable(bgTileMapDisplaySelect) == 0

	tilesAddr := addr.TileData0
	if useSignedTileSet {
		tilesAddr = addr.TileData2
	}
	tileMapAddr := addr.TileMap1
	if useTileMapZero {
		tileMapAddr = addr.TileMap0
	}

	scrollX := p.memory.Read(addr.SCX)
	scrollY := p.memory.Read(addr.SCY)
	lineScrolled := (p.line + int(scrollY)) & 0xFF
	lineScrolled32 := (lineScrolled / 8) * 32
	tilePixelY2 := (lineScrolled % 8) * 2

	for screenPixelX := 0; screenPixelX < FramebufferWidth; screenPixelX++ {
		mapPixelX := (screenPixelX + int(scrollX)) & 0xFF
		mapTileX := mapPixelX / 8
		mapTileXOffset := mapPixelX % 8
		mapTileAddr := tileMapAddr + uint16(lineScrolled32+mapTileX)

		tileAddr := tileAddress(tilesAddr, p.memory.Read(mapTileAddr), tilePixelY2, useSignedTileSet)
		low := p.memory.Read(tileAddr)
		high := p.memory.Read(tileAddr + 1)

		pixel := pixelColorIndex(low, high, uint8(7-mapTileXOffset))
		position := lineWidth + screenPixelX

		palette := p.memory.Read(addr.BGP)
		color := (palette >> (pixel * 2)) & 0x03
		p.framebuffer.buffer[position] = uint32(ByteToColor(color))
		p.bgPixelBuffer[position] = color
	}
}

func (p *PPU) drawWindow() {
	if p.windowLine > 143 || p.readLCDCVariable(windowDisplayEnable) != 1 {
		return
	}

	wx := p.memory.Read(addr.WX) - 7
	wy := p.memory.Read(addr.WY)
	if wx > 159 || wy > 143 || int(wy) > p.line {
		return
	}

	useSignedTileSet := p.readLCDCVariable(bgWindowTileDataSelect) == 0
	useTileMapZero := p.readLCDCVariable(windowTileMapSelect) == 0

	tilesAddr := addr.TileData0
	if useSignedTileSet {
		tilesAddr = addr.TileData2
	}
	tileMapAddr := addr.TileMap1
	if useTileMapZero {
		tileMapAddr = addr.TileMap0
	}

	y32 := (p.windowLine / 8) * 32
	pixelY2 := (p.windowLine & 7) * 2
	lineWidth := p.line * FramebufferWidth

	endTileX := (FramebufferWidth - int(wx) + 7) / 8
	if endTileX > 32 {
		endTileX = 32
	}

	for x := 0; x < endTileX; x++ {
		tileValue := p.memory.Read(tileMapAddr + uint16(y32+x))
		tileAddr := tileAddress(tilesAddr, tileValue, pixelY2, useSignedTileSet)
		low := p.memory.Read(tileAddr)
		high := p.memory.Read(tileAddr + 1)
		xOffset := x * 8

		for pixelX := 0; pixelX < 8; pixelX++ {
			bufferX := xOffset + pixelX + int(wx)
			if bufferX < int(wx) || bufferX >= FramebufferWidth {
				continue
			}

			pixel := pixelColorIndex(low, high, uint8(7-pixelX))
			position := lineWidth + bufferX
			if position >= len(p.framebuffer.buffer) {
				continue
			}

			palette := p.memory.Read(addr.BGP)
			color := (palette >> (pixel * 2)) & 0x03
			p.framebuffer.buffer[position] = uint32(ByteToColor(color))
			p.bgPixelBuffer[position] = color
		}
	}
	p.windowLine++
}

func (p *PPU) drawSprites() {
	if p.readLCDCVariable(spriteDisplayEnable) != 1 {
		return
	}

	spriteHeight := 8
	if p.readLCDCVariable(spriteSize) == 1 {
		spriteHeight = 16
	}

	lineWidth := p.line * FramebufferWidth
	var spritesToDraw []int

	// Selection phase: scan OAM in order, keeping the first 10 sprites that
	// overlap this scanline (https://gbdev.io/pandocs/OAM.html#selection-priority).
	for sprite := 0; sprite < 40; sprite++ {
		oamAddr := addr.OAMStart + uint16(sprite*4)
		spriteY := int(p.memory.Read(oamAddr)) - 16

		if spriteY > p.line || (spriteY+spriteHeight) <= p.line {
			continue
		}
		spritesToDraw = append(spritesToDraw, sprite)
		if len(spritesToDraw) >= 10 {
			break
		}
	}

	p.spritePriority.Clear()
	for _, sprite := range spritesToDraw {
		oamAddr := addr.OAMStart + uint16(sprite*4)
		spriteX := int(p.memory.Read(oamAddr+1)) - 8
		for pixelOffset := range 8 {
			p.spritePriority.TryClaimPixel(spriteX+pixelOffset, sprite, spriteX)
		}
	}

	for _, sprite := range spritesToDraw {
		oamAddr := addr.OAMStart + uint16(sprite*4)
		spriteY := int(p.memory.Read(oamAddr)) - 16
		spriteX := int(p.memory.Read(oamAddr+1)) - 8
		spriteTile := p.memory.Read(oamAddr + 2)
		spriteFlags := p.memory.Read(oamAddr + 3)

		hasPixels := false
		for x := 0; x < 8; x++ {
			if p.spritePriority.GetOwner(spriteX+x) == sprite {
				hasPixels = true
				break
			}
		}
		if !hasPixels {
			continue
		}

		spriteMask := 0xFF
		if spriteHeight == 16 {
			spriteMask = 0xFE
		}
		spriteTile16 := (int(spriteTile) & spriteMask) * 16

		objPaletteAddr := addr.OBP0
		if bit.IsSet(4, spriteFlags) {
			objPaletteAddr = addr.OBP1
		}
		flipX := bit.IsSet(5, spriteFlags)
		flipY := bit.IsSet(6, spriteFlags)
		aboveBG := !bit.IsSet(7, spriteFlags)

		pixelY := p.line - spriteY
		if flipY {
			pixelY = spriteHeight - 1 - pixelY
		}

		var pixelY2, offset int
		if spriteHeight == 16 && pixelY >= 8 {
			pixelY2 = (pixelY - 8) * 2
			offset = 16
		} else {
			pixelY2 = pixelY * 2
		}

		tileAddr := addr.TileData0 + uint16(spriteTile16+pixelY2+offset)
		low := p.memory.Read(tileAddr)
		high := p.memory.Read(tileAddr + 1)

		for pixelX := 0; pixelX < 8; pixelX++ {
			bufferX := spriteX + pixelX
			if p.spritePriority.GetOwner(bufferX) != sprite {
				continue
			}

			pixelIdx := 7 - pixelX
			if flipX {
				pixelIdx = pixelX
			}
			pixel := pixelColorIndex(low, high, uint8(pixelIdx))
			if pixel == 0 {
				continue
			}

			position := lineWidth + bufferX
			if !aboveBG && p.bgPixelBuffer[position] != 0 {
				continue
			}

			palette := p.memory.Read(objPaletteAddr)
			color := (palette >> (pixel * 2)) & 0x03
			p.framebuffer.buffer[position] = uint32(ByteToColor(color))
		}
	}
}

// tileAddress resolves a tile map byte to the VRAM address of its pixel
// row, honoring LCDC bit 4's signed/unsigned addressing mode.
func tileAddress(tilesBase uint16, tileValue uint8, rowOffset int, signed bool) uint16 {
	if signed {
		return uint16(int(tilesBase) + int(int8(tileValue))*16 + rowOffset)
	}
	return tilesBase + uint16(int(tileValue)*16) + uint16(rowOffset)
}

// pixelColorIndex combines the low/high tile-row bytes at the given bit
// index into a 2-bit color index.
func pixelColorIndex(low, high uint8, bitIndex uint8) uint8 {
	var pixel uint8
	if bit.IsSet(bitIndex, low) {
		pixel |= 1
	}
	if bit.IsSet(bitIndex, high) {
		pixel |= 2
	}
	return pixel
}

type statFlag = uint8

const (
	statLycIrq       statFlag = 6
	statOamIrq       statFlag = 5
	statVblankIrq    statFlag = 4
	statHblankIrq    statFlag = 3
	statLycCondition statFlag = 2
)

type lcdcFlag = uint8

const (
	lcdDisplayEnable       lcdcFlag = 7
	windowTileMapSelect    lcdcFlag = 6
	windowDisplayEnable    lcdcFlag = 5
	bgWindowTileDataSelect lcdcFlag = 4
	bgTileMapDisplaySelect lcdcFlag = 3
	spriteSize             lcdcFlag = 2
	spriteDisplayEnable    lcdcFlag = 1
	bgDisplay              lcdcFlag = 0
)

func (p *PPU) readLCDCVariable(flag lcdcFlag) byte {
	if bit.IsSet(flag, p.memory.Read(addr.LCDC)) {
		return 1
	}
	return 0
}

func (p *PPU) compareLYToLYC() {
	ly := p.memory.Read(addr.LY)
	lyc := p.memory.Read(addr.LYC)
	stat := p.memory.Read(addr.STAT)

	if ly == lyc {
		stat = bit.Set(statLycCondition, stat)
		if bit.IsSet(statLycIrq, stat) {
			p.memory.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	} else {
		stat = bit.Reset(statLycCondition, stat)
	}
	p.memory.Write(addr.STAT, stat)
}

func (p *PPU) setMode(mode Mode) {
	p.mode = mode
	stat := p.memory.Read(addr.STAT)
	p.memory.Write(addr.STAT, stat&0xFC|byte(mode))
}

// setLY advances the internal scanline counter. It writes LY through the
// bypass path (MMU.SetLY), not MMU.Write, because a CPU write to LY resets
// it to 0 while the PPU's own progression must not.
func (p *PPU) setLY(line int) {
	p.line = line
	p.memory.SetLY(byte(p.line))
	p.compareLYToLYC()
}
