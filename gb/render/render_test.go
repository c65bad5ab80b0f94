package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/hollow-byte/pocketgb/gb/video"
)

func TestPixelToShade(t *testing.T) {
	assert.Equal(t, 0, pixelToShade(uint32(video.BlackColor)))
	assert.Equal(t, 1, pixelToShade(uint32(video.DarkGreyColor)))
	assert.Equal(t, 2, pixelToShade(uint32(video.LightGreyColor)))
	assert.Equal(t, 3, pixelToShade(uint32(video.WhiteColor)))
}

func TestHalfBlockChar(t *testing.T) {
	assert.Equal(t, '█', halfBlockChar(0, 0))
	assert.Equal(t, '▄', halfBlockChar(3, 0))
	assert.Equal(t, '▀', halfBlockChar(0, 3))
}

func TestRenderFrameToHalfBlocks_dimensions(t *testing.T) {
	frame := make([]uint32, video.FramebufferSize)
	for i := range frame {
		frame[i] = uint32(video.WhiteColor)
	}

	lines := renderFrameToHalfBlocks(frame, video.FramebufferWidth, video.FramebufferHeight)
	assert.Len(t, lines, video.FramebufferHeight/2)
	for _, line := range lines {
		assert.Len(t, []rune(line), video.FramebufferWidth)
	}
}

func TestRenderFrameToHalfBlocks_tooShort(t *testing.T) {
	lines := renderFrameToHalfBlocks([]uint32{1, 2, 3}, 160, 144)
	assert.Nil(t, lines)
}

func TestTcellKeyName(t *testing.T) {
	name, ok := tcellKeyName(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.True(t, ok)
	assert.Equal(t, "Up", name)

	name, ok = tcellKeyName(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.True(t, ok)
	assert.Equal(t, "z", name)

	name, ok = tcellKeyName(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.True(t, ok)
	assert.Equal(t, "Space", name)
}
