package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollow-byte/pocketgb/gb/video"
)

func TestHeadless_doneAfterMaxFrames(t *testing.T) {
	h := NewHeadless(3)
	frame := video.NewFrameBuffer()
	assert.NoError(t, h.Init(Config{}))

	assert.False(t, h.Done())
	for i := 0; i < 3; i++ {
		_, err := h.Update(frame)
		assert.NoError(t, err)
	}
	assert.True(t, h.Done())
}
