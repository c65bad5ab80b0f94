package backend

import (
	"log/slog"

	"github.com/hollow-byte/pocketgb/gb/video"
)

// Headless is a no-op Backend for scripted/batch runs: no window, no
// input, just a frame counter and periodic progress logging.
type Headless struct {
	maxFrames  int
	frameCount int
}

// NewHeadless creates a headless backend that reports Done once maxFrames
// frames have been rendered.
func NewHeadless(maxFrames int) *Headless {
	return &Headless{maxFrames: maxFrames}
}

func (h *Headless) Init(config Config) error {
	slog.Info("headless backend initialized", "frames", h.maxFrames)
	return nil
}

func (h *Headless) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	h.frameCount++
	if h.frameCount%60 == 0 {
		slog.Info("frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}
	return nil, nil
}

func (h *Headless) Cleanup() error { return nil }

// Done reports whether the target frame count has been reached.
func (h *Headless) Done() bool {
	return h.frameCount >= h.maxFrames
}
