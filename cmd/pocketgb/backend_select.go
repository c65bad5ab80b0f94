//go:build !sdl2

package main

import (
	"github.com/hollow-byte/pocketgb/gb/backend"
	"github.com/hollow-byte/pocketgb/gb/render"
)

// newVideoBackend returns the terminal backend; a binary built with the
// "sdl2" tag gets the windowed backend instead, see backend_select_sdl2.go.
func newVideoBackend() backend.Backend {
	return render.NewTerminal()
}
