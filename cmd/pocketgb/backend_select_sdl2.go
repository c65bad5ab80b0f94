//go:build sdl2

package main

import (
	"github.com/hollow-byte/pocketgb/gb/backend"
)

// newVideoBackend returns the windowed SDL2 backend for binaries built
// with the "sdl2" tag.
func newVideoBackend() backend.Backend {
	return backend.NewSDL2()
}
