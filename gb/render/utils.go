package render

import "github.com/hollow-byte/pocketgb/gb/video"

// pixelToShade converts a packed RGBA Game Boy pixel into its 0-3 shade
// index (0 darkest).
func pixelToShade(pixel uint32) int {
	switch video.GBColor(pixel) {
	case video.BlackColor:
		return 0
	case video.DarkGreyColor:
		return 1
	case video.LightGreyColor:
		return 2
	case video.WhiteColor:
		return 3
	default:
		return 0
	}
}

// halfBlockChar returns the character that best represents a pair of
// vertically stacked pixel shades in one terminal cell.
func halfBlockChar(topShade, bottomShade int) rune {
	switch {
	case topShade == bottomShade:
		return '█'
	case topShade == 3 && bottomShade != 3:
		return '▄'
	case topShade != 3 && bottomShade == 3:
		return '▀'
	default:
		return '▀'
	}
}

// renderFrameToHalfBlocks packs a 160x144 frame into 160x72 lines of
// half-block characters, doubling the terminal's effective vertical
// resolution since each text row covers two pixel rows.
func renderFrameToHalfBlocks(frame []uint32, width, height int) []string {
	if len(frame) < width*height {
		return nil
	}

	textHeight := (height + 1) / 2
	lines := make([]string, textHeight)

	for row := 0; row < textHeight; row++ {
		line := make([]rune, width)
		topRow := row * 2
		bottomRow := topRow + 1

		for x := 0; x < width; x++ {
			topShade := 3
			if topRow < height {
				topShade = pixelToShade(frame[topRow*width+x])
			}
			bottomShade := 3
			if bottomRow < height {
				bottomShade = pixelToShade(frame[bottomRow*width+x])
			}
			line[x] = halfBlockChar(topShade, bottomShade)
		}

		lines[row] = string(line)
	}

	return lines
}
