package emu

import "strings"

// Framebuffer dimensions.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// SpritePolicy decides what happens to sprite pixels that fall past the
// right or bottom edge of the framebuffer.
type SpritePolicy uint8

const (
	// SpriteWrap wraps each pixel around to the opposite edge.
	SpriteWrap SpritePolicy = iota
	// SpriteClip drops pixels that fall outside the framebuffer.
	SpriteClip
)

// String returns the config name of the policy.
func (p SpritePolicy) String() string {
	switch p {
	case SpriteWrap:
		return "wrap"
	case SpriteClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Display is the 64x32 monochrome framebuffer plus the redraw flag.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
	dirty  bool
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
}

// Pixel reports whether the pixel at column x, row y is set. Out of range
// coordinates read as unset.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d.pixels[y][x]
}

// Toggle XORs the pixel at column x, row y and reports whether it went from
// set to unset.
func (d *Display) Toggle(x, y int) bool {
	was := d.pixels[y][x]
	d.pixels[y][x] = !was
	return was
}

// Rows returns a copy of the framebuffer, row-major.
func (d *Display) Rows() [DisplayHeight][DisplayWidth]bool {
	return d.pixels
}

// Dirty reports whether a draw happened since the flag was last cleared.
func (d *Display) Dirty() bool {
	return d.dirty
}

// MarkDirty sets the redraw flag.
func (d *Display) MarkDirty() {
	d.dirty = true
}

// ClearDirty clears the redraw flag. The renderer calls this after it has
// consumed the framebuffer.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// String renders the framebuffer with '#' for set and '.' for unset pixels.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((DisplayWidth + 1) * DisplayHeight)
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if d.pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
