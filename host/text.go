package host

import (
	"fmt"
	"io"

	"github.com/sarchlab/c8sim/emu"
)

// TextRenderer writes each frame as rows of '#' and '.' characters.
type TextRenderer struct {
	w      io.Writer
	frames uint64
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render writes one frame preceded by a header line.
func (r *TextRenderer) Render(display *emu.Display) error {
	r.frames++
	if _, err := fmt.Fprintf(r.w, "frame %d\n%s", r.frames, display.String()); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frames, err)
	}
	return nil
}

// Frames returns the number of frames rendered.
func (r *TextRenderer) Frames() uint64 {
	return r.frames
}

// NopBeeper records the tone state instead of playing it.
type NopBeeper struct {
	On      bool
	Changes int
}

// SetTone records on and counts transitions.
func (b *NopBeeper) SetTone(on bool) {
	if on != b.On {
		b.Changes++
	}
	b.On = on
}
