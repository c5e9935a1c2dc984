// Package host connects an emulator to its surroundings: a renderer for the
// framebuffer, a beeper for the sound timer and a key source for the keypad.
package host

import (
	"github.com/sarchlab/c8sim/emu"
)

// Renderer presents the framebuffer.
type Renderer interface {
	Render(display *emu.Display) error
}

// Beeper turns the tone on and off.
type Beeper interface {
	SetTone(on bool)
}

// KeySource writes the current key state into the keypad. It returns true
// when the user asked to quit.
type KeySource interface {
	Poll(keypad *emu.Keypad) (quit bool)
}
