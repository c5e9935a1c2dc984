package emu

// SpriteWidth is the width in pixels of every sprite row.
const SpriteWidth = 8

// DrawUnit implements CLS and DRW.
type DrawUnit struct {
	regFile *RegFile
	memory  *Memory
	display *Display
	policy  SpritePolicy
}

// NewDrawUnit creates a new DrawUnit.
func NewDrawUnit(regFile *RegFile, memory *Memory, display *Display, policy SpritePolicy) *DrawUnit {
	return &DrawUnit{
		regFile: regFile,
		memory:  memory,
		display: display,
		policy:  policy,
	}
}

// CLS clears the framebuffer.
func (d *DrawUnit) CLS() {
	d.display.Clear()
}

// DRW XORs an n-row sprite read from I onto the framebuffer at (Vx, Vy).
// VF is cleared before the coordinates are read and set if any pixel went
// from set to unset.
func (d *DrawUnit) DRW(x, y, n uint8) {
	d.regFile.SetFlag(false)
	originX := int(d.regFile.ReadReg(x))
	originY := int(d.regFile.ReadReg(y))
	if d.policy == SpriteClip {
		originX %= DisplayWidth
		originY %= DisplayHeight
	}

	collision := false
	for row := 0; row < int(n); row++ {
		bits := d.memory.Read8(d.regFile.I + uint16(row))
		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px, py, ok := d.place(originX+col, originY+row)
			if !ok {
				continue
			}
			if d.display.Toggle(px, py) {
				collision = true
			}
		}
	}

	d.regFile.SetFlag(collision)
	d.display.MarkDirty()
}

// place maps a sprite pixel to framebuffer coordinates under the policy.
// Under SpriteClip the origin itself has already been wrapped.
func (d *DrawUnit) place(x, y int) (int, int, bool) {
	if d.policy == SpriteClip {
		if x >= DisplayWidth || y >= DisplayHeight {
			return 0, 0, false
		}
		return x, y, true
	}
	return x % DisplayWidth, y % DisplayHeight, true
}
