package emu

// LoadStoreUnit implements the index register, timer and memory transfer
// instructions.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
	timers  *Timers

	// onWrite is called with each address a store touches.
	onWrite func(addr uint16)
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file, memory and timers.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory, timers *Timers) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
		timers:  timers,
	}
}

func (lsu *LoadStoreUnit) write8(addr uint16, value uint8) {
	lsu.memory.Write8(addr, value)
	if lsu.onWrite != nil {
		lsu.onWrite(addr & AddressMask)
	}
}

// LDI sets I = nnn.
func (lsu *LoadStoreUnit) LDI(nnn uint16) {
	lsu.regFile.I = nnn
}

// ADDI sets I = I + Vx. No flag is affected.
func (lsu *LoadStoreUnit) ADDI(x uint8) {
	lsu.regFile.I += uint16(lsu.regFile.ReadReg(x))
}

// LDF points I at the font glyph for Vx: I = Vx * 5.
func (lsu *LoadStoreUnit) LDF(x uint8) {
	lsu.regFile.I = FontStart + uint16(lsu.regFile.ReadReg(x))*GlyphBytes
}

// LDB stores the decimal digits of Vx at I, I+1 and I+2.
func (lsu *LoadStoreUnit) LDB(x uint8) {
	v := lsu.regFile.ReadReg(x)
	i := lsu.regFile.I
	lsu.write8(i, v/100)
	lsu.write8(i+1, (v/10)%10)
	lsu.write8(i+2, v%10)
}

// StoreRegs stores V0 through Vx at I. I is left unchanged.
func (lsu *LoadStoreUnit) StoreRegs(x uint8) {
	for r := uint8(0); r <= x&0xF; r++ {
		lsu.write8(lsu.regFile.I+uint16(r), lsu.regFile.ReadReg(r))
	}
}

// LoadRegs loads V0 through Vx from I. I is left unchanged.
func (lsu *LoadStoreUnit) LoadRegs(x uint8) {
	for r := uint8(0); r <= x&0xF; r++ {
		lsu.regFile.WriteReg(r, lsu.memory.Read8(lsu.regFile.I+uint16(r)))
	}
}

// LDVxDT sets Vx = delay timer.
func (lsu *LoadStoreUnit) LDVxDT(x uint8) {
	lsu.regFile.WriteReg(x, lsu.timers.Delay)
}

// LDDTVx sets delay timer = Vx.
func (lsu *LoadStoreUnit) LDDTVx(x uint8) {
	lsu.timers.Delay = lsu.regFile.ReadReg(x)
}

// LDSTVx sets sound timer = Vx.
func (lsu *LoadStoreUnit) LDSTVx(x uint8) {
	lsu.timers.Sound = lsu.regFile.ReadReg(x)
}
