package emu

// ALU implements the CHIP-8 register arithmetic and logic operations.
// None of its methods touch the program counter.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LDImm performs Vx = kk.
func (a *ALU) LDImm(x, kk uint8) {
	a.regFile.WriteReg(x, kk)
}

// ADDImm performs Vx = Vx + kk, wrapping modulo 256. VF is not touched.
func (a *ALU) ADDImm(x, kk uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)+kk)
}

// LD performs Vx = Vy.
func (a *ALU) LD(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(y))
}

// OR performs Vx = Vx | Vy.
func (a *ALU) OR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)|a.regFile.ReadReg(y))
}

// AND performs Vx = Vx & Vy.
func (a *ALU) AND(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)&a.regFile.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy.
func (a *ALU) XOR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)^a.regFile.ReadReg(y))
}

// ADD performs Vx = Vx + Vy with VF = carry.
// The result is written before the flag, so for x == F the flag wins.
func (a *ALU) ADD(x, y uint8) {
	sum := uint16(a.regFile.ReadReg(x)) + uint16(a.regFile.ReadReg(y))
	a.regFile.WriteReg(x, uint8(sum))
	a.regFile.SetFlag(sum > 0xFF)
}

// SUB performs Vx = Vx - Vy with VF = 1 when Vx > Vy before the subtraction.
// The flag is written first, so for x == F the result wins.
func (a *ALU) SUB(x, y uint8) {
	vx := a.regFile.ReadReg(x)
	vy := a.regFile.ReadReg(y)
	a.regFile.SetFlag(vx > vy)
	a.regFile.WriteReg(x, vx-vy)
}

// SUBN performs Vx = Vy - Vx with VF = 1 when Vy > Vx before the subtraction.
func (a *ALU) SUBN(x, y uint8) {
	vx := a.regFile.ReadReg(x)
	vy := a.regFile.ReadReg(y)
	a.regFile.SetFlag(vy > vx)
	a.regFile.WriteReg(x, vy-vx)
}

// SHR performs Vx >>= 1 with VF = the bit shifted out.
func (a *ALU) SHR(x uint8) {
	vx := a.regFile.ReadReg(x)
	a.regFile.WriteReg(FlagRegister, vx&0x1)
	a.regFile.WriteReg(x, vx>>1)
}

// SHL performs Vx <<= 1 with VF = the bit shifted out.
func (a *ALU) SHL(x uint8) {
	vx := a.regFile.ReadReg(x)
	a.regFile.WriteReg(FlagRegister, vx>>7)
	a.regFile.WriteReg(x, vx<<1)
}

// RND performs Vx = random & kk.
func (a *ALU) RND(x, kk uint8, src RandomSource) {
	a.regFile.WriteReg(x, src.Byte()&kk)
}
