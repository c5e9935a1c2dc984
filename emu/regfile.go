// Package emu provides functional CHIP-8 emulation.
package emu

import "fmt"

// NumRegisters is the number of general-purpose V registers.
const NumRegisters = 16

// FlagRegister is the index of VF, which doubles as the carry, borrow and
// collision flag.
const FlagRegister = 0xF

// RegFile represents the CHIP-8 register file.
// It contains the sixteen 8-bit registers V0-VF, the index register I and
// the program counter (PC).
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	V [NumRegisters]uint8

	// I is the index register. Only the low 12 bits address memory.
	I uint16

	// PC is the program counter.
	PC uint16
}

// ReadReg reads a V register. Only the low nibble of reg is used.
func (r *RegFile) ReadReg(reg uint8) uint8 {
	return r.V[reg&0xF]
}

// WriteReg writes a V register. Only the low nibble of reg is used.
func (r *RegFile) WriteReg(reg uint8, value uint8) {
	r.V[reg&0xF] = value
}

// SetFlag writes VF as a boolean flag.
func (r *RegFile) SetFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
		return
	}
	r.V[FlagRegister] = 0
}

// String formats the register file for debug output.
func (r *RegFile) String() string {
	return fmt.Sprintf("PC: 0x%04X, I: 0x%04X, V: % X", r.PC, r.I, r.V[:])
}
