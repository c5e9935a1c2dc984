package emu

// InstructionSize is the width of one opcode in bytes.
const InstructionSize = 2

// BranchUnit implements CHIP-8 jumps, subroutine calls and skips. Every
// method leaves the program counter at its final value.
type BranchUnit struct {
	regFile *RegFile
	stack   *Stack
}

// NewBranchUnit creates a new BranchUnit connected to the given register
// file and call stack.
func NewBranchUnit(regFile *RegFile, stack *Stack) *BranchUnit {
	return &BranchUnit{regFile: regFile, stack: stack}
}

// JP sets PC = nnn.
func (b *BranchUnit) JP(nnn uint16) {
	b.regFile.PC = nnn
}

// JPV0 sets PC = nnn + V0.
func (b *BranchUnit) JPV0(nnn uint16) {
	b.regFile.PC = nnn + uint16(b.regFile.ReadReg(0))
}

// CALL pushes the address of the following instruction and jumps to nnn.
// On overflow neither PC nor the stack change.
func (b *BranchUnit) CALL(nnn uint16) error {
	if err := b.stack.Push(b.regFile.PC + InstructionSize); err != nil {
		return err
	}
	b.regFile.PC = nnn
	return nil
}

// RET pops the return address into PC.
func (b *BranchUnit) RET() error {
	addr, err := b.stack.Pop()
	if err != nil {
		return err
	}
	b.regFile.PC = addr
	return nil
}

// Next advances PC by one instruction.
func (b *BranchUnit) Next() {
	b.regFile.PC += InstructionSize
}

// SkipIf advances PC by two instructions when cond holds, otherwise by one.
func (b *BranchUnit) SkipIf(cond bool) {
	if cond {
		b.regFile.PC += 2 * InstructionSize
		return
	}
	b.regFile.PC += InstructionSize
}

// SEImm skips when Vx == kk.
func (b *BranchUnit) SEImm(x, kk uint8) {
	b.SkipIf(b.regFile.ReadReg(x) == kk)
}

// SNEImm skips when Vx != kk.
func (b *BranchUnit) SNEImm(x, kk uint8) {
	b.SkipIf(b.regFile.ReadReg(x) != kk)
}

// SEReg skips when Vx == Vy.
func (b *BranchUnit) SEReg(x, y uint8) {
	b.SkipIf(b.regFile.ReadReg(x) == b.regFile.ReadReg(y))
}

// SNEReg skips when Vx != Vy.
func (b *BranchUnit) SNEReg(x, y uint8) {
	b.SkipIf(b.regFile.ReadReg(x) != b.regFile.ReadReg(y))
}

// SKP skips when the key numbered Vx is pressed.
func (b *BranchUnit) SKP(x uint8, keys *Keypad) {
	b.SkipIf(keys.Pressed(b.regFile.ReadReg(x)))
}

// SKNP skips when the key numbered Vx is not pressed.
func (b *BranchUnit) SKNP(x uint8, keys *Keypad) {
	b.SkipIf(!keys.Pressed(b.regFile.ReadReg(x)))
}

// WaitKey stores the lowest pressed key in Vx and advances PC. With no key
// pressed PC stays put, so the same instruction runs again next step. It
// reports whether a key was taken.
func (b *BranchUnit) WaitKey(x uint8, keys *Keypad) bool {
	key, ok := keys.FirstPressed()
	if !ok {
		return false
	}
	b.regFile.WriteReg(x, key)
	b.Next()
	return true
}
