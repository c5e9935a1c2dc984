// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package implements decoding of 16-bit CHIP-8 opcode words into
// structured instruction representations. It covers the 35 instructions of
// the classic COSMAC VIP interpreter:
//   - Flow control: CLS, RET, JP, CALL, JP V0
//   - Skips: SE, SNE (immediate and register), SKP, SKNP
//   - Register arithmetic: LD, ADD, OR, AND, XOR, SUB, SHR, SUBN, SHL
//   - Index, timers, keypad, drawing, BCD and register block transfers
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x6A2F) // LD VA, 0x2F
//	fmt.Printf("Op: %v, X: %d, KK: %#x\n", inst.Op, inst.X, inst.KK)
package insts
