package emu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode matches every UnknownOpcodeError via errors.Is.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStackOverflow is returned by CALL when the stack is full.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned by RET when the stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrROMTooLarge is returned when a ROM does not fit above ProgramStart.
	ErrROMTooLarge = errors.New("rom too large")

	// ErrMaxInstructions is returned once the configured instruction limit
	// has been executed.
	ErrMaxInstructions = errors.New("max instructions reached")
)

// UnknownOpcodeError reports a fetched word that decodes to no instruction.
type UnknownOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at PC=0x%03X", e.Opcode, e.PC)
}

// Is makes errors.Is(err, ErrUnknownOpcode) hold.
func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}
