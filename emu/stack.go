package emu

// StackSize is the number of return addresses the call stack holds.
const StackSize = 16

// Stack is the fixed-capacity subroutine call stack.
type Stack struct {
	entries [StackSize]uint16
	sp      uint8
}

// Push stores a return address. It fails with ErrStackOverflow when the
// stack already holds StackSize entries, leaving the stack unchanged.
func (s *Stack) Push(addr uint16) error {
	if int(s.sp) == StackSize {
		return ErrStackOverflow
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address. It fails with
// ErrStackUnderflow on an empty stack.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// SP returns the number of entries on the stack.
func (s *Stack) SP() uint8 {
	return s.sp
}

// Peek returns the entry at depth i, counted from the bottom.
func (s *Stack) Peek(i int) uint16 {
	return s.entries[i]
}

// Entries returns a copy of the live entries, bottom first.
func (s *Stack) Entries() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.entries[:s.sp])
	return out
}
