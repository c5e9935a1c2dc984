package emu

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 4096

	// AddressMask keeps addresses inside the 12-bit address space.
	AddressMask = 0xFFF

	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits between ProgramStart and the
	// end of memory.
	MaxROMSize = MemorySize - ProgramStart
)

// Memory is the 4 KiB CHIP-8 address space. Every access wraps to 12 bits,
// so no read or write ever lands past 0xFFF.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory creates zeroed memory with the font table resident at FontStart.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], fontSet[:])
	return m
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint16) uint8 {
	return m.data[addr&AddressMask]
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint16, value uint8) {
	m.data[addr&AddressMask] = value
}

// Read16 reads a big-endian word: addr holds the high byte.
func (m *Memory) Read16(addr uint16) uint16 {
	return uint16(m.Read8(addr))<<8 | uint16(m.Read8(addr+1))
}

// Write16 writes a big-endian word.
func (m *Memory) Write16(addr uint16, value uint16) {
	m.Write8(addr, uint8(value>>8))
	m.Write8(addr+1, uint8(value))
}

// LoadProgram copies a ROM verbatim to ProgramStart.
func (m *Memory) LoadProgram(rom []byte) error {
	if len(rom) > MaxROMSize {
		return ErrROMTooLarge
	}
	copy(m.data[ProgramStart:], rom)
	return nil
}

// Slice returns a copy of n bytes starting at addr, wrapping at the end of
// memory.
func (m *Memory) Slice(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = m.Read8(addr + uint16(i))
	}
	return out
}
