// Package loader provides ROM loading for CHIP-8 programs.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sarchlab/c8sim/emu"
)

// ErrEmptyROM is returned for a ROM with no bytes.
var ErrEmptyROM = errors.New("empty rom")

// Program represents a loaded ROM ready for execution.
type Program struct {
	// Name is the base name of the ROM file, or empty for in-memory ROMs.
	Name string
	// Data is the raw ROM image, copied to emu.ProgramStart on load.
	Data []byte
}

// EntryPoint returns the address execution begins at.
func (p *Program) EntryPoint() uint16 {
	return emu.ProgramStart
}

// Load reads a ROM file and validates its length.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM file: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.Name = filepath.Base(path)

	return prog, nil
}

// Parse reads a ROM image from r. It reads at most one byte past
// emu.MaxROMSize so oversized input is rejected without reading it all.
func Parse(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(io.LimitReader(r, emu.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrEmptyROM
	}
	if len(data) > emu.MaxROMSize {
		return nil, fmt.Errorf("more than %d bytes: %w", emu.MaxROMSize, emu.ErrROMTooLarge)
	}

	return &Program{Data: data}, nil
}

// Words splits the ROM into big-endian opcode words starting at the entry
// point. A trailing odd byte is returned as the high byte of a final word.
func (p *Program) Words() []uint16 {
	words := make([]uint16, 0, (len(p.Data)+1)/2)
	for i := 0; i < len(p.Data); i += 2 {
		w := uint16(p.Data[i]) << 8
		if i+1 < len(p.Data) {
			w |= uint16(p.Data[i+1])
		}
		words = append(words, w)
	}
	return words
}
