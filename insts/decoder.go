// Package insts provides CHIP-8 instruction definitions and decoding.
package insts

// Op represents a CHIP-8 operation.
type Op uint8

// CHIP-8 operations, named after the opcode patterns that select them.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xkk
	OpSNEImm     // 4xkk
	OpSEReg      // 5xy0
	OpLDImm      // 6xkk
	OpADDImm     // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op   Op     // Operation
	Word uint16 // Raw opcode word

	// Nibbles holds the four 4-bit fields, most significant first.
	Nibbles [4]uint8

	NNN uint16 // Low 12 bits (address)
	KK  uint8  // Low 8 bits (byte immediate)
	N   uint8  // Lowest nibble
	X   uint8  // Second nibble (register index)
	Y   uint8  // Third nibble (register index)
}

// Decoder decodes CHIP-8 opcode words into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit opcode word. Every word decodes; words that do not
// match a defined instruction carry OpUnknown.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{
		Word: word,
		Nibbles: [4]uint8{
			uint8(word>>12) & 0xF,
			uint8(word>>8) & 0xF,
			uint8(word>>4) & 0xF,
			uint8(word) & 0xF,
		},
		NNN: word & 0x0FFF,
		KK:  uint8(word),
		N:   uint8(word) & 0xF,
		X:   uint8(word>>8) & 0xF,
		Y:   uint8(word>>4) & 0xF,
	}

	inst.Op = d.classify(inst)

	return inst
}

// classify selects the operation from the nibble tuple.
func (d *Decoder) classify(inst *Instruction) Op {
	switch inst.Nibbles[0] {
	case 0x0:
		return d.classifySystem(inst.Word)
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEImm
	case 0x4:
		return OpSNEImm
	case 0x5:
		if inst.N == 0x0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDImm
	case 0x7:
		return OpADDImm
	case 0x8:
		return d.classifyALU(inst.N)
	case 0x9:
		if inst.N == 0x0 {
			return OpSNEReg
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		return d.classifyKey(inst.KK)
	case 0xF:
		return d.classifyMisc(inst.KK)
	}

	return OpUnknown
}

// classifySystem handles the 0nnn group. Only CLS and RET are supported;
// machine-code SYS calls decode as unknown.
func (d *Decoder) classifySystem(word uint16) Op {
	switch word {
	case 0x00E0:
		return OpCLS
	case 0x00EE:
		return OpRET
	default:
		return OpUnknown
	}
}

// classifyALU handles the 8xyN register arithmetic group.
func (d *Decoder) classifyALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpLDReg
	case 0x1:
		return OpOR
	case 0x2:
		return OpAND
	case 0x3:
		return OpXOR
	case 0x4:
		return OpADDReg
	case 0x5:
		return OpSUB
	case 0x6:
		return OpSHR
	case 0x7:
		return OpSUBN
	case 0xE:
		return OpSHL
	default:
		return OpUnknown
	}
}

// classifyKey handles the ExKK keypad group.
func (d *Decoder) classifyKey(kk uint8) Op {
	switch kk {
	case 0x9E:
		return OpSKP
	case 0xA1:
		return OpSKNP
	default:
		return OpUnknown
	}
}

// classifyMisc handles the FxKK timer, index and memory group.
func (d *Decoder) classifyMisc(kk uint8) Op {
	switch kk {
	case 0x07:
		return OpLDVxDT
	case 0x0A:
		return OpLDVxK
	case 0x15:
		return OpLDDTVx
	case 0x18:
		return OpLDSTVx
	case 0x1E:
		return OpADDI
	case 0x29:
		return OpLDF
	case 0x33:
		return OpLDB
	case 0x55:
		return OpLDIVx
	case 0x65:
		return OpLDVxI
	default:
		return OpUnknown
	}
}
