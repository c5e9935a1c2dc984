package insts

import "fmt"

var opNames = map[Op]string{
	OpUnknown: "DW",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

// String returns the assembler mnemonic of the operation.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// String renders the instruction in Cowgod-style assembler syntax.
func (i *Instruction) String() string {
	mn := i.Op.String()

	switch i.Op {
	case OpCLS, OpRET:
		return mn
	case OpJP, OpCALL:
		return fmt.Sprintf("%s 0x%03X", mn, i.NNN)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("%s V%X, 0x%02X", mn, i.X, i.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR,
		OpADDReg, OpSUB, OpSHR, OpSUBN, OpSHL:
		return fmt.Sprintf("%s V%X, V%X", mn, i.X, i.Y)
	case OpLDI:
		return fmt.Sprintf("%s I, 0x%03X", mn, i.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, 0x%03X", mn, i.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, %d", mn, i.X, i.Y, i.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", mn, i.X)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", mn, i.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", mn, i.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", mn, i.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", mn, i.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", mn, i.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", mn, i.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", mn, i.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", mn, i.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", mn, i.X)
	default:
		return fmt.Sprintf("%s 0x%04X", mn, i.Word)
	}
}
