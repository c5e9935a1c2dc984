// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/insts"
)

// State is the externally visible execution state of the interpreter.
type State uint8

const (
	// StateReady means the next step dispatches normally.
	StateReady State = iota
	// StateAwaitingKey means the last step was LD Vx, K with no key down;
	// the same instruction runs again on the next step.
	StateAwaitingKey
)

// String returns the state name.
func (s State) String() string {
	if s == StateAwaitingKey {
		return "AwaitingKey"
	}
	return "Ready"
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Inst is the decoded instruction. It is nil only when the step was
	// refused before fetching.
	Inst *insts.Instruction

	// Waiting is true if the step ended in StateAwaitingKey.
	Waiting bool

	// Drew is true if the instruction was DRW.
	Drew bool

	// Err is set if the step failed.
	Err error
}

// FetchCache is an instruction-fetch path placed in front of memory.
// Stores made by the interpreter invalidate the lines they touch.
type FetchCache interface {
	Read16(addr uint16) uint16
	Invalidate(addr uint16)
	Reset()
}

// FetchCacheFactory builds a FetchCache backed by the emulator's memory.
type FetchCacheFactory func(backing *Memory) FetchCache

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	stack   *Stack
	display *Display
	keypad  *Keypad
	timers  *Timers
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	branchUnit *BranchUnit
	lsu        *LoadStoreUnit
	drawUnit   *DrawUnit

	rng          RandomSource
	fetchCache   FetchCache
	cacheFactory FetchCacheFactory
	logger       logr.Logger
	spritePolicy SpritePolicy

	// Execution state
	state            State
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithRandomSource sets the byte source used by RND.
func WithRandomSource(src RandomSource) EmulatorOption {
	return func(e *Emulator) {
		e.rng = src
	}
}

// WithLogger sets the logger. Errors are logged at V(0), each executed
// instruction at V(2).
func WithLogger(logger logr.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithSpritePolicy sets how DRW treats pixels past the framebuffer edge.
func WithSpritePolicy(policy SpritePolicy) EmulatorOption {
	return func(e *Emulator) {
		e.spritePolicy = policy
	}
}

// WithFetchCache routes instruction fetches through the cache built by
// factory.
func WithFetchCache(factory FetchCacheFactory) EmulatorOption {
	return func(e *Emulator) {
		e.cacheFactory = factory
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new CHIP-8 emulator with the font resident, PC at
// ProgramStart and everything else zeroed.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		memory:  &Memory{},
		stack:   &Stack{},
		display: &Display{},
		keypad:  &Keypad{},
		timers:  &Timers{},
		decoder: insts.NewDecoder(),
		logger:  logr.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = NewRandomSource(time.Now().UnixNano())
	}

	// Create execution units
	e.alu = NewALU(e.regFile)
	e.branchUnit = NewBranchUnit(e.regFile, e.stack)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory, e.timers)
	e.drawUnit = NewDrawUnit(e.regFile, e.memory, e.display, e.spritePolicy)

	if e.cacheFactory != nil {
		e.fetchCache = e.cacheFactory(e.memory)
		e.lsu.onWrite = e.fetchCache.Invalidate
	}

	e.initState()

	return e
}

// initState puts the machine in its power-on state. Components are reset in
// place so the execution units and fetch cache keep valid pointers.
func (e *Emulator) initState() {
	*e.regFile = RegFile{PC: ProgramStart}
	*e.memory = *NewMemory()
	*e.stack = Stack{}
	*e.display = Display{}
	e.keypad.Reset()
	*e.timers = Timers{}
	e.state = StateReady
	e.instructionCount = 0

	if e.fetchCache != nil {
		e.fetchCache.Reset()
	}
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory. Writes made through it bypass the
// fetch cache; use WriteMemory once execution has started.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// WriteMemory stores value at addr and invalidates the fetch-cache line
// holding it.
func (e *Emulator) WriteMemory(addr uint16, value uint8) {
	e.memory.Write8(addr, value)
	if e.fetchCache != nil {
		e.fetchCache.Invalidate(addr & AddressMask)
	}
}

// Stack returns the emulator's call stack.
func (e *Emulator) Stack() *Stack {
	return e.stack
}

// Display returns the framebuffer.
func (e *Emulator) Display() *Display {
	return e.display
}

// Keypad returns the keypad the driver writes before each step.
func (e *Emulator) Keypad() *Keypad {
	return e.keypad
}

// Timers returns the delay and sound timers.
func (e *Emulator) Timers() *Timers {
	return e.timers
}

// SoundActive reports whether the sound timer is running.
func (e *Emulator) SoundActive() bool {
	return e.timers.SoundActive()
}

// FetchCache returns the instruction-fetch cache, or nil when fetches go
// straight to memory.
func (e *Emulator) FetchCache() FetchCache {
	return e.fetchCache
}

// State returns the state the last step ended in.
func (e *Emulator) State() State {
	return e.state
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram copies rom verbatim to ProgramStart. PC is not changed.
func (e *Emulator) LoadProgram(rom []byte) error {
	if err := e.memory.LoadProgram(rom); err != nil {
		return fmt.Errorf("load %d bytes: %w", len(rom), err)
	}
	if e.fetchCache != nil {
		e.fetchCache.Reset()
	}
	return nil
}

// Reset restores the initial machine state. Options are kept; the loaded
// program is not.
func (e *Emulator) Reset() {
	e.initState()
}

// Step executes a single instruction and ticks the timers.
// A failed step leaves the state as the failing instruction left it and
// does not tick the timers.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	// 1. Fetch
	pc := e.regFile.PC
	word := e.fetch(pc)

	// 2. Decode
	inst := e.decoder.Decode(word)

	if log := e.logger.V(2); log.Enabled() {
		log.Info("step", "pc", fmt.Sprintf("0x%03X", pc), "op", fmt.Sprintf("0x%04X", word), "inst", inst.String())
	}

	// 3. Execute
	result := e.execute(inst)
	if result.Err != nil {
		e.logger.Error(result.Err, "execution failed", "pc", fmt.Sprintf("0x%03X", pc), "regs", e.regFile.String())
		return result
	}

	// 4. Timers
	e.timers.Tick()

	e.instructionCount++
	if result.Waiting {
		e.state = StateAwaitingKey
	} else {
		e.state = StateReady
	}

	return result
}

// Run executes up to steps instructions, stopping at the first error.
// It returns the number of steps that completed.
func (e *Emulator) Run(steps int) (int, error) {
	for i := 0; i < steps; i++ {
		if result := e.Step(); result.Err != nil {
			return i, result.Err
		}
	}
	return steps, nil
}

// fetch reads the big-endian opcode word at pc.
func (e *Emulator) fetch(pc uint16) uint16 {
	if e.fetchCache != nil {
		return e.fetchCache.Read16(pc & AddressMask)
	}
	return e.memory.Read16(pc)
}

// execute dispatches and executes a decoded instruction. Flow-control
// instructions return once they have placed PC; all others fall through to
// a single-instruction advance.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	result := StepResult{Inst: inst}

	switch inst.Op {
	case insts.OpUnknown:
		result.Err = &UnknownOpcodeError{Opcode: inst.Word, PC: e.regFile.PC}
		return result

	// Flow control
	case insts.OpRET:
		result.Err = e.branchUnit.RET()
		return result
	case insts.OpJP:
		e.branchUnit.JP(inst.NNN)
		return result
	case insts.OpCALL:
		result.Err = e.branchUnit.CALL(inst.NNN)
		return result
	case insts.OpJPV0:
		e.branchUnit.JPV0(inst.NNN)
		return result

	// Skips
	case insts.OpSEImm:
		e.branchUnit.SEImm(inst.X, inst.KK)
		return result
	case insts.OpSNEImm:
		e.branchUnit.SNEImm(inst.X, inst.KK)
		return result
	case insts.OpSEReg:
		e.branchUnit.SEReg(inst.X, inst.Y)
		return result
	case insts.OpSNEReg:
		e.branchUnit.SNEReg(inst.X, inst.Y)
		return result
	case insts.OpSKP:
		e.branchUnit.SKP(inst.X, e.keypad)
		return result
	case insts.OpSKNP:
		e.branchUnit.SKNP(inst.X, e.keypad)
		return result
	case insts.OpLDVxK:
		result.Waiting = !e.branchUnit.WaitKey(inst.X, e.keypad)
		return result

	// Display
	case insts.OpCLS:
		e.drawUnit.CLS()
	case insts.OpDRW:
		e.drawUnit.DRW(inst.X, inst.Y, inst.N)
		result.Drew = true

	// ALU
	case insts.OpLDImm:
		e.alu.LDImm(inst.X, inst.KK)
	case insts.OpADDImm:
		e.alu.ADDImm(inst.X, inst.KK)
	case insts.OpLDReg:
		e.alu.LD(inst.X, inst.Y)
	case insts.OpOR:
		e.alu.OR(inst.X, inst.Y)
	case insts.OpAND:
		e.alu.AND(inst.X, inst.Y)
	case insts.OpXOR:
		e.alu.XOR(inst.X, inst.Y)
	case insts.OpADDReg:
		e.alu.ADD(inst.X, inst.Y)
	case insts.OpSUB:
		e.alu.SUB(inst.X, inst.Y)
	case insts.OpSHR:
		e.alu.SHR(inst.X)
	case insts.OpSUBN:
		e.alu.SUBN(inst.X, inst.Y)
	case insts.OpSHL:
		e.alu.SHL(inst.X)
	case insts.OpRND:
		e.alu.RND(inst.X, inst.KK, e.rng)

	// Index, timers, memory
	case insts.OpLDI:
		e.lsu.LDI(inst.NNN)
	case insts.OpADDI:
		e.lsu.ADDI(inst.X)
	case insts.OpLDF:
		e.lsu.LDF(inst.X)
	case insts.OpLDB:
		e.lsu.LDB(inst.X)
	case insts.OpLDIVx:
		e.lsu.StoreRegs(inst.X)
	case insts.OpLDVxI:
		e.lsu.LoadRegs(inst.X)
	case insts.OpLDVxDT:
		e.lsu.LDVxDT(inst.X)
	case insts.OpLDDTVx:
		e.lsu.LDDTVx(inst.X)
	case insts.OpLDSTVx:
		e.lsu.LDSTVx(inst.X)

	default:
		result.Err = fmt.Errorf("unimplemented op %v at PC=0x%03X", inst.Op, e.regFile.PC)
		return result
	}

	// Advance PC by one instruction (for non-flow-control instructions)
	e.branchUnit.Next()

	return result
}
