package benchmarks

import "github.com/sarchlab/c8sim/emu"

// GetMicrobenchmarks returns the standard set of fetch-cache microbenchmarks.
// Each benchmark targets one cache behaviour.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		tightLoop(),
		straightLine(),
		callReturn(),
		setConflict(),
		selfModifying(),
		spriteLoop(),
	}
}

// tightLoop stays inside one cache line.
func tightLoop() Benchmark {
	return Benchmark{
		Name:        "tight_loop",
		Description: "ADD V0, 1; JP back - one line, one cold miss",
		Program: BuildProgram(
			0x7001, // ADD V0, 0x01
			0x1200, // JP 0x200
		),
		Steps: 1000,
	}
}

// straightLine walks 64 sequential ADDs before looping.
func straightLine() Benchmark {
	words := make([]uint16, 0, 65)
	for i := 0; i < 64; i++ {
		words = append(words, 0x7001)
	}
	words = append(words, 0x1200)

	return Benchmark{
		Name:        "straight_line",
		Description: "64 sequential ADDs in a loop - capacity fits, misses only on first pass",
		Program:     BuildProgram(words...),
		Steps:       650,
	}
}

// callReturn bounces between the main loop and a distant subroutine.
func callReturn() Benchmark {
	return Benchmark{
		Name:        "call_return",
		Description: "CALL/RET between 0x200 and 0x300 - two resident lines",
		Program: BuildProgram(
			0x2300, // CALL 0x300
			0x1200, // JP 0x200
		),
		Setup: func(e *emu.Emulator) {
			e.Memory().Write16(0x300, 0x7001) // ADD V0, 0x01
			e.Memory().Write16(0x302, 0x00EE) // RET
		},
		Steps: 400,
	}
}

// setConflict jumps around three lines that map to the same set of the
// default 2-way cache, so LRU evicts on every fetch.
func setConflict() Benchmark {
	return Benchmark{
		Name:        "set_conflict",
		Description: "JP chain over 0x200, 0x280, 0x300 - three lines in one 2-way set",
		Program:     BuildProgram(0x1280), // JP 0x280
		Setup: func(e *emu.Emulator) {
			e.Memory().Write16(0x280, 0x1300) // JP 0x300
			e.Memory().Write16(0x300, 0x1200) // JP 0x200
		},
		Steps: 300,
	}
}

// selfModifying stores into its own line every iteration.
func selfModifying() Benchmark {
	return Benchmark{
		Name:        "self_modifying",
		Description: "LD [I], V0 into the running line - one invalidation per loop",
		Program: BuildProgram(
			0xA206, // LD I, 0x206
			0xF055, // LD [I], V0
			0x1200, // JP 0x200
		),
		Steps: 300,
	}
}

// spriteLoop draws and erases a glyph forever.
func spriteLoop() Benchmark {
	return Benchmark{
		Name:        "sprite_loop",
		Description: "DRW glyph 0 twice per loop - exercises the draw path",
		Program: BuildProgram(
			0xA000, // LD I, 0x000
			0xD015, // DRW V0, V1, 5
			0x1202, // JP 0x202
		),
		Steps: 500,
	}
}
