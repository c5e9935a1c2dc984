// Package main provides the entry point for c8sim.
// c8sim is a CHIP-8 interpreter with an optional fetch-cache model.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/clock"
)

var (
	configPath = flag.String("config", "", "Path to machine configuration JSON file")
	verbosity  = flag.Int("v", 0, "Log verbosity (1: events, 2: every instruction)")
	disasm     = flag.Bool("disasm", false, "Print the ROM disassembly and exit")
	steps      = flag.Uint64("steps", 0, "Stop after this many instructions (overrides config)")
	realtime   = flag.Bool("realtime", false, "Pace execution at the configured cpu_hz")
	frames     = flag.Bool("frames", false, "Print every rendered frame to stdout")
	withCache  = flag.Bool("cache", false, "Model the instruction-fetch cache with default geometry")
	stats      = flag.Bool("stats", false, "Print execution statistics on exit")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: c8sim [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, *verbosity)

	prog, err := loader.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *disasm {
		disassemble(os.Stdout, prog)
		return
	}

	cfg, err := loadMachineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading machine config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, prog, cfg, logger))
}

// newLogger builds a logr.Logger on a slog text handler. Verbosity n
// enables V(n) and below.
func newLogger(w io.Writer, verbosity int) logr.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.Level(-verbosity),
	})
	return logr.FromSlogHandler(handler)
}

// loadMachineConfig reads the config file, if any, and applies flag
// overrides.
func loadMachineConfig() (*config.MachineConfig, error) {
	cfg := config.DefaultMachineConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	if *steps > 0 {
		cfg.MaxInstructions = *steps
	}
	if *withCache && cfg.FetchCache == nil {
		fc := cache.DefaultConfig()
		cfg.FetchCache = &fc
	}

	return cfg, cfg.Validate()
}

// disassemble prints one line per ROM word.
func disassemble(w io.Writer, prog *loader.Program) {
	decoder := insts.NewDecoder()
	addr := prog.EntryPoint()
	for _, word := range prog.Words() {
		fmt.Fprintf(w, "0x%03X: %04X  %s\n", addr, word, decoder.Decode(word))
		addr += emu.InstructionSize
	}
}

// run executes the program headless and returns the process exit code.
func run(ctx context.Context, prog *loader.Program, cfg *config.MachineConfig, logger logr.Logger) int {
	opts, err := cfg.EmulatorOptions(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadProgram(prog.Data); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	runnerOpts := []host.RunnerOption{
		host.WithLogger(logger),
		host.WithBeeper(&host.NopBeeper{}),
	}
	if *frames {
		runnerOpts = append(runnerOpts, host.WithRenderer(host.NewTextRenderer(os.Stdout)))
	}
	if *realtime {
		pacer, err := clock.New(cfg.StepInterval())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer pacer.Stop()
		runnerOpts = append(runnerOpts, host.WithPacer(pacer))
	}

	runner := host.NewRunner(emulator, runnerOpts...)
	logger.Info("running", "rom", prog.Name, "bytes", len(prog.Data), "policy", cfg.SpritePolicy)

	exitCode := 0
	err = runner.Run(ctx)
	switch {
	case err == nil, errors.Is(err, emu.ErrMaxInstructions), errors.Is(err, context.Canceled):
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = 1
	}

	if *stats {
		printStats(os.Stdout, emulator, runner)
	}

	return exitCode
}

// printStats prints the run summary.
func printStats(w io.Writer, emulator *emu.Emulator, runner *host.Runner) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Instructions executed: %d\n", emulator.InstructionCount())
	fmt.Fprintf(w, "Frames rendered:       %d\n", runner.Frames())
	fmt.Fprintf(w, "Final PC:              0x%03X\n", emulator.RegFile().PC)

	fc, ok := emulator.FetchCache().(*cache.Cache)
	if !ok {
		return
	}
	s := fc.Stats()
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Fetch cache:\n")
	fmt.Fprintf(w, "  Reads:         %d\n", s.Reads)
	fmt.Fprintf(w, "  Hits:          %d (%5.1f%%)\n", s.Hits, 100.0*s.HitRate())
	fmt.Fprintf(w, "  Misses:        %d\n", s.Misses)
	fmt.Fprintf(w, "  Evictions:     %d\n", s.Evictions)
	fmt.Fprintf(w, "  Invalidations: %d\n", s.Invalidations)
	fmt.Fprintf(w, "  Cycles:        %d\n", s.Cycles)
}
