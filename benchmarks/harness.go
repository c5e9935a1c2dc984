// Package benchmarks provides fetch-cache benchmark infrastructure for c8sim.
package benchmarks

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/cache"
)

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Instructions is the number of steps that completed
	Instructions uint64 `json:"instructions"`

	// Fetch cache counters (zero when the cache is disabled)
	Reads         uint64  `json:"reads,omitempty"`
	Hits          uint64  `json:"hits,omitempty"`
	Misses        uint64  `json:"misses,omitempty"`
	Evictions     uint64  `json:"evictions,omitempty"`
	Invalidations uint64  `json:"invalidations,omitempty"`
	FetchCycles   uint64  `json:"fetch_cycles,omitempty"`
	HitRate       float64 `json:"hit_rate,omitempty"`

	// CyclesPerInstruction is FetchCycles / Instructions
	CyclesPerInstruction float64 `json:"cycles_per_instruction,omitempty"`

	// Err is the step error that stopped the run early, if any
	Err string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the benchmark
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares emulator state after the program is loaded
	Setup func(e *emu.Emulator)

	// Program is the ROM image, loaded at emu.ProgramStart
	Program []byte

	// Steps is the number of instructions to execute
	Steps int
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableCache routes fetches through the cache model
	EnableCache bool

	// Cache is the cache geometry used when EnableCache is set
	Cache cache.Config

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableCache: true,
		Cache:       cache.DefaultConfig(),
		Output:      os.Stdout,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh emulator.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	opts := []emu.EmulatorOption{
		emu.WithRandomSource(emu.NewSequenceSource(0)),
	}
	if h.config.EnableCache {
		opts = append(opts, emu.WithFetchCache(cache.Factory(h.config.Cache)))
	}

	e := emu.NewEmulator(opts...)
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	if err := e.LoadProgram(bench.Program); err != nil {
		result.Err = err.Error()
		return result
	}
	if bench.Setup != nil {
		bench.Setup(e)
	}

	start := time.Now()
	_, err := e.Run(bench.Steps)
	result.WallTime = time.Since(start)
	if err != nil {
		result.Err = err.Error()
	}

	result.Instructions = e.InstructionCount()

	if fc, ok := e.FetchCache().(*cache.Cache); ok {
		stats := fc.Stats()
		result.Reads = stats.Reads
		result.Hits = stats.Hits
		result.Misses = stats.Misses
		result.Evictions = stats.Evictions
		result.Invalidations = stats.Invalidations
		result.FetchCycles = stats.Cycles
		result.HitRate = stats.HitRate()
		if result.Instructions > 0 {
			result.CyclesPerInstruction = float64(stats.Cycles) / float64(result.Instructions)
		}
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== c8sim Fetch Cache Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		if r.Err != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Err)
		}

		if r.Reads > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Fetch Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Reads:         %d\n", r.Reads)
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:          %d\n", r.Hits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:        %d\n", r.Misses)
			_, _ = fmt.Fprintf(h.config.Output, "  Evictions:     %d\n", r.Evictions)
			_, _ = fmt.Fprintf(h.config.Output, "  Invalidations: %d\n", r.Invalidations)
			_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate:      %.1f%%\n", 100*r.HitRate)
			_, _ = fmt.Fprintf(h.config.Output, "  Cycles/Inst:   %.3f\n", r.CyclesPerInstruction)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,reads,hits,misses,evictions,invalidations,fetch_cycles,hit_rate")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%d,%d,%d,%d,%.4f\n",
			r.Name,
			r.Instructions,
			r.Reads,
			r.Hits,
			r.Misses,
			r.Evictions,
			r.Invalidations,
			r.FetchCycles,
			r.HitRate,
		)
	}
}

// BenchmarkReport is the top-level JSON document written by PrintJSON.
type BenchmarkReport struct {
	Timestamp string            `json:"timestamp"`
	Cache     *cache.Config     `json:"cache,omitempty"`
	Results   []BenchmarkResult `json:"results"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   results,
	}
	if h.config.EnableCache {
		c := h.config.Cache
		report.Cache = &c
	}
	for _, r := range results {
		report.TotalWallTime += r.WallTime
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// BuildProgram assembles opcode words into a big-endian ROM image.
func BuildProgram(words ...uint16) []byte {
	program := make([]byte, 2*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint16(program[2*i:], w)
	}
	return program
}
