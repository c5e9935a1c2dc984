// Command benchmark runs the c8sim fetch-cache benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv       Output results in CSV format (default: human-readable)
//	-json      Output results in JSON format
//	-no-cache  Disable the fetch-cache model
//	-config    Machine config whose fetch_cache geometry is used
//
// Example:
//
//	# Run all benchmarks with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/c8sim/benchmarks"
	"github.com/sarchlab/c8sim/config"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	noCache := flag.Bool("no-cache", false, "Disable the fetch-cache model")
	configPath := flag.String("config", "", "Path to machine configuration JSON file")
	flag.Parse()

	harnessConfig := benchmarks.DefaultConfig()
	harnessConfig.EnableCache = !*noCache
	harnessConfig.Output = os.Stdout

	if *configPath != "" {
		machine, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading machine config: %v\n", err)
			os.Exit(1)
		}
		if machine.FetchCache != nil {
			harnessConfig.Cache = *machine.FetchCache
		}
	}

	harness := benchmarks.NewHarness(harnessConfig)
	harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())

	if !*csvOutput && !*jsonOutput {
		fmt.Println("c8sim Fetch Cache Benchmark Harness")
		fmt.Println("===================================")
		fmt.Printf("Cache: %v\n", harnessConfig.EnableCache)
		if harnessConfig.EnableCache {
			c := harnessConfig.Cache
			fmt.Printf("Geometry: %dB, %d-way, %dB lines\n", c.Size, c.Associativity, c.BlockSize)
		}
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}
}
