// Package main provides the entry point for c8sim.
// c8sim is a CHIP-8 interpreter with an Akita-backed fetch-cache model.
//
// For the full CLI, use: go run ./cmd/c8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("c8sim - CHIP-8 Interpreter")
	fmt.Println("Fetch-cache model built on Akita")
	fmt.Println("")
	fmt.Println("Usage: c8sim [options] <program.ch8>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to machine configuration JSON file")
	fmt.Println("  -v         Log verbosity")
	fmt.Println("  -disasm    Print the ROM disassembly and exit")
	fmt.Println("  -steps     Stop after this many instructions")
	fmt.Println("  -realtime  Pace execution at the configured cpu_hz")
	fmt.Println("  -frames    Print every rendered frame")
	fmt.Println("  -cache     Model the instruction-fetch cache")
	fmt.Println("  -stats     Print execution statistics on exit")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/c8sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/c8sim' instead.")
	}
}
