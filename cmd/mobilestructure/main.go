// Package main provides the mobilestructure CLI entry point.
//
// Overview:
//   - Responsibility: CLI command parsing and execution
//   - Key Types: app holding flags, settings and injectable dependencies
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: One-line error on stderr, exit 1 on failure, 130 on cancel
//   - Performance Notes: Fast startup, layouts are parsed once per run
//
// Usage:
//
//	mobilestructure
//	mobilestructure create --type flutter --name "Weather App" --path ./apps
package main

import (
	"os"
)

func main() {
	os.Exit(execute(newApp(), os.Args[1:]))
}
