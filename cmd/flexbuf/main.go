// Package main is the entry point for the flexbuf CLI.
//
// Usage:
//
//	flexbuf [flags] <command> [subcommand] [args]
//
// Commands:
//
//	encode     - Build a binary payload from an op script
//	decode     - Decode a payload with a field layout
//	inspect    - Show a framed hex dump of a payload
//	snapshot   - Save, load, list and delete buffer snapshots
//	config     - Configuration management (profiles)
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/flexbuf/cmd/flexbuf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
