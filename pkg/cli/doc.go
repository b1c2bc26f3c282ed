// Package cli provides the shared plumbing of the flexbuf command.
//
// This package includes:
//   - Configuration management (profiles with buffer, snapshot and S3 settings)
//   - Output formatting (YAML, JSON, raw, hex) with optional jq queries
//   - Script and layout file loading (YAML/JSON)
//   - A lipgloss hex dump view of a buffer
//
// Configuration is stored in ~/.flexbuf/config.yaml and supports multiple
// profiles, similar to kubectl contexts.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("")
//	profile, err := cfg.ResolveProfile("")
//
//	cli.Output(values, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".[0].value",
//	})
package cli
