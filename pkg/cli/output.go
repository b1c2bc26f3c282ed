package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	// FormatYAML outputs as YAML (default).
	FormatYAML OutputFormat = "yaml"
	// FormatJSON outputs as indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatRaw writes []byte and string results unchanged.
	FormatRaw OutputFormat = "raw"
	// FormatHex writes []byte results as a hex string.
	FormatHex OutputFormat = "hex"
)

// OutputOptions configures output behavior.
type OutputOptions struct {
	// Format is the output format (yaml, json, raw, hex).
	Format OutputFormat

	// File is the output file path (empty for stdout).
	File string

	// Indent is the indentation for JSON output.
	Indent string

	// Query is a jq expression applied to the result before formatting.
	// Each query result is written as a separate document.
	Query string

	// Writer is an optional custom writer (overrides File).
	Writer io.Writer
}

// Output writes the result to the configured destination.
func Output(result any, opts OutputOptions) error {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if opts.Query != "" {
		results, err := Query(opts.Query, result)
		if err != nil {
			return err
		}
		for _, r := range results {
			if err := output(w, r, opts); err != nil {
				return err
			}
		}
		return nil
	}
	return output(w, result, opts)
}

func output(w io.Writer, result any, opts OutputOptions) error {
	switch opts.Format {
	case FormatJSON:
		return outputJSON(w, result, opts.Indent)
	case FormatYAML, "":
		return outputYAML(w, result)
	case FormatRaw:
		return outputRaw(w, result)
	case FormatHex:
		return outputHex(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

func outputJSON(w io.Writer, result any, indent string) error {
	enc := json.NewEncoder(w)
	if indent == "" {
		indent = "  "
	}
	enc.SetIndent("", indent)
	return enc.Encode(result)
}

func outputYAML(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func outputRaw(w io.Writer, result any) error {
	switch v := result.(type) {
	case []byte:
		_, err := w.Write(v)
		return err
	case string:
		_, err := io.WriteString(w, v)
		return err
	default:
		return outputYAML(w, result)
	}
}

func outputHex(w io.Writer, result any) error {
	v, ok := result.([]byte)
	if !ok {
		return outputYAML(w, result)
	}
	_, err := fmt.Fprintln(w, hex.EncodeToString(v))
	return err
}

// PrintSuccess prints a success message with checkmark.
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintInfo prints an info message.
func PrintInfo(format string, args ...any) {
	fmt.Printf("ℹ "+format+"\n", args...)
}
