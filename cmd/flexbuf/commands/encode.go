package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/cli"
	"github.com/haivivi/flexbuf/pkg/layout"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a payload from an op script",
	Long: `Build a binary payload by running an op script against a fresh buffer.

The buffer uses the profile's settings, overridden by the script's own
"buffer" section. The result is written raw to stdout unless --hex or
--output is given.

Example script:

  buffer:
    page_size: 64
  ops:
    - {op: write, type: uint16be, value: 0xcafe}
    - {op: write, type: string, text: hello}
    - {op: move, pos: 2}
    - {op: insert, hex: "0001"}

Examples:
  flexbuf encode -f packet.yaml --hex
  flexbuf encode -f packet.yaml -o out/packet.bin
  cat packet.json | flexbuf encode -f - -o s3://bucket/packet.bin`,
	RunE: runEncode,
}

var (
	encodeFile   string
	encodeOutput string
	encodeHex    bool
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeFile, "file", "f", "", "op script file (YAML or JSON, - for stdin)")
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "output file or s3:// URL (default: stdout)")
	encodeCmd.Flags().BoolVar(&encodeHex, "hex", false, "write hex instead of raw bytes to stdout")
	encodeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	p, err := getProfile()
	if err != nil {
		return err
	}
	b, err := buildPayload(p, encodeFile)
	if err != nil {
		return err
	}
	defer b.Close()
	return writeBuffer(cmd.Context(), p, b, encodeOutput, encodeHex)
}

// buildPayload loads an op script and runs it with the profile's buffer
// settings.
func buildPayload(p *cli.Profile, path string) (*buffer.FlexBuffer, error) {
	var script layout.Script
	if err := cli.LoadRequest(path, &script); err != nil {
		return nil, err
	}
	cfg := bufferConfig(p, &script.Buffer)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := script.Run(&cfg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return b, nil
}
