package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/pkg/cli"
	"github.com/haivivi/flexbuf/pkg/layout"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <input>",
	Short: "Decode a payload with a field layout",
	Long: `Decode a payload field by field. Input is a file path or s3:// URL.

Example layout:

  fields:
    - {name: magic, type: uint16be}
    - {name: length, type: uint32le}
    - {name: title, type: string, len: 5}
    - {name: body, type: bytes, rest: true}

Examples:
  flexbuf decode -f header.yaml packet.bin
  flexbuf decode -f header.yaml packet.bin --offset 2 --json
  flexbuf decode -f header.yaml s3://bucket/packet.bin --jq '.[] | select(.name == "length") | .value'`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

var (
	decodeFile   string
	decodeOffset int
	decodeQuery  string
	decodeJSON   bool
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "layout file (YAML or JSON, - for stdin)")
	decodeCmd.Flags().IntVar(&decodeOffset, "offset", 0, "byte offset to start decoding at")
	decodeCmd.Flags().StringVar(&decodeQuery, "jq", "", "jq expression applied to the decoded values")
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "output as JSON (same as --format json)")
	decodeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	p, err := getProfile()
	if err != nil {
		return err
	}
	var l layout.Layout
	if err := cli.LoadRequest(decodeFile, &l); err != nil {
		return err
	}

	b, err := loadInput(cmd.Context(), p, args[0], bufferConfig(p, nil))
	if err != nil {
		return err
	}
	defer b.Close()
	b.MoveTo(decodeOffset)

	values, err := layout.Decode(b, l.Fields)
	if err != nil {
		return err
	}
	if decodeJSON {
		formatOutput = string(cli.FormatJSON)
	}
	return outputResult(values, decodeQuery)
}
