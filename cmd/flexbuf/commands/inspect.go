package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/cli"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [input]",
	Short: "Show a framed hex dump of a payload",
	Long: `Show a hex dump of a payload together with the buffer's size, capacity
and page settings. Input is a file path, an s3:// URL, or an op script
given with -f.

Examples:
  flexbuf inspect packet.bin
  flexbuf inspect -f packet.yaml --width 8
  flexbuf inspect s3://bucket/packet.bin --cursor 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

var (
	inspectFile   string
	inspectWidth  int
	inspectCursor int
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "op script to build the payload from")
	inspectCmd.Flags().IntVar(&inspectWidth, "width", 16, "bytes per line")
	inspectCmd.Flags().IntVar(&inspectCursor, "cursor", -1, "byte offset to highlight (default: buffer position)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := getProfile()
	if err != nil {
		return err
	}

	var (
		b      *buffer.FlexBuffer
		source string
	)
	switch {
	case inspectFile != "" && len(args) == 0:
		b, err = buildPayload(p, inspectFile)
		source = inspectFile
	case inspectFile == "" && len(args) == 1:
		b, err = loadInput(cmd.Context(), p, args[0], bufferConfig(p, nil))
		source = args[0]
	default:
		return fmt.Errorf("inspect needs exactly one of an input argument or -f")
	}
	if err != nil {
		return err
	}
	defer b.Close()

	fmt.Fprintln(os.Stdout, renderInspect(b, source, inspectWidth, inspectCursor))
	return nil
}

func renderInspect(b *buffer.FlexBuffer, source string, width, cursor int) string {
	if cursor < 0 {
		cursor = b.Position()
	}
	if width <= 0 {
		width = 16
	}
	st := cli.NewStyles(cli.DefaultTheme)
	dump := cli.HexDump(st, b.Bytes(), cursor, width)
	if len(dump) == 0 {
		dump = []string{"(empty)"}
	}

	frame := cli.Frame{
		Styles: st,
		Title:  source,
		Status: fmt.Sprintf("%s / %s", cli.FormatBytesInt(b.Size()), cli.FormatBytesInt(b.Capacity())),
		Sections: []cli.Section{
			{Label: "Buffer", Lines: []string{
				fmt.Sprintf("size      %d", b.Size()),
				fmt.Sprintf("capacity  %d (%d pages)", b.Capacity(), b.Capacity()/b.PageSize()),
				fmt.Sprintf("page      %d (min %d pages)", b.PageSize(), b.MinPages()),
				fmt.Sprintf("max       %d", b.MaxSize()),
				fmt.Sprintf("position  %d", b.Position()),
			}},
			{Label: "Data", Lines: dump},
		},
		Help: "cursor byte highlighted",
	}
	// offset(8) + 2 + 3 per byte + 1 + 1 per byte + borders(4)
	return frame.Render(8 + 2 + 4*width + 1 + 4)
}
