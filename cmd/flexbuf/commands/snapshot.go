package commands

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/cli"
	"github.com/haivivi/flexbuf/pkg/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Save and restore buffer snapshots",
	Long: `Save, load, list and delete buffer snapshots.

Snapshots keep a buffer's settings, content and cursor position in a
BadgerDB directory (the profile's snapshot_dir, default
~/.flexbuf/snapshots). They are referenced by ID or by name; a name
resolves to its most recent snapshot.

Examples:
  flexbuf snapshot save p1 -f packet.yaml
  flexbuf snapshot save p1 packet.bin
  flexbuf snapshot list
  flexbuf snapshot load p1 -o restored.bin
  flexbuf snapshot delete p1`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name> [input]",
	Short: "Save a payload as a snapshot",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := getProfile()
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")

		if (file == "") == (len(args) == 1) {
			return fmt.Errorf("snapshot save needs exactly one of an input argument or -f")
		}

		st, err := openSnapshots(p)
		if err != nil {
			return err
		}
		defer st.Close()

		var b *buffer.FlexBuffer
		if file != "" {
			b, err = buildPayload(p, file)
		} else {
			b, err = loadInput(cmd.Context(), p, args[1], bufferConfig(p, nil))
		}
		if err != nil {
			return err
		}
		defer b.Close()

		snap, err := snapshot.Take(args[0], b)
		if err != nil {
			return err
		}
		if err := st.Save(cmd.Context(), snap); err != nil {
			return err
		}
		cli.PrintSuccess("Snapshot '%s' saved (%s, %s)", snap.Name, snap.ID, cli.FormatBytesInt(len(snap.Data)))
		return nil
	},
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <id|name>",
	Short: "Restore a snapshot and write its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := getProfile()
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		asHex, _ := cmd.Flags().GetBool("hex")

		st, err := openSnapshots(p)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := snapshot.Find(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}
		b, err := snap.Restore(slog.Default())
		if err != nil {
			return err
		}
		defer b.Close()
		return writeBuffer(cmd.Context(), p, b, output, asHex)
	},
}

var snapshotListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := getProfile()
		if err != nil {
			return err
		}
		st, err := openSnapshots(p)
		if err != nil {
			return err
		}
		defer st.Close()

		var infos []snapshot.Info
		for info, err := range st.List(cmd.Context()) {
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}

		if formatChosen() {
			return outputResult(infos, "")
		}
		if len(infos) == 0 {
			fmt.Println("No snapshots.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tPOSITION\tCREATED")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", info.ID, info.Name,
				cli.FormatBytesInt(info.Size), info.Position, info.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:     "delete <id|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := getProfile()
		if err != nil {
			return err
		}
		st, err := openSnapshots(p)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := snapshot.Find(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}
		if err := st.Delete(cmd.Context(), snap.ID); err != nil {
			return err
		}
		cli.PrintSuccess("Snapshot %s deleted", snap.ID)
		return nil
	},
}

// openSnapshots opens the profile's snapshot store.
func openSnapshots(p *cli.Profile) (snapshot.Store, error) {
	paths, err := cli.NewPaths()
	if err != nil {
		return nil, err
	}
	dir := p.SnapshotPath(paths)
	if err := cli.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	st, err := snapshot.NewBadger(snapshot.BadgerOptions{Dir: dir, Logger: slog.Default()})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func init() {
	snapshotSaveCmd.Flags().StringP("file", "f", "", "op script to build the payload from")
	snapshotLoadCmd.Flags().StringP("output", "o", "", "output file or s3:// URL (default: stdout)")
	snapshotLoadCmd.Flags().Bool("hex", false, "write hex instead of raw bytes to stdout")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotLoadCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}
