package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/cli"
	"github.com/haivivi/flexbuf/pkg/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage flexbuf profiles.

Configuration is stored in ~/.flexbuf/config.yaml. A profile holds buffer
settings (page size, minimum pages, size ceiling, idle delay), the snapshot
directory and S3 settings for s3:// inputs and outputs.

Examples:
  flexbuf config add-profile dev --page-size 256 --max-length 1048576
  flexbuf config add-profile minio --s3-endpoint http://localhost:9000 --s3-path-style
  flexbuf config use-profile dev
  flexbuf config list
  flexbuf config show dev`,
}

var configAddProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Add or replace a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		pageSize, _ := flags.GetInt("page-size")
		minPages, _ := flags.GetInt("min-pages")
		maxLength, _ := flags.GetInt("max-length")
		houseKeep, _ := flags.GetDuration("house-keep")
		snapshotDir, _ := flags.GetString("snapshot-dir")
		region, _ := flags.GetString("s3-region")
		endpoint, _ := flags.GetString("s3-endpoint")
		pathStyle, _ := flags.GetBool("s3-path-style")
		accessKey, _ := flags.GetString("s3-access-key")
		secretKey, _ := flags.GetString("s3-secret-key")

		p := &cli.Profile{
			Buffer: buffer.Config{
				PageSize:  pageSize,
				MinPages:  minPages,
				MaxLength: maxLength,
				HouseKeep: houseKeep,
			},
			SnapshotDir: snapshotDir,
			S3: storage.S3Config{
				Region:          region,
				Endpoint:        endpoint,
				UsePathStyle:    pathStyle,
				AccessKeyID:     accessKey,
				SecretAccessKey: secretKey,
			},
		}
		if err := cfg.AddProfile(args[0], p); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' added", args[0])
		return nil
	},
}

var configDeleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' deleted", args[0])
		return nil
	},
}

var configUseProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile '%s'", args[0])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Println("No profiles configured.")
			fmt.Println("Create one with: flexbuf config add-profile <name>")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tPAGE\tMAX\tHOUSEKEEP")
		for _, name := range names {
			current := ""
			if name == cfg.CurrentProfile {
				current = "*"
			}
			bc := cfg.Profiles[name].Buffer.WithDefaults()
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", current, name, bc.PageSize,
				cli.FormatBytesInt(bc.MaxLength), cli.FormatDuration(bc.HouseKeep))
		}
		return w.Flush()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile (default: current) with secrets masked",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		name := profileName
		if len(args) == 1 {
			name = args[0]
		}
		p, err := cfg.ResolveProfile(name)
		if err != nil {
			return err
		}
		return outputResult(p.Masked(), "")
	},
}

func init() {
	f := configAddProfileCmd.Flags()
	f.Int("page-size", 0, "growth granularity in bytes (default 4096)")
	f.Int("min-pages", 0, "pages kept after idle shrink (default 1)")
	f.Int("max-length", 0, "size ceiling in bytes (default 10 MiB)")
	f.Duration("house-keep", 0, "idle delay before shrinking (default 5s)")
	f.String("snapshot-dir", "", "snapshot directory (default ~/.flexbuf/snapshots)")
	f.String("s3-region", "", "S3 region (default $AWS_REGION or us-east-1)")
	f.String("s3-endpoint", "", "S3 endpoint for S3-compatible services")
	f.Bool("s3-path-style", false, "use path-style S3 addressing")
	f.String("s3-access-key", "", "S3 access key ID (default $AWS_ACCESS_KEY_ID)")
	f.String("s3-secret-key", "", "S3 secret access key (default $AWS_SECRET_ACCESS_KEY)")

	configCmd.AddCommand(configAddProfileCmd)
	configCmd.AddCommand(configDeleteProfileCmd)
	configCmd.AddCommand(configUseProfileCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

