package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/cmd/flexbuf/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatChosen() {
			return outputResult(build.Get(), "")
		}
		fmt.Println(build.String())
		if verbose {
			if cfg, err := getConfig(); err == nil {
				fmt.Printf("  config: %s\n", cfg.Path())
			} else {
				fmt.Printf("  config: (unavailable: %v)\n", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
