package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/cli"
	"github.com/haivivi/flexbuf/pkg/storage"
)

var (
	// Global flags
	cfgFile      string
	profileName  string
	formatOutput string
	verbose      bool

	// Global configuration
	globalConfig  *cli.Config
	configLoadErr error
)

var rootCmd = &cobra.Command{
	Use:   "flexbuf",
	Short: "Build, decode and inspect binary payloads",
	Long: `flexbuf - A command line interface for paged binary buffers.

Payloads are built in a growable buffer that allocates whole pages, enforces
a size ceiling and releases memory after an idle period. Buffer settings come
from the selected profile.

Configuration is stored in ~/.flexbuf/config.yaml and supports multiple
profiles, similar to kubectl's context management.

Examples:
  # Create a profile with 256 byte pages and a 1 MiB ceiling
  flexbuf config add-profile dev --page-size 256 --max-length 1048576

  # Build a payload from an op script and write it to S3
  flexbuf encode -f packet.yaml -o s3://bucket/packets/p1.bin

  # Decode it with a field layout
  flexbuf decode -f header.yaml s3://bucket/packets/p1.bin --jq '.[].value'

  # Keep a named snapshot of the payload
  flexbuf snapshot save p1 -f packet.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.flexbuf/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name to use")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", string(cli.FormatYAML), "output format for structured results (yaml, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	globalConfig, configLoadErr = cli.LoadConfig(cfgFile)
}

// getConfig returns the loaded configuration. Commands that need it report
// the load error; others keep working without a config.
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// getProfile returns the profile selected by --profile or the current one.
func getProfile() (*cli.Profile, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	return cfg.ResolveProfile(profileName)
}

// bufferConfig returns the profile's buffer settings, overlaid with the
// non-zero fields of override, logging through the default logger.
func bufferConfig(p *cli.Profile, override *buffer.Config) buffer.Config {
	cfg := p.Buffer
	if override != nil {
		if override.PageSize > 0 {
			cfg.PageSize = override.PageSize
		}
		if override.MinPages > 0 {
			cfg.MinPages = override.MinPages
		}
		if override.MaxLength > 0 {
			cfg.MaxLength = override.MaxLength
		}
		if override.HouseKeep > 0 {
			cfg.HouseKeep = override.HouseKeep
		}
	}
	cfg.Logger = slog.Default()
	return cfg
}

// openLocation parses a file path or s3:// URL and opens the store for it.
func openLocation(p *cli.Profile, raw string, cfg buffer.Config) (storage.FileStore, string, error) {
	loc, err := storage.ParseURL(raw)
	if err != nil {
		return nil, "", err
	}
	return storage.Open(loc, func() storage.S3Client {
		return storage.NewS3Client(p.S3)
	}, cfg)
}

// loadInput reads a file path or s3:// URL into a new FlexBuffer.
func loadInput(ctx context.Context, p *cli.Profile, raw string, cfg buffer.Config) (*buffer.FlexBuffer, error) {
	fs, path, err := openLocation(p, raw, cfg)
	if err != nil {
		return nil, err
	}
	return storage.Load(ctx, fs, path, &cfg)
}

// writeBuffer writes the content of b to target, or to stdout when target
// is empty. asHex writes a hex string instead of raw bytes.
func writeBuffer(ctx context.Context, p *cli.Profile, b *buffer.FlexBuffer, target string, asHex bool) error {
	if target == "" {
		format := cli.FormatRaw
		if asHex {
			format = cli.FormatHex
		}
		return cli.Output(b.Bytes(), cli.OutputOptions{Format: format})
	}

	fs, path, err := openLocation(p, target, b.Config())
	if err != nil {
		return err
	}
	n, err := storage.Save(ctx, fs, path, b)
	if err != nil {
		return err
	}
	slog.Info("payload written", "target", target, "size", n)
	cli.PrintSuccess("Wrote %s to %s", cli.FormatBytesInt(n), target)
	return nil
}

// outputResult writes a structured result in the --format format.
func outputResult(result any, query string) error {
	return cli.Output(result, cli.OutputOptions{
		Format: cli.OutputFormat(formatOutput),
		Query:  query,
	})
}

// formatChosen reports whether --format was given. Commands with a table
// view print it unless a format was asked for.
func formatChosen() bool {
	return rootCmd.PersistentFlags().Changed("format")
}
