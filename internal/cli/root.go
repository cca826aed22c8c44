// Package cli provides the command-line interface for wordrel.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wordrel/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	profilePath string
	noProgress  bool
	globalFlags config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wordrel",
	Short: "Highlight ambiguous terms in wordpacks",
	Long: `Wordrel builds antonym and synonym graphs from an annotated word relations
file and checks curated wordpacks against them.

A related term is ambiguous when it is also an antonym (or synonym) of
another base term in the same wordpack. The output repeats every wordpack
with those terms highlighted.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&profilePath, "config", "", "profile file with settings (.yaml, .yml or .toml)")
	pf.BoolVar(&noProgress, "no-progress", false, "do not show progress while loading the relations file")
	pf.StringVar(&globalFlags.LogFile, "log-file", "", "also write JSON logs to this file")
	pf.StringVar(&globalFlags.LogLevel, "log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")

	// Add subcommands
	rootCmd.AddCommand(antonymsCmd)
	rootCmd.AddCommand(synonymsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wordrel %s\n", Version)
	},
}

// loadConfig resolves the configuration for mode and overlays the flags the
// user set explicitly on cmd. local holds the values bound to cmd's flags.
func loadConfig(cmd *cobra.Command, mode config.Mode, local *config.Config) (config.Config, error) {
	cfg, err := config.Load(mode, profilePath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	overlayChanged(cmd, &globalFlags, &cfg)
	if local != nil {
		overlayChanged(cmd, local, &cfg)
	}
	return cfg, nil
}

// newLogger builds the run logger. Every record carries the run ID.
func newLogger(cfg config.Config) (*slog.Logger, func() error) {
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.Level())
	return logger.With("run_id", uuid.NewString()), cleanup
}

// closeLogger runs the logger cleanup, reporting failures on stderr.
func closeLogger(cleanup func() error) {
	if err := cleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
}
