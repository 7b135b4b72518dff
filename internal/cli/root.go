// Package cli provides the command-line interface for linemap.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsnanigans/linemap/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	// Global flags
	cfgPath string
	verbose bool

	// Loaded in PersistentPreRunE, shared by all commands.
	cfg      config.Config
	logger   *slog.Logger
	logClose func() error
)

var rootCmd = &cobra.Command{
	Use:   "linemap",
	Short: "Map line numbers between two versions of a file",
	Long: `Linemap computes which line in a new version of a file corresponds to each
line of the old version, tolerating insertions, deletions, reordering, and
small edits.

Identical lines anchor directly; edited regions are resolved by similarity
scoring and optimal assignment.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		level := config.ParseLogLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}
		logger, logClose = config.SetupLogger(cfg.LogFile, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logClose != nil {
			_ = logClose()
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(serveCmd)
}
