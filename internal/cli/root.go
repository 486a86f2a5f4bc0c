// Package cli implements the cobra commands. Each subcommand lives in
// its own file; the root only wires global flags and formats errors.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"shipit/internal/config"
)

// Version is injected at build time via ldflags.
var Version = "dev"

// Global flags, bound as persistent flags on the root command.
var (
	dryRun  bool
	verbose bool
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipit",
		Short: "Build, push and release container images",
		Long: `shipit replaces the usual Makefile glue around a container build:
it builds <image>:<version>, pushes it to the registry, re-tags released
versions and handles registry login. Configuration comes from the
environment (SHIPIT_* with GitLab CI fallbacks), so the same binary works
in a pipeline and on a laptop.`,

		// Errors are formatted once, in Execute.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: Version,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print commands instead of executing them")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(NewAllCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewPushCommand())
	rootCmd.AddCommand(NewTagVersionCommand())
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewPlanCommand())

	return rootCmd
}

// Execute runs the root command and maps errors to a non-zero exit.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment config, folding in the --dry-run flag.
func loadConfig() config.Config {
	cfg := config.Load()
	if dryRun {
		cfg.DryRun = true
	}
	if cfg.DryRun {
		log.Debug().Msg("dry-run mode: commands will be printed, not executed")
	}
	return cfg
}
