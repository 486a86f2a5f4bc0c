package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipit/internal/docker"
)

// NewPlanCommand creates the "plan" command: print the resolved
// configuration and the commands the other subcommands would run,
// without touching the daemon or the registry.
func NewPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the resolved configuration and planned commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			out := cmd.OutOrStdout()

			cfg.WriteSummary(out)
			fmt.Fprintln(out)

			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(out, "No build plan: %v\n", err)
				return nil
			}

			opts, err := docker.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			buildArgs, err := docker.BuildCommandArgs(opts)
			if err != nil {
				return err
			}
			docker.WriteBuildPlan(out, opts, buildArgs)

			fmt.Fprintln(out)
			fmt.Fprintln(out, "— Push Plan —")
			fmt.Fprintf(out, "  registry: %s\n", cfg.Registry)
			fmt.Fprintf(out, "  push: %s\n", cfg.Ref())
			return nil
		},
	}
}
