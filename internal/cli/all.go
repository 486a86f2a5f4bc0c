package cli

import (
	"github.com/spf13/cobra"
)

// NewAllCommand creates the "all" command: build, then push. This is
// the default pipeline entry point, mirroring a Makefile's `all` target.
func NewAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Build <image>:<version>, then push it",
		Long: `Run the full sequence: build the image, then push it to the
registry. The push step only runs when the build succeeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := runBuild(cfg); err != nil {
				return err
			}
			return runPush(cfg)
		},
	}
}
