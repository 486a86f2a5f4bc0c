package cli

import (
	"github.com/spf13/cobra"

	"shipit/internal/config"
	"shipit/internal/docker"
)

// NewBuildCommand creates the "build" command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build <image>:<version>",
		Long: `Build the container image tagged <image>:<version>.

The build backend is selected with the DOCKER_BUILDKIT environment
variable (enabled by default); commit provenance labels and build args
are injected automatically when running inside CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(loadConfig())
		},
	}
}

func runBuild(cfg config.Config) error {
	opts, err := docker.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	return docker.BuildImage(opts)
}
