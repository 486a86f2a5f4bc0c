package cli

import (
	"github.com/spf13/cobra"

	"shipit/internal/config"
	"shipit/internal/docker"
)

// NewPushCommand creates the "push" command.
func NewPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push <image>:<version> to the registry",
		Long: `Log into the configured registry with the CI credentials, push
<image>:<version>, and log out again. The image must have been built
first (see "shipit build" or "shipit all").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(loadConfig())
		},
	}
}

func runPush(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return docker.PushImage(docker.PushOptionsFromConfig(cfg, cfg.Ref()))
}
