package cli

import (
	"github.com/spf13/cobra"

	"shipit/internal/docker"
)

// NewLoginCommand creates the "login" command for interactive registry
// authentication. Non-interactive CI logins happen inside push.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log into the configured registry interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			return docker.InteractiveLogin(cfg.Registry, cfg.RegistryUser, cfg.DryRun)
		},
	}
}
