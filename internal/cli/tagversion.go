package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"shipit/internal/config"
	"shipit/internal/docker"
	"shipit/internal/version"
)

// NewTagVersionCommand creates the "tag-version" command. It re-tags the
// already-built <image>:<version> with a release version and pushes the
// new ref. Nothing is rebuilt.
func NewTagVersionCommand() *cobra.Command {
	var bump string

	cmd := &cobra.Command{
		Use:   "tag-version <version>",
		Short: "Re-tag the built image with a release version and push it",
		Long: `Apply a release tag to the already-built <image>:<version> and push
the new ref. The version is either given literally:

  shipit tag-version 1.4.0

or derived from the configured base version with --bump:

  shipit tag-version --bump patch

The source image must exist locally; run "shipit build" first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := ""
			if len(args) == 1 {
				v = strings.TrimSpace(args[0])
			}
			return runTagVersion(cmd, loadConfig(), v, bump)
		},
	}

	cmd.Flags().StringVar(&bump, "bump", "", "derive the release version from the base version (major, minor or patch)")

	return cmd
}

func runTagVersion(cmd *cobra.Command, cfg config.Config, v, bump string) error {
	// The usage guard comes first: with neither a version nor --bump
	// there is nothing to tag, and no tag or push may be attempted.
	switch {
	case v == "" && bump == "":
		_ = cmd.Usage()
		return errors.New("a version argument (or --bump) is required")
	case v != "" && bump != "":
		return errors.New("give either a version argument or --bump, not both")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if bump != "" {
		vt, err := version.ParseVersionType(bump)
		if err != nil {
			return err
		}
		next, err := version.ForecastNext(cfg.Version, vt)
		if err != nil {
			return errors.Wrapf(err, "cannot bump: base version %q is not semver", cfg.Version)
		}
		v = next
		log.Info().Str("base", cfg.Version).Str("next", v).Msg("derived release version")
	}

	// The supplied version is used verbatim whenever docker would accept
	// it; normalization is a loud fallback, never a silent rewrite.
	tag := v
	if !docker.ValidTag(tag) {
		cleaned := docker.CleanTag(v)
		if !docker.ValidTag(cleaned) {
			return errors.Errorf("invalid release tag %q", v)
		}
		log.Warn().Str("given", v).Str("normalized", cleaned).Msg("release tag normalized to a docker-valid form")
		tag = cleaned
	}
	if _, err := version.Parse(strings.TrimPrefix(strings.ToLower(tag), "v")); err != nil {
		// Free-form tags are allowed, but releases are usually semver.
		log.Warn().Str("tag", tag).Msg("release tag is not semver")
	}

	target := cfg.RefWithTag(tag)
	if target == cfg.Ref() {
		// Re-tagging onto the same ref is a no-op; the push still runs.
		log.Warn().Str("tag", tag).Msg("release tag equals the base version; re-tag is a no-op")
	}

	if err := docker.RetagImage(cmd.Context(), docker.RetagOptions{
		SourceRef: cfg.Ref(),
		TargetRef: target,
		DryRun:    cfg.DryRun,
	}); err != nil {
		return err
	}

	return docker.PushImage(docker.PushOptionsFromConfig(cfg, target))
}
