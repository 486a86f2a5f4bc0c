// Registry side of the flow: non-interactive login, push each ref,
// logout. Building and tagging live elsewhere.
package docker

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"shipit/internal/executil"
)

// PushImage logs into the registry and pushes every ref in opts.Refs.
// It respects opts.DryRun (commands are printed, not executed).
func PushImage(opts *PushOptions) error {
	if opts == nil {
		return errors.New("push options are nil")
	}
	refs := dedupRefs(opts.Refs)
	if len(refs) == 0 {
		return errors.New("no refs to push")
	}

	if opts.Registry == "" || opts.User == "" {
		return errors.New("missing registry or user (set SHIPIT_REGISTRY/CI_REGISTRY and CI_REGISTRY_USER)")
	}
	if opts.Password == "" {
		return errors.New("missing registry password (set CI_REGISTRY_PASSWORD or CI_JOB_TOKEN)")
	}

	if err := registryLogin(opts.Registry, opts.User, opts.Password, opts.DryRun); err != nil {
		return errors.Wrap(err, "docker login failed")
	}
	if !opts.DryRun {
		// Only log out if we actually logged in.
		defer registryLogout(opts.Registry)
	}

	for _, r := range refs {
		if err := pushRef(r, opts.DryRun); err != nil {
			return err
		}
	}
	return nil
}

// registryLogin runs a docker login (password masked if dry-run).
func registryLogin(registry, user, password string, dry bool) error {
	if dry {
		return executil.DryRunCMD("docker", "login", "-u", user, "-p", "[REDACTED]", registry)
	}
	return executil.RunCMD("docker", "login", "-u", user, "-p", password, registry)
}

// registryLogout runs docker logout but never fails the run.
func registryLogout(registry string) {
	if err := executil.RunCMD("docker", "logout", registry); err != nil {
		log.Warn().Err(err).Str("registry", registry).Msg("docker logout failed")
	}
}

// pushRef pushes a single tag (respects dry-run).
func pushRef(ref string, dry bool) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if dry {
		return executil.DryRunCMD("docker", "push", ref)
	}
	log.Info().Str("ref", ref).Msg("pushing image")
	return executil.RunCMD("docker", "push", ref)
}

// InteractiveLogin runs docker login against the configured registry
// with stdin attached, so the registry client can prompt for
// credentials. When user is already known it is passed along.
func InteractiveLogin(registry, user string, dry bool) error {
	if strings.TrimSpace(registry) == "" {
		return errors.New("registry is empty (set SHIPIT_REGISTRY or CI_REGISTRY)")
	}
	args := []string{"login"}
	if user != "" {
		args = append(args, "-u", user)
	}
	args = append(args, registry)

	if dry {
		return executil.DryRunCMD("docker", args...)
	}
	return executil.RunInteractive("docker", args...)
}
