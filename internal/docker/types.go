package docker

import (
	"os"

	"shipit/internal/config"
)

// BuildOptions is everything the build runner needs to assemble and run
// a docker build invocation.
type BuildOptions struct {
	Dockerfile  string      // default: "Dockerfile"
	ContextPath string      // default: "."
	BuildArgs   [][2]string // KEY,VALUE (deterministic order)
	Labels      [][2]string // optional extra labels

	FullRefs []string // e.g. ["registry.example.com/team/app:1.2.3"]

	Target  string            // optional multi-stage target
	Pull    bool              // docker build --pull
	NoCache bool              // docker build --no-cache
	DryRun  bool              // print only
	Env     map[string]string // injected into the build process (backend toggle)
}

// OptionsFromConfig turns the loaded configuration into BuildOptions.
// The base ref is always <image>:<version>; commit provenance build args
// are injected when running inside CI.
func OptionsFromConfig(cfg config.Config) (*BuildOptions, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	args := [][2]string{
		{"VERSION", cfg.Version},
		{"GIT_SHA", os.Getenv("CI_COMMIT_SHA")},
		{"GIT_SHORT_SHA", os.Getenv("CI_COMMIT_SHORT_SHA")},
		{"CI_PROJECT_PATH", os.Getenv("CI_PROJECT_PATH")},
	}

	return &BuildOptions{
		Dockerfile:  cfg.Dockerfile,
		ContextPath: cfg.ContextPath,
		BuildArgs:   args,
		FullRefs:    []string{cfg.Ref()},
		Target:      cfg.Target,
		Pull:        cfg.Pull,
		NoCache:     cfg.NoCache,
		DryRun:      cfg.DryRun,
		Env:         cfg.BuildEnv(),
	}, nil
}

// PushOptions carries the registry side of the flow.
type PushOptions struct {
	Registry string
	User     string
	Password string
	Refs     []string
	DryRun   bool
}

// PushOptionsFromConfig prepares a push of the given refs with the
// configured registry credentials.
func PushOptionsFromConfig(cfg config.Config, refs ...string) *PushOptions {
	return &PushOptions{
		Registry: cfg.Registry,
		User:     cfg.RegistryUser,
		Password: cfg.RegistryPassword,
		Refs:     refs,
		DryRun:   cfg.DryRun,
	}
}
