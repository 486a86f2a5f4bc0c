// Package config loads the tool's configuration from the environment.
// Everything is env-driven so the same binary behaves identically in a
// GitLab CI job and in a local shell; a .env file (loaded at startup)
// covers local overrides.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Config captures everything the build, push and tag commands need.
type Config struct {
	// Image is the fully-qualified image name without a tag,
	// e.g. "registry.example.com/group/app".
	Image string
	// Version is the base version tag applied by build and push.
	Version string
	// Registry is the host used for login/logout. Derived from Image
	// when not set explicitly.
	Registry string

	Dockerfile  string
	ContextPath string

	// BuildKit mirrors DOCKER_BUILDKIT and is re-exported into the
	// build command's environment.
	BuildKit bool
	Pull     bool
	NoCache  bool
	Target   string
	DryRun   bool

	RegistryUser     string
	RegistryPassword string
}

// Load reads the configuration from environment variables, preferring
// SHIPIT_* overrides and falling back to the GitLab CI equivalents.
func Load() Config {
	image := firstNonEmpty(
		os.Getenv("SHIPIT_IMAGE"),
		os.Getenv("CI_REGISTRY_IMAGE"),
	)

	return Config{
		Image: image,
		Version: firstNonEmpty(
			os.Getenv("SHIPIT_VERSION"),
			os.Getenv("CI_COMMIT_TAG"),
			os.Getenv("CI_COMMIT_SHORT_SHA"),
			"dev",
		),
		Registry: firstNonEmpty(
			os.Getenv("SHIPIT_REGISTRY"),
			os.Getenv("CI_REGISTRY"),
			registryFromImage(image),
		),
		Dockerfile:  getenv("SHIPIT_DOCKERFILE", "Dockerfile"),
		ContextPath: getenv("SHIPIT_BUILD_CONTEXT", "."),
		BuildKit:    getenv("DOCKER_BUILDKIT", "1") != "0",
		Pull:        os.Getenv("SHIPIT_PULL") == "true",
		NoCache:     os.Getenv("SHIPIT_NOCACHE") == "true",
		Target:      os.Getenv("SHIPIT_TARGET"),
		DryRun:      os.Getenv("SHIPIT_DRY_RUN") == "true",
		RegistryUser: firstNonEmpty(
			os.Getenv("SHIPIT_REGISTRY_USER"),
			os.Getenv("CI_REGISTRY_USER"),
		),
		RegistryPassword: firstNonEmpty(
			os.Getenv("SHIPIT_REGISTRY_PASSWORD"),
			os.Getenv("CI_REGISTRY_PASSWORD"),
			os.Getenv("CI_JOB_TOKEN"),
		),
	}
}

// Validate checks that build/push/tag commands have an image to work on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Image) == "" {
		return errors.New("image name is empty (set SHIPIT_IMAGE or CI_REGISTRY_IMAGE)")
	}
	if strings.TrimSpace(c.Version) == "" {
		return errors.New("version is empty (set SHIPIT_VERSION)")
	}
	return nil
}

// Ref returns the base image reference, "<image>:<version>".
func (c Config) Ref() string {
	return c.Image + ":" + c.Version
}

// RefWithTag returns "<image>:<tag>" for an alternative tag.
func (c Config) RefWithTag(tag string) string {
	return c.Image + ":" + tag
}

// BuildEnv returns the environment injected into the build command;
// this is where the build backend toggle is applied.
func (c Config) BuildEnv() map[string]string {
	v := "1"
	if !c.BuildKit {
		v = "0"
	}
	return map[string]string{"DOCKER_BUILDKIT": v}
}

// registryFromImage extracts the registry host from a fully-qualified
// image name. The first path segment is a registry only if it looks like
// a host (contains a dot or a port), matching the docker CLI's rule.
func registryFromImage(image string) string {
	seg, _, found := strings.Cut(image, "/")
	if !found {
		return ""
	}
	if strings.ContainsAny(seg, ".:") || seg == "localhost" {
		return seg
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
