package docker

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"shipit/internal/executil"
)

// BuildImage assembles and runs a docker build for every ref in
// opts.FullRefs. The build backend toggle (DOCKER_BUILDKIT) is applied
// through opts.Env rather than the parent environment so the choice is
// explicit in the echoed command context.
func BuildImage(opts *BuildOptions) error {
	args, err := BuildCommandArgs(opts)
	if err != nil {
		return err
	}

	// Only validate the filesystem when we will actually run.
	if !opts.DryRun {
		if st, err := os.Stat(opts.Dockerfile); err != nil || st.IsDir() {
			return errors.Errorf("dockerfile %q not found or not a file", opts.Dockerfile)
		}
		if st, err := os.Stat(opts.ContextPath); err != nil || !st.IsDir() {
			return errors.Errorf("build context %q not found or not a directory", opts.ContextPath)
		}
	}

	WriteBuildPlan(os.Stdout, opts, args)

	if opts.DryRun {
		return executil.DryRunWithEnv(opts.Env, "docker", args...)
	}
	return executil.RunWithEnv(opts.Env, "docker", args...)
}

// BuildCommandArgs turns BuildOptions into the docker build argument
// list. It is split out so the plan command can show the exact
// invocation without running it.
func BuildCommandArgs(opts *BuildOptions) ([]string, error) {
	if opts == nil {
		return nil, errors.New("build options are nil")
	}
	if len(opts.FullRefs) == 0 {
		return nil, errors.New("at least one repo:tag ref is required")
	}
	if strings.TrimSpace(opts.Dockerfile) == "" {
		opts.Dockerfile = "Dockerfile"
	}
	if strings.TrimSpace(opts.ContextPath) == "" {
		opts.ContextPath = "."
	}

	refs := dedupRefs(opts.FullRefs)
	for _, r := range refs {
		// Docker refs must be lowercase with no whitespace.
		if strings.ToLower(r) != r || strings.ContainsAny(r, " \t\n") {
			return nil, errors.Errorf("invalid ref %q (must be lowercase, no spaces)", r)
		}
	}

	args := []string{"build", "--progress=plain"}
	for _, r := range refs {
		args = append(args, "-t", r)
	}
	args = append(args, "-f", opts.Dockerfile)
	if opts.Pull {
		args = append(args, "--pull")
	}
	if opts.NoCache {
		args = append(args, "--no-cache")
	}
	if opts.Target != "" {
		args = append(args, "--target", opts.Target)
	}

	// Default OCI provenance labels; explicit opts.Labels win by coming
	// later on the command line.
	autoLabels := [][2]string{
		{"org.opencontainers.image.revision", os.Getenv("CI_COMMIT_SHA")},
		{"org.opencontainers.image.version", firstLabelValue(os.Getenv("SHIPIT_VERSION"), os.Getenv("CI_COMMIT_TAG"))},
		{"org.opencontainers.image.source", os.Getenv("CI_PROJECT_URL")},
		{"org.opencontainers.image.ref.name", os.Getenv("CI_COMMIT_REF_NAME")},
	}
	for _, kv := range autoLabels {
		if kv[1] != "" {
			args = append(args, "--label", kv[0]+"="+kv[1])
		}
	}
	for _, kv := range opts.Labels {
		if kv[0] != "" {
			args = append(args, "--label", kv[0]+"="+kv[1])
		}
	}

	for _, kv := range opts.BuildArgs {
		if kv[0] != "" && kv[1] != "" {
			args = append(args, "--build-arg", kv[0]+"="+kv[1])
		}
	}
	args = append(args, opts.ContextPath)
	return args, nil
}

// WriteBuildPlan prints what the build is about to do, with secret
// build args masked.
func WriteBuildPlan(w io.Writer, opts *BuildOptions, args []string) {
	fmt.Fprintln(w, "— Build Plan —")
	for _, r := range dedupRefs(opts.FullRefs) {
		fmt.Fprintf(w, "  tag: %s\n", r)
	}
	fmt.Fprintf(w, "Dockerfile: %s\n", opts.Dockerfile)
	fmt.Fprintf(w, "Context   : %s\n", opts.ContextPath)
	execLine := "docker " + executil.QuoteArgs(redactBuildArgs(args))
	if env := executil.FormatEnv(opts.Env); env != "" {
		execLine = env + " " + execLine
	}
	fmt.Fprintln(w, "Executing :", execLine)
}

func firstLabelValue(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
