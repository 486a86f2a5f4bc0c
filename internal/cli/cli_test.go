package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipit/internal/executil"
)

// runCLI executes the root command with the given args and returns
// whatever was written to the command's out/err streams.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// setShipEnv configures a complete, valid environment for dry-run flows.
func setShipEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHIPIT_IMAGE", "registry.example.com/team/app")
	t.Setenv("SHIPIT_VERSION", "1.2.3")
	t.Setenv("SHIPIT_REGISTRY", "registry.example.com")
	t.Setenv("CI_REGISTRY_USER", "ci")
	t.Setenv("CI_JOB_TOKEN", "token")
	t.Setenv("SHIPIT_DRY_RUN", "")
	t.Setenv("DOCKER_BUILDKIT", "")
	t.Setenv("CI_REGISTRY_IMAGE", "")
	t.Setenv("CI_COMMIT_TAG", "")
	t.Setenv("CI_COMMIT_SHORT_SHA", "")
}

func TestTagVersionWithoutVersionPrintsUsage(t *testing.T) {
	setShipEnv(t)

	out, err := runCLI(t, "tag-version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "version argument")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "tag-version")
}

func TestTagVersionRejectsVersionAndBump(t *testing.T) {
	setShipEnv(t)

	_, err := runCLI(t, "tag-version", "1.4.0", "--bump", "patch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

// captureDryRun collects the "[DRY RUN] ..." echo lines so tests can
// assert the exact command sequence a flow would run.
func captureDryRun(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := executil.DryRunOutput
	executil.DryRunOutput = &buf
	t.Cleanup(func() { executil.DryRunOutput = old })
	return &buf
}

func TestTagVersionDryRunSequence(t *testing.T) {
	setShipEnv(t)
	cmds := captureDryRun(t)

	_, err := runCLI(t, "tag-version", "1.4.0", "--dry-run")
	require.NoError(t, err)

	out := cmds.String()
	tagIdx := strings.Index(out, "docker tag registry.example.com/team/app:1.2.3 registry.example.com/team/app:1.4.0")
	pushIdx := strings.Index(out, "docker push registry.example.com/team/app:1.4.0")

	// Re-tag first, then exactly one push, of the new ref only.
	require.GreaterOrEqual(t, tagIdx, 0, "re-tag command missing:\n%s", out)
	require.GreaterOrEqual(t, pushIdx, 0, "push command missing:\n%s", out)
	assert.Less(t, tagIdx, pushIdx)
	assert.Equal(t, 1, strings.Count(out, "docker push"))
	assert.NotContains(t, out, "docker push registry.example.com/team/app:1.2.3")
}

func TestTagVersionKeepsSuppliedTagVerbatim(t *testing.T) {
	setShipEnv(t)
	cmds := captureDryRun(t)

	// Uppercase is a valid docker tag and must not be rewritten.
	_, err := runCLI(t, "tag-version", "V1.4.0", "--dry-run")
	require.NoError(t, err)

	out := cmds.String()
	assert.Contains(t, out, "docker tag registry.example.com/team/app:1.2.3 registry.example.com/team/app:V1.4.0")
	assert.Contains(t, out, "docker push registry.example.com/team/app:V1.4.0")
	assert.NotContains(t, out, "app:v1.4.0")
}

func TestTagVersionNormalizesInvalidTag(t *testing.T) {
	setShipEnv(t)
	cmds := captureDryRun(t)

	_, err := runCLI(t, "tag-version", "hotfix/login", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, cmds.String(), "docker push registry.example.com/team/app:hotfix-login")
}

func TestTagVersionBumpDerivesFromBaseVersion(t *testing.T) {
	setShipEnv(t)

	_, err := runCLI(t, "tag-version", "--bump", "minor", "--dry-run")

	assert.NoError(t, err)
}

func TestTagVersionBumpNeedsSemverBase(t *testing.T) {
	setShipEnv(t)
	t.Setenv("SHIPIT_VERSION", "dev")

	_, err := runCLI(t, "tag-version", "--bump", "patch", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not semver")
}

func TestTagVersionRejectsInvalidBump(t *testing.T) {
	setShipEnv(t)

	_, err := runCLI(t, "tag-version", "--bump", "huge", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bump type")
}

func TestTagVersionRejectsUncleanableTag(t *testing.T) {
	setShipEnv(t)

	_, err := runCLI(t, "tag-version", "!!!", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid release tag")
}

func TestTagVersionSameAsBaseStillPushes(t *testing.T) {
	setShipEnv(t)
	cmds := captureDryRun(t)

	// A same-tag re-tag is a no-op but the push still happens.
	_, err := runCLI(t, "tag-version", "1.2.3", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, cmds.String(), "docker push registry.example.com/team/app:1.2.3")
}

func TestAllDoesNotPushWhenBuildFails(t *testing.T) {
	setShipEnv(t)
	t.Chdir(t.TempDir()) // no Dockerfile here

	_, err := runCLI(t, "all")

	require.Error(t, err)
	// The failure comes from the build step, before any push/login.
	assert.Contains(t, err.Error(), "dockerfile")
}

func TestBuildDryRunWithoutDockerfile(t *testing.T) {
	setShipEnv(t)
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "build", "--dry-run")

	assert.NoError(t, err)
}

func TestBuildRequiresImage(t *testing.T) {
	setShipEnv(t)
	t.Setenv("SHIPIT_IMAGE", "")

	_, err := runCLI(t, "build", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "image name is empty")
}

func TestAllDryRun(t *testing.T) {
	setShipEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/Dockerfile", []byte("FROM scratch\n"), 0o644))
	t.Chdir(dir)

	_, err := runCLI(t, "all", "--dry-run")

	assert.NoError(t, err)
}

func TestPlanShowsBuildAndPush(t *testing.T) {
	setShipEnv(t)

	out, err := runCLI(t, "plan")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "— Build Plan —")
	assert.Contains(t, out, "— Push Plan —")
	assert.Contains(t, out, "registry.example.com/team/app:1.2.3")
	// The backend toggle is part of the echoed invocation.
	assert.Contains(t, out, "DOCKER_BUILDKIT=1 docker")
}

func TestBuildDryRunShowsBackendToggle(t *testing.T) {
	setShipEnv(t)
	t.Setenv("DOCKER_BUILDKIT", "0")
	t.Chdir(t.TempDir())
	cmds := captureDryRun(t)

	_, err := runCLI(t, "build", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, cmds.String(), "DOCKER_BUILDKIT=0 docker build")
}

func TestPlanWithoutImage(t *testing.T) {
	setShipEnv(t)
	t.Setenv("SHIPIT_IMAGE", "")

	out, err := runCLI(t, "plan")

	require.NoError(t, err)
	assert.Contains(t, out, "No build plan")
}

func TestLoginDryRun(t *testing.T) {
	setShipEnv(t)

	_, err := runCLI(t, "login", "--dry-run")

	assert.NoError(t, err)
}

func TestLoginWithoutRegistry(t *testing.T) {
	setShipEnv(t)
	t.Setenv("SHIPIT_IMAGE", "app") // no registry host to derive
	t.Setenv("SHIPIT_REGISTRY", "")
	t.Setenv("CI_REGISTRY", "")

	_, err := runCLI(t, "login", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry is empty")
}
