// Package executil runs external commands with inherited stdio and a
// dry-run mode that prints the command line instead of executing it.
package executil

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DryRunOutput receives the "[DRY RUN] ..." echo lines. Tests swap it
// out to assert the exact command sequence a flow would run.
var DryRunOutput io.Writer = os.Stdout

// RunCMD executes the given command with inherited stdout/stderr.
func RunCMD(name string, args ...string) error {
	return runCore(context.Background(), nil, false, name, args...)
}

// RunCtx executes with a context (for timeouts/cancellation).
func RunCtx(ctx context.Context, name string, args ...string) error {
	return runCore(ctx, nil, false, name, args...)
}

// RunWithEnv executes with additional environment variables.
func RunWithEnv(extraEnv map[string]string, name string, args ...string) error {
	return runCore(context.Background(), extraEnv, false, name, args...)
}

// RunInteractive executes with stdin attached as well, for commands that
// prompt the user (registry login).
func RunInteractive(name string, args ...string) error {
	fullCmd := name + " " + QuoteArgs(args)
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Info().Str("cmd", fullCmd).Msg("running interactively")
	if err := cmd.Run(); err != nil {
		return wrapRunErr(err, fullCmd)
	}
	return nil
}

// DryRunCMD logs the command that would be run without executing.
func DryRunCMD(name string, args ...string) error {
	return runCore(context.Background(), nil, true, name, args...)
}

// DryRunWithEnv logs a dry-run with extra env.
func DryRunWithEnv(extraEnv map[string]string, name string, args ...string) error {
	return runCore(context.Background(), extraEnv, true, name, args...)
}

// RunWithTimeout runs the command with a deadline.
func RunWithTimeout(timeout time.Duration, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return runCore(ctx, nil, false, name, args...)
}

func runCore(ctx context.Context, extraEnv map[string]string, dry bool, name string, args ...string) error {
	fullCmd := commandLine(extraEnv, name, args)

	if dry {
		fmt.Fprintf(DryRunOutput, "[DRY RUN] %s\n", fullCmd)
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for k, v := range extraEnv {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	log.Info().Str("cmd", fullCmd).Msg("running")
	if err := cmd.Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.Errorf("command canceled: %s", fullCmd)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.Errorf("command timed out: %s", fullCmd)
		}
		return wrapRunErr(err, fullCmd)
	}
	return nil
}

func wrapRunErr(err error, fullCmd string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			return errors.Wrapf(err, "command failed (exit=%d): %s", status.ExitStatus(), fullCmd)
		}
	}
	return errors.Wrapf(err, "failed to run command: %s", fullCmd)
}

// commandLine renders the full invocation as it would be typed in a
// shell, extra environment included, so echoed lines show the toggles
// the command actually runs with.
func commandLine(extraEnv map[string]string, name string, args []string) string {
	line := name + " " + QuoteArgs(args)
	if env := FormatEnv(extraEnv); env != "" {
		line = env + " " + line
	}
	return line
}

// FormatEnv renders extra environment variables in shell k=v form, in
// deterministic key order.
func FormatEnv(env map[string]string) string {
	if len(env) == 0 {
		return ""
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + env[k]
	}
	return strings.Join(parts, " ")
}

// QuoteArgs returns a printable, shell-safe representation of args.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'`$\\*?[]{}()<>|&;") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
