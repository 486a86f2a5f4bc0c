package config

import (
	"fmt"
	"io"
	"strings"
)

// WriteSummary emits a scannable report of the loaded configuration,
// sectioned the way it is consumed: image identity, build inputs, flags.
func (c Config) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, "Configuration")
	fmt.Fprintln(w, "-------------")

	fmt.Fprintln(w, "Image")
	fmt.Fprintf(w, "  Name       : %s\n", orNone(c.Image))
	fmt.Fprintf(w, "  Version    : %s\n", orNone(c.Version))
	if c.Image != "" {
		fmt.Fprintf(w, "  Ref        : %s\n", c.Ref())
	}
	fmt.Fprintf(w, "  Registry   : %s\n", orNone(c.Registry))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Build")
	fmt.Fprintf(w, "  Dockerfile : %s\n", c.Dockerfile)
	fmt.Fprintf(w, "  Context    : %s\n", c.ContextPath)
	if c.Target != "" {
		fmt.Fprintf(w, "  Target     : %s\n", c.Target)
	}
	fmt.Fprintf(w, "  BuildKit   : %v\n", c.BuildKit)
	fmt.Fprintf(w, "  Pull       : %v\n", c.Pull)
	fmt.Fprintf(w, "  NoCache    : %v\n", c.NoCache)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Flags")
	fmt.Fprintf(w, "  Dry Run    : %v\n", c.DryRun)
	fmt.Fprintf(w, "  Login User : %s\n", orNone(c.RegistryUser))
	fmt.Fprintf(w, "  Password   : %s\n", masked(c.RegistryPassword))
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<none>"
	}
	return s
}

func masked(s string) string {
	if s == "" {
		return "<none>"
	}
	return "[REDACTED]"
}
