package executil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{
			name: "plain args untouched",
			in:   []string{"build", "-t", "repo/app:dev"},
			want: "build -t repo/app:dev",
		},
		{
			name: "spaces quoted",
			in:   []string{"-f", "my Dockerfile"},
			want: "-f 'my Dockerfile'",
		},
		{
			name: "empty arg quoted",
			in:   []string{""},
			want: "''",
		},
		{
			name: "shell metacharacters quoted",
			in:   []string{"a$b", "c;d"},
			want: "'a$b' 'c;d'",
		},
		{
			name: "embedded single quote escaped",
			in:   []string{"it's"},
			want: `'it'\''s'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteArgs(tt.in))
		})
	}
}

func TestFormatEnv(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
		want string
	}{
		{
			name: "nil env",
			in:   nil,
			want: "",
		},
		{
			name: "single entry",
			in:   map[string]string{"DOCKER_BUILDKIT": "1"},
			want: "DOCKER_BUILDKIT=1",
		},
		{
			name: "keys sorted",
			in:   map[string]string{"B": "2", "A": "1"},
			want: "A=1 B=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEnv(tt.in))
		})
	}
}

func captureDryRun(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := DryRunOutput
	DryRunOutput = &buf
	t.Cleanup(func() { DryRunOutput = old })
	return &buf
}

func TestDryRunEchoIncludesExtraEnv(t *testing.T) {
	buf := captureDryRun(t)

	require.NoError(t, DryRunWithEnv(map[string]string{"DOCKER_BUILDKIT": "1"}, "docker", "build", "."))

	assert.Equal(t, "[DRY RUN] DOCKER_BUILDKIT=1 docker build .\n", buf.String())
}

func TestDryRunEchoWithoutEnv(t *testing.T) {
	buf := captureDryRun(t)

	require.NoError(t, DryRunCMD("docker", "push", "app:1.0.0"))

	assert.Equal(t, "[DRY RUN] docker push app:1.0.0\n", buf.String())
}
