package docker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "1.2.3", "1.2.3"},
		{"uppercase lowered", "RC1", "rc1"},
		{"slash to hyphen", "feature/login", "feature-login"},
		{"space to hyphen", "my tag", "my-tag"},
		{"hyphen runs collapsed", "a//b", "a-b"},
		{"surrounding whitespace", "  v1  ", "v1"},
		{"empty stays empty", "", ""},
		{"truncated at 128", strings.Repeat("a", 200), strings.Repeat("a", 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTag(tt.in))
		})
	}
}

func TestValidTag(t *testing.T) {
	assert.True(t, ValidTag("1.2.3"))
	assert.True(t, ValidTag("deadbeef"))
	assert.True(t, ValidTag("v1.2.3-rc.1"))
	// Docker accepts uppercase; these must pass through untouched.
	assert.True(t, ValidTag("V1.4.0"))
	assert.True(t, ValidTag("Has-Upper"))
	assert.False(t, ValidTag(""))
	assert.False(t, ValidTag("has space"))
	assert.False(t, ValidTag("sla/sh"))
	assert.False(t, ValidTag("-leading-hyphen"))
	assert.False(t, ValidTag(".leading-dot"))
	assert.False(t, ValidTag(strings.Repeat("a", 129)))
}

func TestDedupRefs(t *testing.T) {
	in := []string{"a:1", "b:2", "a:1", "c:3", "b:2"}
	assert.Equal(t, []string{"a:1", "b:2", "c:3"}, dedupRefs(in))
}

func TestRedactBuildArgs(t *testing.T) {
	in := []string{
		"build",
		"--build-arg", "CI_JOB_TOKEN=supersecret",
		"--build-arg", "APP_NAME=shipit",
		"--build-arg", "DB_PASSWORD=hunter2",
	}

	out := redactBuildArgs(in)

	assert.Contains(t, out, "CI_JOB_TOKEN=REDACTED")
	assert.Contains(t, out, "APP_NAME=shipit")
	assert.Contains(t, out, "DB_PASSWORD=REDACTED")
	// input is untouched
	assert.Contains(t, in, "CI_JOB_TOKEN=supersecret")
}
