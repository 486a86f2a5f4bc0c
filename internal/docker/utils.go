package docker

import (
	"regexp"
	"strings"
)

// ---- Tag normalization / validation ----

// Docker's tag grammar: a word character first, then up to 127 of
// [a-zA-Z0-9._-]. Uppercase is valid and must survive untouched.
var tagAllowed = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9._-]{0,127}$`)

var tagReplacer = strings.NewReplacer("/", "-", " ", "-")

// CleanTag lowercases and normalizes a candidate tag that ValidTag has
// already rejected: slashes and spaces become hyphens, runs of hyphens
// collapse, and the result is capped at docker's 128-char max. Callers
// must surface the rewrite to the user; a valid tag is never cleaned.
func CleanTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = tagReplacer.Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if len(s) > 128 {
		s = s[:128]
	}
	return s
}

// ValidTag reports whether the tag is acceptable to the docker CLI.
func ValidTag(tag string) bool {
	return tagAllowed.MatchString(tag)
}

// dedupRefs preserves insertion order.
func dedupRefs(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ---- Secret redaction for echoed build commands ----

func suspiciousKey(k string) bool {
	k = strings.ToUpper(k)
	return strings.Contains(k, "PASSWORD") ||
		strings.Contains(k, "TOKEN") ||
		strings.Contains(k, "SECRET") ||
		k == "DOCKER_AUTH_CONFIG" ||
		k == "AWS_SECRET_ACCESS_KEY" ||
		k == "AWS_SESSION_TOKEN" ||
		k == "GOOGLE_APPLICATION_CREDENTIALS" ||
		k == "KUBECONFIG"
}

// redactBuildArgs masks values of secret-looking --build-arg pairs in a
// copy of the argument list, for safe echoing.
func redactBuildArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] != "--build-arg" {
			continue
		}
		kv := out[i+1]
		if eq := strings.IndexByte(kv, '='); eq > 0 {
			key, val := kv[:eq], kv[eq+1:]
			if suspiciousKey(key) && val != "" {
				out[i+1] = key + "=REDACTED"
			}
		}
	}
	return out
}
