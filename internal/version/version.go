// Package version implements the minimal semantic-version handling needed
// for release tagging: parsing X.Y.Z, bumping a component, and forecasting
// the next tag from the current one.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VersionType represents a semantic version bump level.
type VersionType string

const (
	Patch VersionType = "Patch"
	Minor VersionType = "Minor"
	Major VersionType = "Major"
)

func (vt VersionType) String() string {
	return string(vt)
}

// ParseVersionType converts a string like "major" into a VersionType.
func ParseVersionType(s string) (VersionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	default:
		return "", errors.Errorf("invalid bump type: %q. Must be one of: major, minor, patch", s)
	}
}

type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse parses a version string in the format "X.Y.Z".
func Parse(versionStr string) (Version, error) {
	parts := strings.Split(versionStr, ".")
	if len(parts) != 3 {
		return Version{}, errors.Errorf("invalid version format: expected X.Y.Z, got %s", versionStr)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, errors.Wrap(err, "invalid major version")
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, errors.Wrap(err, "invalid minor version")
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return Version{}, errors.Wrap(err, "invalid patch version")
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// Increment returns a new Version bumped at the given level.
func (v Version) Increment(bump VersionType) Version {
	switch bump {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

func (v Version) LessThan(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// ForecastNext takes the current tag (e.g. "v1.2.3" or "1.2.3") and the
// desired bump, and returns the next version preserving any "v" prefix.
// An empty current tag is treated as 0.0.0.
func ForecastNext(currentTag string, bump VersionType) (string, error) {
	currentTag = strings.TrimSpace(currentTag)

	hasV := strings.HasPrefix(currentTag, "v")
	core := strings.TrimPrefix(currentTag, "v")

	var base Version
	if core != "" {
		v, err := Parse(core)
		if err != nil {
			return "", errors.Wrapf(err, "unable to parse current tag %q", currentTag)
		}
		base = v
	}

	next := base.Increment(bump).String()
	if hasV {
		return "v" + next, nil
	}
	return next, nil
}
