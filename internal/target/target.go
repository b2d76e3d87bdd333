// Package target models the Django version a formatting run targets.
//
// Version-gated fixers compare their floor against the selected target; the
// zero Version means no target was selected and every fixer stays off.
package target

import (
	"fmt"
	"strings"
)

// Version is a Django (major, minor) release pair.
type Version struct {
	Major int
	Minor int
}

// None is the absent target: all version-gated fixers are disabled.
var None = Version{}

// Known is the finite set of accepted --target-version values, ascending.
// Versions without fixers are accepted so pinning a project to, say, 5.0
// keeps working as fixers for newer releases are added.
var Known = []Version{
	{2, 1},
	{2, 2},
	{3, 0},
	{3, 1},
	{3, 2},
	{4, 1},
	{4, 2},
	{5, 0},
	{5, 1},
}

// Parse converts a "major.minor" string into a Version. Only members of
// Known are accepted; anything else is a usage error.
func Parse(s string) (Version, error) {
	var v Version
	if _, err := fmt.Sscanf(s, "%d.%d", &v.Major, &v.Minor); err != nil || s != v.String() {
		return None, fmt.Errorf("invalid target version %q: allowed versions are %s", s, KnownList())
	}
	for _, known := range Known {
		if v == known {
			return v, nil
		}
	}
	return None, fmt.Errorf("invalid target version %q: allowed versions are %s", s, KnownList())
}

// String returns the "major.minor" form of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsNone reports whether no target was selected.
func (v Version) IsNone() bool {
	return v == None
}

// AtLeast reports whether v meets the given fixer floor. The absent target
// never meets any floor.
func (v Version) AtLeast(floor Version) bool {
	if v.IsNone() {
		return false
	}
	if v.Major != floor.Major {
		return v.Major > floor.Major
	}
	return v.Minor >= floor.Minor
}

// KnownList renders the accepted versions as a comma-separated list for
// usage and error messages.
func KnownList() string {
	parts := make([]string, len(Known))
	for i, v := range Known {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
