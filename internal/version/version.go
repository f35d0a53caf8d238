// Package version wraps semver comparison for CLI version gates.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare compares two version strings using semver. Returns -1 if a < b,
// 0 if equal, 1 if a > b. A leading "v" is tolerated on either side.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parse(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// AtLeast reports whether current satisfies a minimum version
// requirement. Development builds ("dev", empty) satisfy everything so
// that local builds can always load the full tree.
func AtLeast(current, minimum string) (bool, error) {
	if current == "" || current == "dev" {
		return true, nil
	}
	cmp, err := Compare(current, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// parse strips a leading "v" and parses the version string.
func parse(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
