package selfupdate

import (
	"strings"

	"golang.org/x/mod/semver"
)

// newerVersion reports whether latest is strictly newer than current.
// Tags that do not parse as semver fall back to plain inequality.
func newerVersion(latest, current string) bool {
	l, c := canonical(latest), canonical(current)
	if semver.IsValid(l) && semver.IsValid(c) {
		return semver.Compare(l, c) > 0
	}
	return latest != current
}

func canonical(v string) string {
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
