package markdown

import (
	"path/filepath"
	"regexp"
	"strings"
)

var versionSegment = regexp.MustCompile(`^v?\d+(?:\.\d+)*$`)

// DetectVersion infers the documentation version from a file path. The first
// path segment shaped like a version directory wins ("content/v0.5.0/..." or
// "releases/0.5.0/..."); otherwise a versioned file stem ("0.5.0.md") is used.
// An empty string is returned when the path carries no version information.
func DetectVersion(path string) string {
	path = filepath.ToSlash(path)

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		// The file name is handled below so extensions do not defeat the match.
		if i == len(segments)-1 {
			break
		}
		if versionSegment.MatchString(segment) {
			return NormalizeVersion(segment)
		}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if versionSegment.MatchString(stem) {
		return NormalizeVersion(stem)
	}

	return ""
}

// NormalizeVersion strips the optional "v" prefix so "v0.5.0" and "0.5.0"
// address the same release.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if versionSegment.MatchString(version) {
		return strings.TrimPrefix(version, "v")
	}
	return version
}

// IsVersion reports whether the supplied string is a bare version identifier.
func IsVersion(candidate string) bool {
	return versionSegment.MatchString(strings.TrimSpace(candidate))
}
