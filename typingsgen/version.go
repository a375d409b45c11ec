package typingsgen

import "regexp"

var versionPattern = regexp.MustCompile(`v(\d+)(?:\.(\d+))?`)

// MajorMinor derives the "major.minor" string for the typings banner from an
// API version string: "v1" -> "1.0", "v1.1" -> "1.1", "directory_v1" ->
// "1.0". Versions carrying no recognizable marker map to "0.0".
func MajorMinor(version string) string {
	m := versionPattern.FindStringSubmatch(version)
	if m == nil {
		return "0.0"
	}
	minor := m[2]
	if minor == "" {
		minor = "0"
	}
	return m[1] + "." + minor
}
