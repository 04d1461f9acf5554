package balrain

import (
	"golang.org/x/mod/semver"
)

var (
	// Version is set at build time with
	// -ldflags "-X github.com/yeseul01458-spec/BALRAIN.Version=...".
	Version = "0.1.0"
	// Prerelease is appended to Version when set.
	Prerelease = ""
)

// SemVer returns the canonical semantic version of balrain.
func SemVer() string {
	v := "v" + Version
	if Prerelease != "" {
		v += "-" + Prerelease
	}

	if !semver.IsValid(v) {
		return "v0.0.0-unknown"
	}

	return v
}
