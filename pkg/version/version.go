// Package version reports the build version of albayan.
package version

import "runtime/debug"

// Set via -ldflags "-X github.com/mannit-co/albayan/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // ldflags target
var (
	version = ""
	commit  = ""
)

const develVersion = "dev"

// GetVersion returns the linked version, the module version from build info,
// or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return develVersion
}

// GetCommit returns the linked commit hash, or "" when unknown.
func GetCommit() string {
	return commit
}

// String returns the version with the short commit appended when known,
// e.g. "v1.2.3 (abc1234)".
func String() string {
	c := GetCommit()
	if c == "" {
		return GetVersion()
	}
	if len(c) > shortCommitLen {
		c = c[:shortCommitLen]
	}
	return GetVersion() + " (" + c + ")"
}

const shortCommitLen = 7
