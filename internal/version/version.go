// Package version holds build version information.
package version

// VersionTag is the current release tag. Overridden at build time via
// -ldflags "-X github.com/bonnetkb/bonnet/internal/version.VersionTag=...".
var VersionTag = "v0.1.0-dev"
