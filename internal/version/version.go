// Package version carries the build version, set with
// -ldflags "-X lamp/internal/version.Version=...".
package version

// Version of the lamp tools.
var Version = "dev"
