// Package version exposes build metadata for the project.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds.
// Helper functions Short and Full render the version string for CLI output and logs.
//
// This is the version of the packaging tools themselves; the version of
// the firmware package being produced comes from the protocol header
// (see internal/protocol).
package version
