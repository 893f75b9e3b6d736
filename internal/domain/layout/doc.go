// Package layout maps build parameters (architecture, target, toolchain)
// to the concrete set of files that make up a cryptobin package.
//
// The per-architecture module tables are static domain data reproduced
// from the firmware package definition: each module contributes its EFI
// binary and depex sidecar from the build output tree plus its integration
// descriptor from the source tree. Resolution is a pure template
// substitution with no filesystem access.
package layout
