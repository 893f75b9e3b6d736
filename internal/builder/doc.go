// Package builder adapts the cryptobin packaging step to a build
// orchestrator's platform contract: a settings accessor surface, a named
// environment value store, and pre/post build phases. The post-build
// phase packages the built artifacts and reports their sizes and UEFI
// compressibility.
package builder
