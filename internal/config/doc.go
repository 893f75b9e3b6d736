// Package config loads and persists packaging settings shared by the
// cryptobin command-line tools: the firmware workspace root, the build
// output directory, the default toolchain tag, and the location of the
// protocol header carrying the package version declarations.
package config
