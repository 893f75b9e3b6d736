// Package protocol extracts the OneCrypto package version from the
// protocol header's preprocessor declarations. The header is treated as
// an opaque text artifact: absence or a pattern mismatch falls back to a
// fixed default version and is never an error.
package protocol
