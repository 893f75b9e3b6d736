// Package packager assembles firmware build outputs into a versioned,
// reproducible zip archive.
//
// It resolves the per-architecture file layout, streams every present
// source file into the archive under <target>/<arch>/<folder>/<name>,
// records missing sources without failing, and digests the finished
// archive with SHA-256. Packaging fails only when zero files resolve
// across all requested architectures, in which case the partial archive
// is removed.
package packager
