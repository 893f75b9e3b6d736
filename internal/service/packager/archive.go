package packager

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// fixedZipTime keeps archives byte-for-byte reproducible regardless of
// source file timestamps (1980-01-01 UTC, the zip epoch).
//
//nolint:gochecknoglobals // Immutable constant of the archive format.
var fixedZipTime = time.Unix(315532800, 0).UTC()

// hashBlockSize is the read block size used when digesting the archive.
const hashBlockSize = 4096

// addArchiveEntry streams one source file into the archive at entryPath.
func addArchiveEntry(zw *zip.Writer, entryPath, sourcePath string) error {
	src, err := os.Open(filepath.Clean(sourcePath))
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	// Best-effort cleanup; the file is read-only.
	defer func() {
		_ = src.Close()
	}()

	header := &zip.FileHeader{
		Name:     entryPath,
		Method:   zip.Deflate,
		Modified: fixedZipTime,
	}
	header.SetMode(0o644)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", entryPath, err)
	}

	if _, err = io.Copy(w, src); err != nil {
		return fmt.Errorf("write entry %s: %w", entryPath, err)
	}

	return nil
}

// hashArchive computes the SHA-256 digest of the finished archive,
// streaming it in fixed-size blocks.
func hashArchive(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	hasher := sha256.New()

	buf := make([]byte, hashBlockSize)
	if _, err = io.CopyBuffer(hasher, f, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
