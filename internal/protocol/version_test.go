package protocol

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleHeader = `
/** @file OneCrypto protocol definitions. */

#define ONE_CRYPTO_VERSION_MAJOR  2ULL
#define ONE_CRYPTO_VERSION_MINOR  7ULL
`

// TestParseVersion extracts major and minor from well-formed declarations.
func TestParseVersion(t *testing.T) {
	t.Parallel()

	major, minor, ok := ParseVersion([]byte(sampleHeader))
	require.True(t, ok)
	require.Equal(t, 2, major)
	require.Equal(t, 7, minor)
}

// TestParseVersionRejectsPartialDeclarations requires both fields to be present.
func TestParseVersionRejectsPartialDeclarations(t *testing.T) {
	t.Parallel()

	_, _, ok := ParseVersion([]byte("#define ONE_CRYPTO_VERSION_MAJOR  2ULL"))
	require.False(t, ok)

	_, _, ok = ParseVersion([]byte("#define ONE_CRYPTO_VERSION_MAJOR  2"))
	require.False(t, ok)
}

// TestDetectVersion reads the header from disk.
func TestDetectVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "OneCrypto.h")
	require.NoError(t, os.WriteFile(path, []byte(sampleHeader), 0o600))

	require.Equal(t, "2.7", DetectVersion(context.Background(), path))
}

// TestDetectVersionDefaults ensures soft fallback on missing or malformed headers.
func TestDetectVersionDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	require.Equal(t, DefaultVersion, DetectVersion(ctx, filepath.Join(t.TempDir(), "missing.h")))

	path := filepath.Join(t.TempDir(), "OneCrypto.h")
	require.NoError(t, os.WriteFile(path, []byte("no declarations here"), 0o600))
	require.Equal(t, DefaultVersion, DetectVersion(ctx, path))
}
