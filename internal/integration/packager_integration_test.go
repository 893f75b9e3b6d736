package integration

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
	"github.com/onecrypto/cryptobin-packager/internal/service/packager"
)

// chdir switches into dir for the duration of the test, mirroring
// testing.T.Chdir (unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

// TestPackager_EndToEnd drives the packager entry point over a populated
// workspace: settings file, protocol header, and a full build tree.
func TestPackager_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	chdir(t, dir)

	cfg := &config.Config{WorkspaceRoot: dir}
	require.NoError(t, config.Save(config.DefaultConfigFilename, cfg))

	// Protocol header drives the archive version.
	headerPath := cfg.ProtocolHeaderPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(headerPath), 0o755))
	require.NoError(t, os.WriteFile(headerPath, []byte(
		"#define ONE_CRYPTO_VERSION_MAJOR  1ULL\n#define ONE_CRYPTO_VERSION_MINOR  4ULL\n"), 0o644))

	// Materialize every layout source for both architectures.
	var total int

	for _, arch := range layout.SupportedArchitectures() {
		folders, err := layout.Resolve(arch, layout.TargetDebug, cfg.Toolchain)
		require.NoError(t, err)

		for _, folder := range folders {
			for _, entry := range folder.Entries {
				path := filepath.Join(cfg.BuildDir(), filepath.FromSlash(entry.Source))
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(entry.Name), 0o644))

				total++
			}
		}
	}

	// Run packager with timeout context.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := packager.Run(ctx, &packager.Options{
		ConfigPath: config.DefaultConfigFilename,
	})
	require.NoError(t, err)

	// The archive carries the header version and every resolved entry.
	archivePath := filepath.Join(cfg.BuildDir(), "Mu_CryptoBin_v1_4_DEBUG.zip")

	reader, err := zip.OpenReader(archivePath)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, reader.Close())
	}()

	require.Len(t, reader.File, total)

	// The marker was cleaned up after the run.
	_, err = os.Stat(filepath.Join(cfg.BuildDir(), packager.MarkerFilename))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestPackager_ListModeProducesNoArchive ensures listing resolves the
// layout without creating anything on disk.
func TestPackager_ListModeProducesNoArchive(t *testing.T) {
	dir := t.TempDir()

	chdir(t, dir)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := packager.Run(ctx, &packager.Options{
		Architectures: []string{"X64"},
		Target:        "RELEASE",
		ListOnly:      true,
	})
	require.NoError(t, err)

	// Listing must not create the build directory or an archive.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// TestPackager_EmptyWorkspaceFails expects the total-failure signal when
// nothing resolves.
func TestPackager_EmptyWorkspaceFails(t *testing.T) {
	dir := t.TempDir()

	chdir(t, dir)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := packager.Run(ctx, &packager.Options{})
	require.ErrorIs(t, err, packager.ErrNoFilesPackaged)
}
