package packager

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
	"github.com/onecrypto/cryptobin-packager/internal/logger"
	"github.com/onecrypto/cryptobin-packager/internal/protocol"
)

// OutputPrefix is the fixed prefix of generated archive names.
const OutputPrefix = "Mu_CryptoBin"

var (
	// ErrNoFilesPackaged signals that zero files were resolved across all
	// requested architectures; no archive is left on storage in that case.
	ErrNoFilesPackaged = errors.New("no files were added to the package")

	// errPackagerRunning indicates another packager instance holds the marker.
	errPackagerRunning = errors.New("the packager is running now")
)

// Params are the fully resolved inputs for one packaging invocation.
type Params struct {
	// Config holds workspace paths and the toolchain default.
	Config *config.Config
	// Architectures lists requested architectures; empty means all supported.
	Architectures []string
	// Target is the build target the artifacts were built for.
	Target layout.Target
	// Toolchain is the toolchain tag used to resolve build paths.
	Toolchain string
	// Version is the package version; detected from the protocol header when empty.
	Version string
	// OutputName overrides the archive name (without extension).
	OutputName string
}

// architectures returns the requested architecture strings,
// defaulting to all supported ones.
func (p *Params) architectures() []string {
	if len(p.Architectures) > 0 {
		return p.Architectures
	}

	supported := layout.SupportedArchitectures()

	out := make([]string, 0, len(supported))
	for _, arch := range supported {
		out = append(out, string(arch))
	}

	return out
}

// outputName synthesizes the archive name when none is supplied:
// the fixed prefix, the version with separators normalized to
// underscores, and the build target.
func (p *Params) outputName(version string) string {
	if p.OutputName != "" {
		return p.OutputName
	}

	versionPart := "v" + strings.ReplaceAll(version, ".", "_")

	return fmt.Sprintf("%s_%s_%s", OutputPrefix, versionPart, p.Target)
}

// Create packages the resolved layout into a zip archive and returns a
// summary. Missing source files and unsupported architectures are
// non-fatal; the only failure is zero files added, in which case the
// partial archive is removed and ErrNoFilesPackaged returned.
func Create(ctx context.Context, params *Params) (*Result, error) {
	version := params.Version
	if version == "" {
		version = protocol.DetectVersion(ctx, params.Config.ProtocolHeaderPath())
	}

	buildDir := params.Config.BuildDir()
	archivePath := filepath.Join(buildDir, params.outputName(version)+".zip")

	logger.InfoKV(ctx, "Creating package",
		"archive", archivePath,
		"architectures", strings.Join(params.architectures(), ", "),
		"target", params.Target,
		"toolchain", params.Toolchain,
		"version", version)

	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return nil, fmt.Errorf("create build directory: %w", err)
	}

	result := &Result{
		ArchivePath: archivePath,
		FolderSizes: make(map[string]int64),
	}

	if err := writeArchive(ctx, params, result); err != nil {
		return nil, err
	}

	if result.AddedCount == 0 {
		logger.Error(ctx, "No files were added to the package")

		// A package with no content is not a package.
		_ = os.Remove(archivePath)

		return nil, ErrNoFilesPackaged
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	result.CompressedSize = info.Size()

	if result.SHA256, err = hashArchive(archivePath); err != nil {
		return nil, fmt.Errorf("hash archive: %w", err)
	}

	logSummary(ctx, result)

	return result, nil
}

// writeArchive walks the resolved layouts of all requested architectures
// and streams present files into the zip archive.
func writeArchive(ctx context.Context, params *Params, result *Result) error {
	out, err := os.Create(result.ArchivePath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	// Close tracked explicitly; zip central directory is written on close.
	zw := zip.NewWriter(out)

	for _, requested := range params.architectures() {
		arch, archErr := layout.ParseArchitecture(requested)
		if archErr != nil {
			logger.Warnf(ctx, "Skipping unsupported architecture: %s", requested)
			continue
		}

		folders, resolveErr := layout.Resolve(arch, params.Target, params.Toolchain)
		if resolveErr != nil {
			logger.Warnf(ctx, "Skipping architecture %s: %v", arch, resolveErr)
			continue
		}

		addArchitecture(ctx, zw, params, arch, folders, result)
	}

	if err = zw.Close(); err != nil {
		_ = out.Close()

		return fmt.Errorf("finalize archive: %w", err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// addArchitecture adds every present file of one architecture's layout,
// recording sizes, records, and missing sources.
func addArchitecture(
	ctx context.Context,
	zw *zip.Writer,
	params *Params,
	arch layout.Architecture,
	folders []layout.Folder,
	result *Result,
) {
	buildDir := params.Config.BuildDir()

	for _, folder := range folders {
		logger.Infof(ctx, "Processing folder: %s/%s/%s/", params.Target, arch, folder.Name)

		for _, entry := range folder.Entries {
			// Parent-marker sources climb out of the build base into the
			// source tree; Join cleans the relative segments either way.
			sourcePath := filepath.Join(buildDir, filepath.FromSlash(entry.Source))
			entryPath := fmt.Sprintf("%s/%s/%s/%s", params.Target, arch, folder.Name, entry.Name)

			info, err := os.Stat(sourcePath)
			if err != nil {
				logger.Warnf(ctx, "  - %s (NOT FOUND: %s)", entry.Name, sourcePath)
				result.Missing = append(result.Missing, sourcePath)
				result.MissingCount++

				continue
			}

			if err = addArchiveEntry(zw, entryPath, sourcePath); err != nil {
				logger.Warnf(ctx, "  - %s (NOT ADDED: %v)", entry.Name, err)
				result.Missing = append(result.Missing, sourcePath)
				result.MissingCount++

				continue
			}

			size := info.Size()

			logger.Infof(ctx, "  + %s (%s)", entry.Name, formatEntrySize(entry.Name, size))

			result.FolderSizes[folder.Name] += size
			result.TotalUncompressed += size
			result.AddedCount++
			result.Files = append(result.Files, FileRecord{
				Arch:        string(arch),
				Folder:      folder.Name,
				Name:        entry.Name,
				SourcePath:  sourcePath,
				ArchivePath: entryPath,
				Size:        size,
			})
		}
	}
}

// logSummary writes the operator-facing package summary.
func logSummary(ctx context.Context, result *Result) {
	logger.Info(ctx, "Package summary:")

	for _, folder := range orderedFolderNames(result) {
		size := result.FolderSizes[folder]
		logger.Infof(ctx, "  %s: %d bytes (%.1f KB)", folder, size, float64(size)/1024)
	}

	logger.Infof(ctx, "  Total uncompressed: %d bytes (%.1f KB)",
		result.TotalUncompressed, float64(result.TotalUncompressed)/1024)
	logger.Infof(ctx, "  Total files added: %d", result.AddedCount)
	logger.Infof(ctx, "  Missing files: %d", result.MissingCount)

	if len(result.Missing) > 0 {
		logger.Warn(ctx, "Some files were not found, package may be incomplete:")

		for _, path := range result.Missing {
			logger.Warnf(ctx, "  - %s", path)
		}
	}

	logger.Infof(ctx, "Package created: %s", result.ArchivePath)
	logger.Infof(ctx, "  Compressed size: %d bytes (%.1f KB)",
		result.CompressedSize, float64(result.CompressedSize)/1024)
	logger.Infof(ctx, "  SHA256: %s", result.SHA256)
}

// orderedFolderNames returns folder names in first-seen archive order.
func orderedFolderNames(result *Result) []string {
	seen := make(map[string]struct{}, len(result.FolderSizes))

	var out []string

	for _, record := range result.Files {
		if _, ok := seen[record.Folder]; ok {
			continue
		}

		seen[record.Folder] = struct{}{}
		out = append(out, record.Folder)
	}

	return out
}

// formatEntrySize renders sizes with a KB hint for EFI binaries.
func formatEntrySize(name string, size int64) string {
	if strings.HasSuffix(name, ".efi") {
		return fmt.Sprintf("%d bytes (%.1f KB)", size, float64(size)/1024)
	}

	return fmt.Sprintf("%d bytes", size)
}

// ListLayout prints the resolved layout of every requested architecture
// without touching the filesystem.
func ListLayout(ctx context.Context, params *Params) {
	logger.Info(ctx, "Current package layout:")

	for _, requested := range params.architectures() {
		arch, err := layout.ParseArchitecture(requested)
		if err != nil {
			logger.Warnf(ctx, "Skipping unsupported architecture: %s", requested)
			continue
		}

		folders, err := layout.Resolve(arch, params.Target, params.Toolchain)
		if err != nil {
			logger.Warnf(ctx, "Skipping architecture %s: %v", arch, err)
			continue
		}

		for _, folder := range folders {
			logger.Infof(ctx, "%s/%s/%s/", params.Target, arch, folder.Name)

			for _, entry := range folder.Entries {
				logger.Infof(ctx, "  %s", entry.Name)
				logger.Infof(ctx, "    <- %s", filepath.Join(params.Config.BuildBase, filepath.FromSlash(entry.Source)))
			}
		}
	}
}
