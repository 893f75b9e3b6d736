package builder

import (
	"context"
	"strings"

	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
	"github.com/onecrypto/cryptobin-packager/internal/logger"
	"github.com/onecrypto/cryptobin-packager/internal/service/compress"
	"github.com/onecrypto/cryptobin-packager/internal/service/packager"
)

// PreBuild runs before the firmware build: it seeds the platform
// environment values consumed by the orchestrator.
func (p *Platform) PreBuild(ctx context.Context) error {
	ctx = logger.WithName(ctx, "platform-build")

	logger.Debug(ctx, "Setting platform environment")
	p.SetPlatformEnv(ctx)

	return nil
}

// PostBuild runs after a successful firmware build: it packages all built
// architectures into a single archive and logs per-architecture size and
// compressibility details. Packaging failure is reported, never escalated;
// the build itself already succeeded.
func (p *Platform) PostBuild(ctx context.Context) error {
	ctx = logger.WithName(ctx, "platform-build")

	logger.Info(ctx, strings.Repeat("=", 80))
	logger.Info(ctx, "Running post-build packaging...")

	archNames := make([]string, 0, len(p.architectures))
	for _, arch := range p.architectures {
		archNames = append(archNames, string(arch))
	}

	toolchain := p.env.GetValue("TOOL_CHAIN_TAG", p.cfg.Toolchain)

	logger.Infof(ctx, "Packaging %s for %s %s...", productName, strings.Join(archNames, ", "), p.target)

	result, err := packager.Create(ctx, &packager.Params{
		Config:        p.cfg,
		Architectures: archNames,
		Target:        p.target,
		Toolchain:     toolchain,
	})
	if err != nil {
		logger.Errorf(ctx, "Packaging failed for %s: %v", p.target, err)
		logger.Info(ctx, strings.Repeat("=", 80))

		return nil
	}

	estimator := compress.NewEstimator(p.cfg.WorkspaceRoot)

	for _, arch := range p.architectures {
		p.logArchitectureDetails(ctx, estimator, result, arch)
	}

	logger.Info(ctx, strings.Repeat("-", 60))
	logger.Infof(ctx, "Total uncompressed: %d bytes (%.1f KB)",
		result.TotalUncompressed, float64(result.TotalUncompressed)/1024)
	logger.Infof(ctx, "Compressed (zip): %d bytes (%.1f KB)",
		result.CompressedSize, float64(result.CompressedSize)/1024)
	logger.Infof(ctx, "SHA256: %s", result.SHA256)
	logger.Infof(ctx, "Package created: %s", result.ArchivePath)
	logger.Info(ctx, strings.Repeat("=", 80))

	return nil
}

// logArchitectureDetails logs EFI sizes for one architecture and runs the
// compression estimator over its size-critical binaries.
func (p *Platform) logArchitectureDetails(
	ctx context.Context,
	estimator *compress.Estimator,
	result *packager.Result,
	arch layout.Architecture,
) {
	logger.Info(ctx, strings.Repeat("-", 60))
	logger.Infof(ctx, "[%s/%s] %s EFI sizes (size-critical components):", p.target, arch, layout.FolderBin)

	var binFiles []string

	for _, record := range result.Files {
		if record.Arch != string(arch) || record.Folder != layout.FolderBin {
			continue
		}

		if !strings.HasSuffix(record.Name, ".efi") {
			continue
		}

		logger.Infof(ctx, "  %s: %d bytes (%.1f KB)", record.Name, record.Size, float64(record.Size)/1024)
		binFiles = append(binFiles, record.SourcePath)
	}

	if len(binFiles) > 0 {
		report := estimator.Analyze(ctx, binFiles)
		if report.ToolAvailable {
			logger.Infof(ctx, "[%s/%s] %s UEFI compressed sizes:", p.target, arch, layout.FolderBin)

			for _, m := range report.Files {
				logger.Infof(ctx, "  %s: %d bytes (%.1f KB) [%.1f%%]",
					m.Name, m.CompressedSize, float64(m.CompressedSize)/1024, m.Ratio*100)
			}
		}
	}

	logger.Infof(ctx, "[%s/%s] %s EFI sizes:", p.target, arch, layout.FolderLoaders)

	for _, record := range result.Files {
		if record.Arch != string(arch) || record.Folder != layout.FolderLoaders {
			continue
		}

		if !strings.HasSuffix(record.Name, ".efi") {
			continue
		}

		logger.Infof(ctx, "  %s: %d bytes (%.1f KB)", record.Name, record.Size, float64(record.Size)/1024)
	}
}
