package packager

import (
	"context"
	"fmt"

	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
	"github.com/onecrypto/cryptobin-packager/internal/logger"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to packaging settings.
	ConfigPath string
	// OutputName overrides the archive name (without the .zip extension).
	OutputName string
	// Version overrides the version detected from the protocol header.
	Version string
	// Architectures lists the requested architectures; empty means all supported.
	Architectures []string
	// Target is the build target (DEBUG or RELEASE).
	Target string
	// Toolchain overrides the toolchain tag from settings.
	Toolchain string
	// ListOnly prints the resolved layout without producing an archive.
	ListOnly bool
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "cryptobin-packager")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	target := layout.TargetDebug
	if opts.Target != "" {
		if target, err = layout.ParseTarget(opts.Target); err != nil {
			return err
		}
	}

	toolchain := cfg.Toolchain
	if opts.Toolchain != "" {
		toolchain = opts.Toolchain
	}

	params := &Params{
		Config:        cfg,
		Architectures: opts.Architectures,
		Target:        target,
		Toolchain:     toolchain,
		Version:       opts.Version,
		OutputName:    opts.OutputName,
	}

	if opts.ListOnly {
		ListLayout(ctx, params)

		return nil
	}

	if IsPackagerRunningNow(ctx, cfg.BuildDir()) {
		return errPackagerRunning
	}

	if err = writeMarker(cfg.BuildDir()); err != nil {
		return fmt.Errorf("write packager marker: %w", err)
	}

	// Best-effort cleanup.
	defer removeMarker(cfg.BuildDir())

	result, err := Create(ctx, params)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Packager completed successfully",
		"archive", result.ArchivePath,
		"files_added", result.AddedCount,
		"files_missing", result.MissingCount,
		"sha256", result.SHA256)

	return nil
}
