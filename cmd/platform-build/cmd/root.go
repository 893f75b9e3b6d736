package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecrypto/cryptobin-packager/internal/builder"
	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
	"github.com/onecrypto/cryptobin-packager/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// architectures selects the architectures that were built.
	architectures []string

	// target is the build target (DEBUG or RELEASE).
	target string

	// toolchain is the toolchain tag the build used.
	toolchain string

	// rootCmd runs the platform build hook phases around a firmware build.
	rootCmd = &cobra.Command{
		Use:   "platform-build",
		Short: "Run the platform pre/post build hooks for the cryptobin package",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			platform := builder.NewPlatform(cfg)

			if err = platform.SetArchitectures(architectures); err != nil {
				return err
			}

			if err = platform.SetTarget(target); err != nil {
				return err
			}

			if err = platform.PreBuild(ctx); err != nil {
				return err
			}

			if toolchain != "" {
				platform.Env().SetValue(ctx, "TOOL_CHAIN_TAG", toolchain, "CLI args")
			}

			// The firmware build itself runs in the external orchestrator;
			// this tool replays the hook phases around its outputs.
			return platform.PostBuild(ctx)
		},
	}
)

// Execute runs the platform-build CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringArrayVarP(&architectures, "arch", "a", nil,
		"architecture that was built, repeatable (default: all supported)")
	rootCmd.Flags().StringVarP(&target, "target", "t", string(layout.TargetDebug), "build target (DEBUG or RELEASE)")
	rootCmd.Flags().StringVar(&toolchain, "toolchain", "", "toolchain tag used by the build")
}
