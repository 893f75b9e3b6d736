package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
	"github.com/onecrypto/cryptobin-packager/internal/service/packager"
	"github.com/onecrypto/cryptobin-packager/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// outputName overrides the archive name, without the .zip extension.
	outputName string

	// packageVersion overrides the version detected from the protocol header.
	packageVersion string

	// architectures selects one or more architectures to package.
	architectures []string

	// target is the build target the artifacts were built for.
	target string

	// toolchain overrides the toolchain tag from settings.
	toolchain string

	// listOnly prints the resolved layout without producing an archive.
	listOnly bool

	// rootCmd represents the base command for packaging firmware build outputs.
	rootCmd = &cobra.Command{
		Use:   "cryptobin-packager",
		Short: "Package firmware build artifacts into a versioned zip archive",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packager.Options{
				ConfigPath:    configPath,
				OutputName:    outputName,
				Version:       packageVersion,
				Architectures: architectures,
				Target:        target,
				Toolchain:     toolchain,
				ListOnly:      listOnly,
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the cryptobin-packager CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&outputName, "output", "o", "", "output zip filename (without .zip extension)")
	rootCmd.Flags().StringVarP(&packageVersion, "version", "v", "",
		"version string (e.g. \"1.2\"); detected from the protocol header if not specified")
	rootCmd.Flags().StringArrayVarP(&architectures, "arch", "a", nil,
		"architecture to package, repeatable (default: all supported)")
	rootCmd.Flags().StringVarP(&target, "target", "t", string(layout.TargetDebug), "build target (DEBUG or RELEASE)")
	rootCmd.Flags().StringVar(&toolchain, "toolchain", "", "toolchain tag (default from settings)")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "list the package layout and exit")
}
