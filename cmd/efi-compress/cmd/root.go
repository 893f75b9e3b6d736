package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecrypto/cryptobin-packager/internal/logger"
	"github.com/onecrypto/cryptobin-packager/internal/service/compress"
	"github.com/onecrypto/cryptobin-packager/internal/version"
)

var (
	// workspaceRoot is the firmware workspace holding the BaseTools binaries.
	workspaceRoot string

	// rootCmd analyzes UEFI compressibility of the given EFI files.
	rootCmd = &cobra.Command{
		Use:   "efi-compress [files...]",
		Short: "Analyze UEFI LzmaCompress compressibility of EFI files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			ctx = logger.WithName(ctx, "efi-compress")

			estimator := compress.NewEstimator(workspaceRoot)
			estimator.Analyze(ctx, args).Print(ctx)

			// A missing tool is advisory, not an error.
			return nil
		},
	}
)

// Execute runs the efi-compress CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&workspaceRoot, "workspace", "w", ".", "workspace root directory")
}
