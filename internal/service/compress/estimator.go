package compress

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/onecrypto/cryptobin-packager/internal/logger"
)

// ErrToolUnavailable signals that no compression measurement is possible
// on this platform. It is always a soft failure: callers log and move on.
var ErrToolUnavailable = errors.New("compression tool unavailable")

// Measurement is the compressibility of a single file.
type Measurement struct {
	// Name is the base name of the measured file.
	Name string
	// Path is the measured file's path.
	Path string
	// OriginalSize is the file size in bytes before compression.
	OriginalSize int64
	// CompressedSize is the size of the encoded output in bytes.
	CompressedSize int64
	// Ratio is CompressedSize / OriginalSize, or 0 for empty files.
	Ratio float64
}

// Runner invokes the external compression executable.
// It is an interface so tests can stub the subprocess.
type Runner interface {
	Run(ctx context.Context, exe string, args ...string) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, exe string, args ...string) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, exe string, args ...string) error {
	return f(ctx, exe, args...)
}

// execRunner runs the tool as a real subprocess and folds its combined
// output into the error on failure.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, exe string, args ...string) error {
	out, err := exec.CommandContext(ctx, exe, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", filepath.Base(exe), err, string(out))
	}

	return nil
}

// Estimator measures file compressibility with the UEFI LzmaCompress tool.
// Its output is purely advisory and never affects packaging.
type Estimator struct {
	workspaceRoot string
	locator       Locator
	runner        Runner
}

// Option customizes an Estimator.
type Option func(*Estimator)

// WithLocator overrides tool discovery.
func WithLocator(l Locator) Option {
	return func(e *Estimator) {
		e.locator = l
	}
}

// WithRunner overrides subprocess execution.
func WithRunner(r Runner) Option {
	return func(e *Estimator) {
		e.runner = r
	}
}

// NewEstimator creates an Estimator rooted at the workspace.
func NewEstimator(workspaceRoot string, opts ...Option) *Estimator {
	e := &Estimator{
		workspaceRoot: workspaceRoot,
		locator:       BaseToolsLocator{},
		runner:        execRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ToolPath returns the resolved compression executable, or false when the
// current platform has none.
func (e *Estimator) ToolPath() (string, bool) {
	return e.locator.Locate(runtime.GOOS, runtime.GOARCH, e.workspaceRoot)
}

// Measure compresses one file to a scratch output and reports sizes and
// ratio. Any failure is soft: the scratch file is removed on every path
// and ErrToolUnavailable (or the underlying I/O error) is returned.
func (e *Estimator) Measure(ctx context.Context, filePath string) (*Measurement, error) {
	exe, ok := e.ToolPath()
	if !ok {
		return nil, ErrToolUnavailable
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	scratch, err := os.CreateTemp("", "*.compressed")
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}

	scratchPath := scratch.Name()

	if err = scratch.Close(); err != nil {
		return nil, fmt.Errorf("close scratch file: %w", err)
	}

	// Unconditional cleanup, including failure paths.
	defer func() {
		_ = os.Remove(scratchPath)
	}()

	if err = e.runner.Run(ctx, exe, "-e", "-o", scratchPath, filePath); err != nil {
		logger.Warnf(ctx, "LzmaCompress failed for %s: %v", filePath, err)

		return nil, fmt.Errorf("%w: %s", ErrToolUnavailable, err)
	}

	compressed, err := os.Stat(scratchPath)
	if err != nil {
		return nil, fmt.Errorf("stat scratch output: %w", err)
	}

	originalSize := info.Size()

	var ratio float64
	if originalSize > 0 {
		ratio = float64(compressed.Size()) / float64(originalSize)
	}

	return &Measurement{
		Name:           filepath.Base(filePath),
		Path:           filePath,
		OriginalSize:   originalSize,
		CompressedSize: compressed.Size(),
		Ratio:          ratio,
	}, nil
}
