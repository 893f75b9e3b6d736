package compress

import (
	"context"
	"errors"
	"os"

	"github.com/onecrypto/cryptobin-packager/internal/logger"
)

// Report aggregates compressibility measurements over a set of files.
type Report struct {
	// ToolAvailable is false when no compression tool exists for this platform.
	ToolAvailable bool
	// ToolPath is the executable used, when available.
	ToolPath string
	// Files holds one measurement per successfully measured file.
	Files []Measurement
	// TotalOriginal sums original sizes across measured files.
	TotalOriginal int64
	// TotalCompressed sums compressed sizes across measured files.
	TotalCompressed int64
	// OverallRatio is TotalCompressed / TotalOriginal, or 0 when nothing measured.
	OverallRatio float64
}

// Analyze measures every existing file in the list. Missing files are
// skipped; individual measurement failures are logged and skipped; an
// absent tool yields a report with ToolAvailable false.
func (e *Estimator) Analyze(ctx context.Context, files []string) *Report {
	report := new(Report)

	exe, ok := e.ToolPath()
	if !ok {
		logger.Warn(ctx, "LzmaCompress not available, compression analysis skipped")

		return report
	}

	report.ToolAvailable = true
	report.ToolPath = exe

	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		m, err := e.Measure(ctx, path)
		if errors.Is(err, ErrToolUnavailable) {
			continue
		} else if err != nil {
			logger.Warnf(ctx, "Compression measurement failed for %s: %v", path, err)
			continue
		}

		report.Files = append(report.Files, *m)
		report.TotalOriginal += m.OriginalSize
		report.TotalCompressed += m.CompressedSize
	}

	if report.TotalOriginal > 0 {
		report.OverallRatio = float64(report.TotalCompressed) / float64(report.TotalOriginal)
	}

	return report
}

// Print writes a formatted compression report to the operator log.
func (r *Report) Print(ctx context.Context) {
	if !r.ToolAvailable {
		logger.Warn(ctx, "Compression analysis not available (LzmaCompress not found)")

		return
	}

	logger.Info(ctx, "UEFI compression analysis (LzmaCompress):")
	logger.Infof(ctx, "%-40s %12s %12s %8s", "File", "Original", "Compressed", "Ratio")

	for _, m := range r.Files {
		name := m.Name
		if len(name) > 38 {
			name = "..." + name[len(name)-35:]
		}

		logger.Infof(ctx, "%-40s %9.1f KB %9.1f KB %6.1f%%",
			name,
			float64(m.OriginalSize)/1024,
			float64(m.CompressedSize)/1024,
			m.Ratio*100)
	}

	logger.Infof(ctx, "%-40s %9.1f KB %9.1f KB %6.1f%%",
		"TOTAL",
		float64(r.TotalOriginal)/1024,
		float64(r.TotalCompressed)/1024,
		r.OverallRatio*100)
}
