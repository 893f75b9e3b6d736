package packager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/onecrypto/cryptobin-packager/internal/logger"
)

const (
	// MarkerFilename marks that a packager run is in progress
	// to avoid two instances writing the same archive.
	MarkerFilename = "cryptobin-packager-marker.bin"

	// markerLifetime is the period after which a stale marker is ignored.
	markerLifetime = 30 * time.Second

	// basePackagerExecutable is the packager binary name without extension.
	basePackagerExecutable = "cryptobin-packager"
)

// markerPath returns the marker location inside the build directory.
func markerPath(buildDir string) string {
	return filepath.Join(buildDir, MarkerFilename)
}

// IsPackagerRunningNow checks presence of a packaging marker and attempts
// recovery if it looks stale.
func IsPackagerRunningNow(ctx context.Context, buildDir string) bool {
	path := markerPath(buildDir)

	fileInfo, err := os.Stat(path)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The packaging marker is too old, attempting cleanup")

		if anotherPackagerAlive() {
			return true
		}

		if err = os.Remove(path); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		return false
	}

	logger.Infof(ctx, "Unable to read packaging marker: %v", err)

	return false
}

// writeMarker records this process as the active packager.
func writeMarker(buildDir string) error {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return err
	}

	pid := strconv.Itoa(os.Getpid())

	return os.WriteFile(markerPath(buildDir), []byte(pid), 0o600)
}

// removeMarker deletes the marker; missing markers are fine.
func removeMarker(buildDir string) {
	_ = os.Remove(markerPath(buildDir))
}

// anotherPackagerAlive reports whether a different packager process is running.
func anotherPackagerAlive() bool {
	processList, err := ps.Processes()
	if err != nil {
		// Can't tell; assume the marker owner is alive.
		return true
	}

	thisProcessID := os.Getpid()
	executable := packagerExecutable()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == executable {
			return true
		}
	}

	return false
}

// packagerExecutable returns the platform-specific packager binary name.
func packagerExecutable() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return basePackagerExecutable + ".exe"
	}

	return basePackagerExecutable
}
