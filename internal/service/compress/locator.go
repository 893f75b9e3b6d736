package compress

import (
	"os"
	"path/filepath"
)

// Locator resolves the platform-specific compression executable.
// It is an interface so tests can stub tool discovery without a real
// BaseTools checkout.
type Locator interface {
	// Locate returns the executable path for the given OS and CPU
	// architecture, or false when the combination is unsupported or the
	// tool is absent.
	Locate(goos, goarch, workspaceRoot string) (string, bool)
}

// baseToolsRelDir is where the prebuilt BaseTools binaries live inside
// the workspace.
//
//nolint:gochecknoglobals // Immutable path segments.
var baseToolsRelDir = []string{"MU_BASECORE", "BaseTools", "Bin", "Mu-Basetools_extdep"}

// BaseToolsLocator finds LzmaCompress under the workspace's BaseTools
// external dependency, keyed by OS and CPU architecture.
type BaseToolsLocator struct{}

// PlatformFolder maps (GOOS, GOARCH) to the BaseTools binary folder name.
// Pure function; unsupported combinations return false.
func PlatformFolder(goos, goarch string) (string, bool) {
	switch goos {
	case "windows":
		switch goarch {
		case "amd64":
			return "Windows-x86", true
		case "arm64":
			return "Windows-ARM-64", true
		}
	case "linux":
		switch goarch {
		case "amd64":
			return "Linux-x86", true
		case "arm64":
			return "Linux-ARM-64", true
		}
	}

	return "", false
}

// Locate implements Locator for the BaseTools directory convention.
func (BaseToolsLocator) Locate(goos, goarch, workspaceRoot string) (string, bool) {
	folder, ok := PlatformFolder(goos, goarch)
	if !ok {
		return "", false
	}

	exe := "LzmaCompress"
	if goos == "windows" {
		exe += ".exe"
	}

	parts := append([]string{workspaceRoot}, baseToolsRelDir...)
	path := filepath.Join(append(parts, folder, exe)...)

	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	return path, true
}
