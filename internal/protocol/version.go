package protocol

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/onecrypto/cryptobin-packager/internal/logger"
)

// DefaultVersion is used when the protocol header is missing or unparsable.
const DefaultVersion = "1.0"

// Version declarations in the protocol header look like:
//
//	#define ONE_CRYPTO_VERSION_MAJOR  1ULL
//	#define ONE_CRYPTO_VERSION_MINOR  4ULL
//
//nolint:gochecknoglobals // Compiled once, read-only.
var (
	majorPattern = regexp.MustCompile(`#define\s+ONE_CRYPTO_VERSION_MAJOR\s+(\d+)ULL`)
	minorPattern = regexp.MustCompile(`#define\s+ONE_CRYPTO_VERSION_MINOR\s+(\d+)ULL`)
)

// ParseVersion extracts the (major, minor) version pair from header contents.
func ParseVersion(contents []byte) (major, minor int, ok bool) {
	majorMatch := majorPattern.FindSubmatch(contents)
	minorMatch := minorPattern.FindSubmatch(contents)

	if majorMatch == nil || minorMatch == nil {
		return 0, 0, false
	}

	// The pattern guarantees digits only.
	major, _ = strconv.Atoi(string(majorMatch[1]))
	minor, _ = strconv.Atoi(string(minorMatch[1]))

	return major, minor, true
}

// DetectVersion reads the protocol header and returns the declared version
// as "major.minor". A missing or unparsable header is non-fatal: a warning
// is logged and DefaultVersion is returned.
func DetectVersion(ctx context.Context, headerPath string) string {
	contents, err := os.ReadFile(filepath.Clean(headerPath))
	if err != nil {
		logger.WarnKV(ctx, "Protocol header not readable, using default version",
			"path", headerPath, "default", DefaultVersion, "error", err)

		return DefaultVersion
	}

	major, minor, ok := ParseVersion(contents)
	if !ok {
		logger.WarnKV(ctx, "Could not parse version from protocol header, using default version",
			"path", headerPath, "default", DefaultVersion)

		return DefaultVersion
	}

	return fmt.Sprintf("%d.%d", major, minor)
}
