package layout

import (
	"fmt"
	"strings"
)

// Architecture is a target CPU instruction-set family for the firmware build.
type Architecture string

// Supported architectures.
const (
	ArchX64     Architecture = "X64"
	ArchAARCH64 Architecture = "AARCH64"
)

// Target is a build configuration variant.
type Target string

// Supported build targets.
const (
	TargetDebug   Target = "DEBUG"
	TargetRelease Target = "RELEASE"
)

// Folder names inside the archive.
const (
	FolderBin       = "OneCryptoBin"
	FolderLoaders   = "OneCryptoLoaders"
	FolderBuildInfo = "BuildInfo"
)

// Placeholders substituted when resolving source path templates.
const (
	placeholderArch      = "{ARCH}"
	placeholderTarget    = "{TARGET}"
	placeholderToolchain = "{TOOLCHAIN}"
)

// ParentMarker prefixes source templates that are rooted above the build
// output directory, pointing into the source tree instead.
const ParentMarker = "../"

// Entry describes one file to be packaged: a source path (template before
// resolution) and its destination name inside the archive folder.
type Entry struct {
	Source string
	Name   string
}

// Folder is an ordered group of entries sharing a destination folder.
type Folder struct {
	Name    string
	Entries []Entry
}

// Per-architecture module tables. The MM-supervisor modules are built for
// X64 only; both architectures carry the standalone MM flavors and the DXE
// loader. Static domain data: adding an architecture is a table change.
//
//nolint:gochecknoglobals // Immutable domain tables.
var (
	binModules = map[Architecture][]string{
		ArchX64:     {"OneCryptoBinSupvMm", "OneCryptoBinStandaloneMm"},
		ArchAARCH64: {"OneCryptoBinStandaloneMm"},
	}

	loaderModules = map[Architecture][]string{
		ArchX64:     {"OneCryptoLoaderDxe", "OneCryptoLoaderSupvMm", "OneCryptoLoaderStandaloneMm"},
		ArchAARCH64: {"OneCryptoLoaderDxe", "OneCryptoLoaderStandaloneMm"},
	}
)

// SupportedArchitectures returns the architectures with a layout table,
// in canonical order.
func SupportedArchitectures() []Architecture {
	return []Architecture{ArchX64, ArchAARCH64}
}

// SupportedTargets returns the valid build targets in canonical order.
func SupportedTargets() []Target {
	return []Target{TargetDebug, TargetRelease}
}

// ParseArchitecture validates a user-supplied architecture string.
func ParseArchitecture(s string) (Architecture, error) {
	arch := Architecture(strings.ToUpper(strings.TrimSpace(s)))
	for _, supported := range SupportedArchitectures() {
		if arch == supported {
			return arch, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedArchitecture, s)
}

// ParseTarget validates a user-supplied target string.
func ParseTarget(s string) (Target, error) {
	target := Target(strings.ToUpper(strings.TrimSpace(s)))
	for _, supported := range SupportedTargets() {
		if target == supported {
			return target, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedTarget, s)
}

// moduleOutputDir is the build output directory of a firmware module,
// relative to the build base.
func moduleOutputDir(group, module string) string {
	return "OneCryptoPkg/" + placeholderTarget + "_" + placeholderToolchain + "/" +
		placeholderArch + "/OneCryptoPkg/" + group + "/" + module + "/OUTPUT"
}

// moduleEntries returns the efi/depex pair from the build tree plus the
// integration descriptor from the source tree for one firmware module.
func moduleEntries(group, module string) []Entry {
	outDir := moduleOutputDir(group, module)

	return []Entry{
		{Source: outDir + "/" + module + ".efi", Name: module + ".efi"},
		{Source: outDir + "/" + module + ".depex", Name: module + ".depex"},
		{Source: ParentMarker + "OneCryptoPkg/" + group + "/Integration/" + module + ".inf", Name: module + ".inf"},
	}
}

// templates builds the unresolved folder list for one architecture.
func templates(arch Architecture) []Folder {
	bin := Folder{Name: FolderBin}
	for _, module := range binModules[arch] {
		bin.Entries = append(bin.Entries, moduleEntries(FolderBin, module)...)
	}

	loaders := Folder{Name: FolderLoaders}
	for _, module := range loaderModules[arch] {
		loaders.Entries = append(loaders.Entries, moduleEntries(FolderLoaders, module)...)
	}

	buildInfo := Folder{
		Name: FolderBuildInfo,
		Entries: []Entry{
			{
				Source: "OneCryptoPkg/" + placeholderTarget + "_" + placeholderToolchain + "/BUILD_REPORT.TXT",
				Name:   "BUILD_REPORT.TXT",
			},
		},
	}

	return []Folder{bin, loaders, buildInfo}
}

// Resolve expands the layout table for the given build parameters.
// Folder and entry order is deterministic; resolving the same parameters
// twice yields identical output.
func Resolve(arch Architecture, target Target, toolchain string) ([]Folder, error) {
	if _, ok := binModules[arch]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedArchitecture, arch)
	}

	replacer := strings.NewReplacer(
		placeholderArch, string(arch),
		placeholderTarget, string(target),
		placeholderToolchain, toolchain,
	)

	folders := templates(arch)
	for i := range folders {
		for j := range folders[i].Entries {
			folders[i].Entries[j].Source = replacer.Replace(folders[i].Entries[j].Source)
		}
	}

	return folders, nil
}

// EntryCount returns the total number of entries across all folders.
func EntryCount(folders []Folder) int {
	var n int
	for _, folder := range folders {
		n += len(folder.Entries)
	}

	return n
}
