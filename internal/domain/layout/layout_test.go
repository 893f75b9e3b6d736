package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResolveDeterminism ensures identical parameters resolve to identical ordered output.
func TestResolveDeterminism(t *testing.T) {
	t.Parallel()

	for _, arch := range SupportedArchitectures() {
		for _, target := range SupportedTargets() {
			first, err := Resolve(arch, target, "VS2022")
			require.NoError(t, err)

			second, err := Resolve(arch, target, "VS2022")
			require.NoError(t, err)

			require.Equal(t, first, second)
		}
	}
}

// TestResolveSubstitution checks placeholders are fully replaced with build parameters.
func TestResolveSubstitution(t *testing.T) {
	t.Parallel()

	folders, err := Resolve(ArchX64, TargetRelease, "GCC5")
	require.NoError(t, err)

	for _, folder := range folders {
		for _, entry := range folder.Entries {
			require.NotContains(t, entry.Source, "{")
			if !strings.HasPrefix(entry.Source, ParentMarker) && folder.Name != FolderBuildInfo {
				require.Contains(t, entry.Source, "RELEASE_GCC5/X64")
			}
		}
	}
}

// TestResolveUnsupportedArchitecture ensures unknown architectures are rejected, not defaulted.
func TestResolveUnsupportedArchitecture(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Architecture("RISCV64"), TargetDebug, "VS2022")
	require.ErrorIs(t, err, ErrUnsupportedArchitecture)
}

// TestPerArchitectureModuleSets verifies the MM-supervisor modules exist on X64 only.
func TestPerArchitectureModuleSets(t *testing.T) {
	t.Parallel()

	names := func(arch Architecture) []string {
		folders, err := Resolve(arch, TargetDebug, "VS2022")
		require.NoError(t, err)

		var out []string
		for _, folder := range folders {
			for _, entry := range folder.Entries {
				out = append(out, folder.Name+"/"+entry.Name)
			}
		}

		return out
	}

	x64 := names(ArchX64)
	aarch64 := names(ArchAARCH64)

	require.Contains(t, x64, "OneCryptoBin/OneCryptoBinSupvMm.efi")
	require.Contains(t, x64, "OneCryptoLoaders/OneCryptoLoaderSupvMm.efi")
	require.NotContains(t, aarch64, "OneCryptoBin/OneCryptoBinSupvMm.efi")
	require.NotContains(t, aarch64, "OneCryptoLoaders/OneCryptoLoaderSupvMm.efi")

	require.Contains(t, aarch64, "OneCryptoBin/OneCryptoBinStandaloneMm.efi")
	require.Contains(t, aarch64, "OneCryptoLoaders/OneCryptoLoaderDxe.efi")
	require.Contains(t, aarch64, "BuildInfo/BUILD_REPORT.TXT")

	require.Greater(t, len(x64), len(aarch64))
}

// TestModuleSidecars ensures every firmware module ships efi, depex and inf entries.
func TestModuleSidecars(t *testing.T) {
	t.Parallel()

	folders, err := Resolve(ArchX64, TargetDebug, "VS2022")
	require.NoError(t, err)

	byExt := make(map[string]int)
	for _, folder := range folders {
		if folder.Name == FolderBuildInfo {
			continue
		}

		for _, entry := range folder.Entries {
			dot := strings.LastIndex(entry.Name, ".")
			byExt[entry.Name[dot:]]++

			if strings.HasSuffix(entry.Name, ".inf") {
				require.True(t, strings.HasPrefix(entry.Source, ParentMarker),
					"integration descriptors come from the source tree: %s", entry.Source)
			}
		}
	}

	require.Equal(t, byExt[".efi"], byExt[".depex"])
	require.Equal(t, byExt[".efi"], byExt[".inf"])
}

// TestParseArchitecture checks parsing accepts case-insensitive input and rejects unknowns.
func TestParseArchitecture(t *testing.T) {
	t.Parallel()

	arch, err := ParseArchitecture("x64")
	require.NoError(t, err)
	require.Equal(t, ArchX64, arch)

	arch, err = ParseArchitecture(" AARCH64 ")
	require.NoError(t, err)
	require.Equal(t, ArchAARCH64, arch)

	_, err = ParseArchitecture("IA32")
	require.ErrorIs(t, err, ErrUnsupportedArchitecture)
}

// TestParseTarget checks target parsing against the two supported values.
func TestParseTarget(t *testing.T) {
	t.Parallel()

	target, err := ParseTarget("release")
	require.NoError(t, err)
	require.Equal(t, TargetRelease, target)

	_, err = ParseTarget("NOOPT")
	require.ErrorIs(t, err, ErrUnsupportedTarget)
}

// TestEntryCount sums entries across folders.
func TestEntryCount(t *testing.T) {
	t.Parallel()

	folders, err := Resolve(ArchAARCH64, TargetDebug, "VS2022")
	require.NoError(t, err)

	// 3 modules x 3 files + 1 build report.
	require.Equal(t, 3*3+1, EntryCount(folders))
}
