package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
)

func testPlatform(t *testing.T) *Platform {
	t.Helper()

	return NewPlatform(&config.Config{
		WorkspaceRoot:  t.TempDir(),
		BuildBase:      config.DefaultBuildBase,
		Toolchain:      config.DefaultToolchain,
		ProtocolHeader: config.DefaultProtocolHeader,
	})
}

// TestEnvFirstSetWins ensures later assignments never override earlier ones.
func TestEnvFirstSetWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := NewEnv()

	require.True(t, env.SetValue(ctx, "TARGET", "DEBUG", "CLI args"))
	require.False(t, env.SetValue(ctx, "TARGET", "RELEASE", "second attempt"))

	require.Equal(t, "DEBUG", env.GetValue("TARGET", ""))
	require.Equal(t, "fallback", env.GetValue("UNSET", "fallback"))
	require.Equal(t, []string{"TARGET"}, env.Names())
}

// TestSettingsContract verifies the accessor surface the framework consumes.
func TestSettingsContract(t *testing.T) {
	t.Parallel()

	p := testPlatform(t)

	var _ SettingsManager = p

	require.Equal(t, "OneCryptoPkg_DEBUG", p.Name())
	require.Equal(t, []string{"OneCryptoPkg"}, p.PackagesSupported())
	require.Equal(t, []string{"OneCrypto", "edk2-build"}, p.ActiveScopes())
	require.Equal(t, layout.SupportedArchitectures(), p.SupportedArchitectures())
	require.Equal(t, layout.SupportedTargets(), p.SupportedTargets())
	require.NotEmpty(t, p.WorkspaceRoot())

	require.NoError(t, p.SetTarget("RELEASE"))
	require.Equal(t, "OneCryptoPkg_RELEASE", p.Name())
}

// TestSetArchitectures rejects requests containing any unsupported entry.
func TestSetArchitectures(t *testing.T) {
	t.Parallel()

	p := testPlatform(t)

	require.NoError(t, p.SetArchitectures([]string{"AARCH64"}))
	require.Equal(t, []layout.Architecture{layout.ArchAARCH64}, p.Architectures())

	err := p.SetArchitectures([]string{"X64", "IA32"})
	require.ErrorIs(t, err, layout.ErrUnsupportedArchitecture)

	// Selection unchanged after a rejected request.
	require.Equal(t, []layout.Architecture{layout.ArchAARCH64}, p.Architectures())

	// Empty request restores all supported architectures.
	require.NoError(t, p.SetArchitectures(nil))
	require.Equal(t, layout.SupportedArchitectures(), p.Architectures())
}

// TestSetPlatformEnv seeds the expected named values.
func TestSetPlatformEnv(t *testing.T) {
	t.Parallel()

	p := testPlatform(t)
	require.NoError(t, p.SetArchitectures([]string{"X64", "AARCH64"}))
	require.NoError(t, p.PreBuild(context.Background()))

	env := p.Env()
	require.Equal(t, "OneCrypto", env.GetValue("PRODUCT_NAME", ""))
	require.Equal(t, "OneCryptoPkg/OneCryptoPkg.dsc", env.GetValue("ACTIVE_PLATFORM", ""))
	require.Equal(t, "Build/OneCryptoPkg", env.GetValue("OUTPUT_DIRECTORY", ""))
	require.Equal(t, "X64 AARCH64", env.GetValue("TARGET_ARCH", ""))
	require.Equal(t, "DEBUG", env.GetValue("TARGET", ""))
	require.Equal(t, "TRUE", env.GetValue("BUILDREPORTING", ""))
	require.NotEmpty(t, env.GetValue("BUILDREPORT_TYPES", ""))
}

// TestPostBuildPackagesArtifacts runs the full hook over a populated build tree.
func TestPostBuildPackagesArtifacts(t *testing.T) {
	t.Parallel()

	p := testPlatform(t)
	require.NoError(t, p.SetArchitectures([]string{"AARCH64"}))

	// Materialize the AARCH64 layout on disk.
	folders, err := layout.Resolve(layout.ArchAARCH64, layout.TargetDebug, p.cfg.Toolchain)
	require.NoError(t, err)

	for _, folder := range folders {
		for _, entry := range folder.Entries {
			path := filepath.Join(p.cfg.BuildDir(), filepath.FromSlash(entry.Source))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(entry.Name), 0o644))
		}
	}

	require.NoError(t, p.PostBuild(context.Background()))

	// The canonical archive exists in the build directory.
	_, err = os.Stat(filepath.Join(p.cfg.BuildDir(), "Mu_CryptoBin_v1_0_DEBUG.zip"))
	require.NoError(t, err)
}

// TestPostBuildEmptyTree reports packaging failure without failing the hook.
func TestPostBuildEmptyTree(t *testing.T) {
	t.Parallel()

	p := testPlatform(t)

	require.NoError(t, p.PostBuild(context.Background()))
}
