package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/onecrypto/cryptobin-packager/internal/config"
	"github.com/onecrypto/cryptobin-packager/internal/domain/layout"
)

// SettingsManager is the accessor contract the external build framework
// consumes from a platform definition.
type SettingsManager interface {
	// Name identifies the platform being built; used for log file naming.
	Name() string
	// WorkspaceRoot is the absolute workspace directory.
	WorkspaceRoot() string
	// PackagesSupported lists the firmware packages this platform builds.
	PackagesSupported() []string
	// SupportedArchitectures lists buildable architectures.
	SupportedArchitectures() []layout.Architecture
	// SupportedTargets lists buildable targets.
	SupportedTargets() []layout.Target
	// ActiveScopes lists the tool scopes active for this build.
	ActiveScopes() []string
}

// Platform hardcoded settings.
const (
	productName    = "OneCrypto"
	packageName    = "OneCryptoPkg"
	activePlatform = "OneCryptoPkg/OneCryptoPkg.dsc"
	outputDir      = "Build/OneCryptoPkg"

	buildReportTypes = "PCD DEPEX FLASH BUILD_FLAGS LIBRARY FIXED_ADDRESS HASH"
)

// Platform wires the cryptobin packaging step into the build framework:
// it exposes the settings contract, seeds platform environment values
// before the build, and packages artifacts after it.
type Platform struct {
	cfg           *config.Config
	env           *Env
	architectures []layout.Architecture
	target        layout.Target
}

// NewPlatform creates a Platform over the given settings, defaulting to
// all supported architectures and the DEBUG target.
func NewPlatform(cfg *config.Config) *Platform {
	return &Platform{
		cfg:           cfg,
		env:           NewEnv(),
		architectures: layout.SupportedArchitectures(),
		target:        layout.TargetDebug,
	}
}

// SetArchitectures restricts the build to the requested architectures.
// Any unsupported entry invalidates the whole request.
func (p *Platform) SetArchitectures(requested []string) error {
	if len(requested) == 0 {
		p.architectures = layout.SupportedArchitectures()

		return nil
	}

	archs := make([]layout.Architecture, 0, len(requested))

	var unsupported []string

	for _, s := range requested {
		arch, err := layout.ParseArchitecture(s)
		if err != nil {
			unsupported = append(unsupported, s)
			continue
		}

		archs = append(archs, arch)
	}

	if len(unsupported) > 0 {
		return fmt.Errorf("%w: %s", layout.ErrUnsupportedArchitecture, strings.Join(unsupported, " "))
	}

	p.architectures = archs

	return nil
}

// SetTarget selects the build target.
func (p *Platform) SetTarget(s string) error {
	target, err := layout.ParseTarget(s)
	if err != nil {
		return err
	}

	p.target = target

	return nil
}

// Name implements SettingsManager.
func (p *Platform) Name() string {
	return fmt.Sprintf("%s_%s", packageName, p.target)
}

// WorkspaceRoot implements SettingsManager.
func (p *Platform) WorkspaceRoot() string {
	return p.cfg.WorkspaceRoot
}

// PackagesSupported implements SettingsManager.
func (p *Platform) PackagesSupported() []string {
	return []string{packageName}
}

// SupportedArchitectures implements SettingsManager.
func (p *Platform) SupportedArchitectures() []layout.Architecture {
	return layout.SupportedArchitectures()
}

// SupportedTargets implements SettingsManager.
func (p *Platform) SupportedTargets() []layout.Target {
	return layout.SupportedTargets()
}

// ActiveScopes implements SettingsManager.
func (p *Platform) ActiveScopes() []string {
	return []string{"OneCrypto", "edk2-build"}
}

// Architectures returns the architectures selected for this build.
func (p *Platform) Architectures() []layout.Architecture {
	return append([]layout.Architecture(nil), p.architectures...)
}

// Target returns the selected build target.
func (p *Platform) Target() layout.Target {
	return p.target
}

// Env returns the environment value store.
func (p *Platform) Env() *Env {
	return p.env
}

// SetPlatformEnv seeds the platform's environment values, including
// always-on build reporting.
func (p *Platform) SetPlatformEnv(ctx context.Context) {
	archNames := make([]string, 0, len(p.architectures))
	for _, arch := range p.architectures {
		archNames = append(archNames, string(arch))
	}

	p.env.SetValue(ctx, "PRODUCT_NAME", productName, "Platform hardcoded")
	p.env.SetValue(ctx, "ACTIVE_PLATFORM", activePlatform, "Platform hardcoded")
	p.env.SetValue(ctx, "OUTPUT_DIRECTORY", outputDir, "Platform hardcoded")
	p.env.SetValue(ctx, "TARGET_ARCH", strings.Join(archNames, " "), "CLI args")
	p.env.SetValue(ctx, "TARGET", string(p.target), "CLI args")

	p.env.SetValue(ctx, "BUILDREPORTING", "TRUE", "Enabling build report")
	p.env.SetValue(ctx, "BUILDREPORT_TYPES", buildReportTypes, "Setting build report types")
}
