package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds packaging parameters shared by the cryptobin binaries.
type Config struct {
	// WorkspaceRoot is the root of the firmware workspace (the directory
	// containing the build base and the MU_BASECORE submodule).
	WorkspaceRoot string `yaml:"workspace_root"`
	// BuildBase is the build output directory relative to WorkspaceRoot.
	BuildBase string `yaml:"build_base"`
	// Toolchain is the default toolchain tag used to resolve build paths.
	Toolchain string `yaml:"toolchain"`
	// ProtocolHeader is the path to the OneCrypto protocol header holding
	// the version declarations, relative to WorkspaceRoot.
	ProtocolHeader string `yaml:"protocol_header"`
}

const (
	// DefaultConfigFilename is the default filename for packaging settings.
	DefaultConfigFilename = "cryptobin-packager-settings.yaml"

	// DefaultBuildBase is the default build output directory.
	DefaultBuildBase = "Build"

	// DefaultToolchain is the default toolchain tag.
	DefaultToolchain = "VS2022"

	// DefaultProtocolHeader is the default location of the version header.
	DefaultProtocolHeader = "MU_BASECORE/CryptoPkg/Include/Protocol/OneCrypto.h"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration with all defaults applied,
// rooted at the current working directory.
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path and applies defaults
// for fields left empty. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	applyDefaults(cfg)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// applyDefaults fills empty fields with their default values.
func applyDefaults(cfg *Config) {
	if cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = "."
	}

	if cfg.BuildBase == "" {
		cfg.BuildBase = DefaultBuildBase
	}

	if cfg.Toolchain == "" {
		cfg.Toolchain = DefaultToolchain
	}

	if cfg.ProtocolHeader == "" {
		cfg.ProtocolHeader = DefaultProtocolHeader
	}
}

// BuildDir returns the absolute build output directory.
func (c *Config) BuildDir() string {
	return filepath.Join(c.WorkspaceRoot, c.BuildBase)
}

// ProtocolHeaderPath returns the absolute path to the version header.
func (c *Config) ProtocolHeaderPath() string {
	return filepath.Join(c.WorkspaceRoot, c.ProtocolHeader)
}
