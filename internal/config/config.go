// Package config loads and validates the optional .swiftkit YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up at the package root.
const FileName = ".swiftkit"

// Default values for runner and validator configuration.
const (
	DefaultTimeout         = 5 * time.Minute
	DefaultRunTimeout      = 5 * time.Second
	DefaultMaxOutput       = 1 << 20 // 1 MB
	DefaultPlatform        = "macos"
	DefaultMinSwiftVersion = "5.9"
)

// Config holds the parsed .swiftkit configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version         int             `yaml:"version"`
	RawTimeout      string          `yaml:"timeout"`     // e.g. "5m", "30s"
	RawRunTimeout   string          `yaml:"run_timeout"` // e.g. "5s"
	RawMaxOutput    int             `yaml:"max_output"`  // bytes
	Swiftc          string          `yaml:"swiftc"`      // path override for swiftc
	Swift           string          `yaml:"swift"`       // path override for swift
	MinSwiftVersion string          `yaml:"min_swift_version"`
	Typecheck       TypecheckConfig `yaml:"typecheck"`
	Run             RunConfig       `yaml:"run"`
	Scaffold        ScaffoldConfig  `yaml:"scaffold"`
}

// TypecheckConfig controls how swiftc -typecheck is invoked.
type TypecheckConfig struct {
	Args []string `yaml:"args"` // extra flags (e.g. -swift-version 5)
}

// RunConfig controls how snippets are executed with swift.
type RunConfig struct {
	Args []string `yaml:"args"` // extra flags placed before the file
}

// ScaffoldConfig holds scaffolder defaults.
type ScaffoldConfig struct {
	Platform string `yaml:"platform"` // ios, macos or multiplatform
}

// Timeout returns the configured overall process timeout or the default.
func (c *Config) Timeout() time.Duration {
	return parseDuration(c.RawTimeout, DefaultTimeout)
}

// RunTimeout returns the configured execution timeout or the default.
func (c *Config) RunTimeout() time.Duration {
	return parseDuration(c.RawRunTimeout, DefaultRunTimeout)
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// Platform returns the scaffold platform, falling back to macos.
func (c *Config) Platform() string {
	if c.Scaffold.Platform != "" {
		return c.Scaffold.Platform
	}
	return DefaultPlatform
}

// MinSwift returns the minimum supported Swift version, falling back to 5.9.
func (c *Config) MinSwift() string {
	if c.MinSwiftVersion != "" {
		return c.MinSwiftVersion
	}
	return DefaultMinSwiftVersion
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw != "" {
		d, err := time.ParseDuration(raw)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// LoadResult holds the parsed config and the discovered package root.
type LoadResult struct {
	Config  *Config
	RootDir string // directory containing Package.swift; falls back to workspace
}

// Load reads the .swiftkit file from the package root.
// The package root is discovered by walking upward from workspace
// looking for Package.swift. If no .swiftkit file exists, a default Config is returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := findPackageRoot(workspace)
	if err != nil {
		// No Package.swift found; use workspace as root.
		root = workspace
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: &Config{}, RootDir: root}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &LoadResult{Config: cfg, RootDir: root}, nil
}

// findPackageRoot walks upward from dir looking for a directory containing Package.swift.
func findPackageRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "Package.swift")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("Package.swift not found")
		}
		dir = parent
	}
}
