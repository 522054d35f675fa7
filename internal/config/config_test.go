package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromPackageRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Package.swift"), []byte("// swift-tools-version: 5.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".swiftkit"), []byte("version: 1\ntimeout: 10m\nrun_timeout: 2s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.RootDir != dir {
		t.Errorf("RootDir = %q, want %q", res.RootDir, dir)
	}
	if res.Config.Version != 1 {
		t.Errorf("Config.Version = %d, want 1", res.Config.Version)
	}
	if got := res.Config.Timeout(); got != 10*time.Minute {
		t.Errorf("Timeout() = %v, want 10m", got)
	}
	if got := res.Config.RunTimeout(); got != 2*time.Second {
		t.Errorf("RunTimeout() = %v, want 2s", got)
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Package.swift"), []byte("// swift-tools-version: 5.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".swiftkit"), []byte("version: 2\nscaffold:\n  platform: ios\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sub := filepath.Join(root, "Sources", "App")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.RootDir != root {
		t.Errorf("RootDir = %q, want %q", res.RootDir, root)
	}
	if res.Config.Version != 2 {
		t.Errorf("Config.Version = %d, want 2", res.Config.Version)
	}
	if got := res.Config.Platform(); got != "ios" {
		t.Errorf("Platform() = %q, want ios", got)
	}
}

func TestLoad_NoPackageSwift(t *testing.T) {
	dir := t.TempDir()

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.RootDir != dir {
		t.Errorf("RootDir = %q, want %q (fallback to workspace)", res.RootDir, dir)
	}
	if res.Config.RawTimeout != "" {
		t.Errorf("expected default config, got RawTimeout = %q", res.Config.RawTimeout)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".swiftkit"), []byte("timeout: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Timeout(); got != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", got, DefaultTimeout)
	}
	if got := cfg.RunTimeout(); got != 5*time.Second {
		t.Errorf("RunTimeout() = %v, want 5s", got)
	}
	if got := cfg.MaxOutputBytes(); got != DefaultMaxOutput {
		t.Errorf("MaxOutputBytes() = %d, want %d", got, DefaultMaxOutput)
	}
	if got := cfg.Platform(); got != "macos" {
		t.Errorf("Platform() = %q, want macos", got)
	}
	if got := cfg.MinSwift(); got != "5.9" {
		t.Errorf("MinSwift() = %q, want 5.9", got)
	}
}

func TestRunTimeout_InvalidFallsBack(t *testing.T) {
	cfg := &Config{RawRunTimeout: "soon"}
	if got := cfg.RunTimeout(); got != DefaultRunTimeout {
		t.Errorf("RunTimeout() = %v, want %v", got, DefaultRunTimeout)
	}
	cfg.RawRunTimeout = "-3s"
	if got := cfg.RunTimeout(); got != DefaultRunTimeout {
		t.Errorf("RunTimeout() = %v, want %v", got, DefaultRunTimeout)
	}
}
