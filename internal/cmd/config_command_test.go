package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"threadloom/internal/config"
)

func TestCLIHarnessConfigSetShow(t *testing.T) {
	out, _ := setupHarness(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	rootCmd.SetArgs([]string{"--config", cfgPath, "config", "set", "base_url", "https://proxy.example.com"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config set: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != "https://proxy.example.com" {
		t.Fatalf("base_url not persisted: %q", cfg.BaseURL)
	}

	out.Reset()
	resetFlagChanges(rootCmd)
	rootCmd.SetArgs([]string{"--config", cfgPath, "--output", "text", "config", "show"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "base_url: https://proxy.example.com") {
		t.Errorf("show output missing base_url: %q", out.String())
	}
}

func TestCLIHarnessConfigSetTimeoutValidation(t *testing.T) {
	_, _ = setupHarness(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs([]string{"--config", cfgPath, "config", "set", "timeout_seconds", "soon"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Error("config file should not be written on invalid value")
	}
}

func TestCLIHarnessConfigUnset(t *testing.T) {
	_, _ = setupHarness(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	seed := &config.Config{BaseURL: "https://proxy.example.com", TimeoutSeconds: 5}
	if err := seed.Save(cfgPath); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	rootCmd.SetArgs([]string{"--config", cfgPath, "config", "unset", "base_url"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config unset: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != "" {
		t.Errorf("base_url still set: %q", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("unrelated key lost: %d", cfg.TimeoutSeconds)
	}
}

func TestCLIHarnessConfigUnknownKey(t *testing.T) {
	_, _ = setupHarness(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs([]string{"--config", cfgPath, "config", "set", "color_scheme", "dark"})

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestCLIHarnessConfigPath(t *testing.T) {
	out, _ := setupHarness(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs([]string{"--config", cfgPath, "--output", "text", "config", "path"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out.String()) != cfgPath {
		t.Errorf("path output = %q, want %q", out.String(), cfgPath)
	}
}
