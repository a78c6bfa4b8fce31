package main

import (
	"path/filepath"
	"testing"

	"armpick/internal/config"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "isometric", "orthographic", "write-config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s", name)
		}
	}
	if got := cmd.Flags().Lookup("config").DefValue; got != filepath.Join("config", "armpick.yaml") {
		t.Errorf("Expected default config path, got %q", got)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	opts := options{
		configPath:   filepath.Join(t.TempDir(), "missing.yaml"),
		isometric:    true,
		orthographic: true,
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Camera.Preset != "isometric" {
		t.Errorf("Expected isometric, got %q", cfg.Camera.Preset)
	}
	if cfg.Camera.Projection != "orthographic" {
		t.Errorf("Expected orthographic, got %q", cfg.Camera.Projection)
	}
}

func TestLoadConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "armpick.yaml")
	if _, err := loadConfig(options{configPath: path, writeConfig: true}); err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Projectile.LaunchSpeed != config.Default().Projectile.LaunchSpeed {
		t.Errorf("Expected written defaults, got %+v", cfg.Projectile)
	}
}
