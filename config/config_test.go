package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}

	if cfg.Particles.MaxParticles != 10000 {
		t.Errorf("MaxParticles = %d, want 10000", cfg.Particles.MaxParticles)
	}
	if cfg.Particles.SpawnRate != 500 {
		t.Errorf("SpawnRate = %v, want 500", cfg.Particles.SpawnRate)
	}
	if cfg.Grid.CellSize != 64 {
		t.Errorf("CellSize = %v, want 64", cfg.Grid.CellSize)
	}
	if cfg.Bridge.MinPoints != 4 {
		t.Errorf("MinPoints = %d, want 4", cfg.Bridge.MinPoints)
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("derived screen width %v != %d", cfg.Derived.ScreenW32, cfg.Screen.Width)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := []byte("particles:\n  max_particles: 250\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) = %v", path, err)
	}

	if cfg.Particles.MaxParticles != 250 {
		t.Errorf("MaxParticles = %d, want override 250", cfg.Particles.MaxParticles)
	}
	// Untouched fields keep their defaults.
	if cfg.Particles.Lifetime != 5.0 {
		t.Errorf("Lifetime = %v, want default 5.0", cfg.Particles.Lifetime)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.SpawnRate = 123

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML = %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload = %v", err)
	}
	if back.Particles.SpawnRate != 123 {
		t.Errorf("SpawnRate after round trip = %v, want 123", back.Particles.SpawnRate)
	}
}
