package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Gas.Rows*cfg.Gas.Cols == 0 {
		t.Error("default lattice should not be empty")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Gas.Temperature = 2.5

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Gas.Temperature != 2.5 {
		t.Errorf("expected temperature 2.5, got %f", loaded.Gas.Temperature)
	}
	if loaded.Dt != cfg.Dt {
		t.Errorf("expected dt %f, got %f", cfg.Dt, loaded.Dt)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := Save(path, &Config{Dt: 0.5}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Dt != 0.5 {
		t.Errorf("expected dt 0.5, got %f", loaded.Dt)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Gas.Rows != 10 {
		t.Errorf("expected 10 rows, got %d", cfg.Gas.Rows)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("presets not sorted: %s before %s", names[i-1], names[i])
		}
	}
}

func TestBuildState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7

	st, err := cfg.BuildState()
	if err != nil {
		t.Fatalf("BuildState failed: %v", err)
	}

	if st.N() != DefaultRows*DefaultCols {
		t.Errorf("expected %d particles, got %d", DefaultRows*DefaultCols, st.N())
	}
	if st.Bounds.Width != DefaultCols*DefaultSpacing {
		t.Errorf("expected derived width %f, got %f", DefaultCols*DefaultSpacing, st.Bounds.Width)
	}

	moving := false
	for _, v := range st.Vel {
		if v.X != 0 || v.Y != 0 {
			moving = true
			break
		}
	}
	if !moving {
		t.Error("thermal gas should have nonzero velocities")
	}
}

func TestBuildStateReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11

	a, err := cfg.BuildState()
	if err != nil {
		t.Fatalf("BuildState failed: %v", err)
	}
	b, err := cfg.BuildState()
	if err != nil {
		t.Fatalf("BuildState failed: %v", err)
	}

	for i := 0; i < a.N(); i++ {
		if a.Pos[i] != b.Pos[i] || a.Vel[i] != b.Vel[i] {
			t.Fatalf("same seed produced different states at particle %d", i)
		}
	}
}

func TestBuildStateColdLattice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gas.Temperature = 0
	cfg.Gas.Jitter = 0

	st, err := cfg.BuildState()
	if err != nil {
		t.Fatalf("BuildState failed: %v", err)
	}

	for i, v := range st.Vel {
		if v.X != 0 || v.Y != 0 {
			t.Fatalf("cold gas has moving particle %d: %v", i, v)
		}
	}

	// Lattice sites sit half a spacing from the walls.
	if math.Abs(st.Pos[0].X-DefaultSpacing/2) > 1e-12 {
		t.Errorf("first site at %v, want x=%f", st.Pos[0], DefaultSpacing/2)
	}
}

func TestBuildStateBadLattice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gas.Rows = 0

	if _, err := cfg.BuildState(); err == nil {
		t.Error("expected error for empty lattice")
	}
}

func TestAllPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		st, err := cfg.BuildState()
		if err != nil {
			t.Errorf("preset %s does not build: %v", name, err)
			continue
		}
		if st.N() == 0 {
			t.Errorf("preset %s builds an empty gas", name)
		}
	}
}
