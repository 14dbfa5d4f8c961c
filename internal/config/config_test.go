package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[simulation]
tick_rate = "20ms"
seed = 99

[collision]
workers = 8
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Simulation.TickRate != 20*time.Millisecond {
		t.Errorf("TickRate = %s, want 20ms", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Simulation.Seed)
	}
	if cfg.Collision.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Collision.Workers)
	}
	// untouched sections keep defaults
	if cfg.Collision.ParallelThreshold != 256 {
		t.Errorf("ParallelThreshold = %d, want 256", cfg.Collision.ParallelThreshold)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horde.toml")
	if err := os.WriteFile(path, []byte("[database]\nenabled = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Error("Database.Enabled = false, want true")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("[simulation\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load("../../config/horde.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickRate != 16*time.Millisecond {
		t.Errorf("TickRate = %s, want 16ms", cfg.Simulation.TickRate)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %s, want 30m", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Data.Dir != "data/yaml" {
		t.Errorf("Data.Dir = %q", cfg.Data.Dir)
	}
}

func TestParse_TickRateFloored(t *testing.T) {
	for _, src := range []string{`tick_rate = "0s"`, `tick_rate = "-5ms"`} {
		cfg, err := Parse([]byte("[simulation]\n" + src + "\n"))
		if err != nil {
			t.Fatalf("Parse(%s): %v", src, err)
		}
		if cfg.Simulation.TickRate != MinTickRate {
			t.Errorf("%s: TickRate = %s, want %s", src, cfg.Simulation.TickRate, MinTickRate)
		}
	}
}
