package config

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "selection" {
		t.Errorf("expected algorithm selection, got %s", cfg.Algorithm)
	}
	if cfg.Length != 150 || cfg.MinValue != 10 || cfg.MaxValue != 100 {
		t.Errorf("unexpected generation defaults: %+v", cfg)
	}
	if cfg.StepDelay() != 5*time.Millisecond {
		t.Errorf("expected 5ms delay, got %v", cfg.StepDelay())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tiny")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Length != 8 {
		t.Errorf("expected length 8, got %d", cfg.Length)
	}

	cfg.Length = 99
	if Presets["tiny"].Length != 8 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "heap"
	cfg.Length = 42
	cfg.Seed = 7
	cfg.Colors.Settled = "#00ff00"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_NotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"algorithm", func(c *Config) { c.Algorithm = "bogo" }, "algorithm"},
		{"negative length", func(c *Config) { c.Length = -1 }, "length"},
		{"huge length", func(c *Config) { c.Length = MaxLength + 1 }, "length"},
		{"range", func(c *Config) { c.MinValue, c.MaxValue = 5, 1 }, "min_value"},
		{"max beyond limit", func(c *Config) { c.MaxValue = math.MaxInt }, "max_value"},
		{"min beyond limit", func(c *Config) { c.MinValue = -ValueLimit - 1 }, "min_value"},
		{"delay", func(c *Config) { c.StepDelayMs = -1 }, "step_delay_ms"},
		{"frame rate", func(c *Config) { c.FrameRate = 0 }, "frame_rate"},
		{"color", func(c *Config) { c.Colors.Comparing = "red" }, "colors.comparing"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"ansi color", func(c *Config) { c.Colors.Default = "256" }, "colors.default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = -1
	cfg.StepDelayMs = -1

	var verr *ValidationError
	if !errors.As(cfg.Validate(), &verr) {
		t.Fatal("expected ValidationError")
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", verr.Errors)
	}
}

func TestValidate_ColorForms(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = ColorConfig{Default: "#AbCdEf", Comparing: "196", Settled: "0"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid colors: %v", err)
	}
}
