package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg SimConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML: %v", err)
	}
	def := DefaultSimConfig()

	if cfg.Hazards.FadeTicks != def.Hazards.FadeTicks {
		t.Errorf("FadeTicks = %d, expected %d", cfg.Hazards.FadeTicks, def.Hazards.FadeTicks)
	}
	if cfg.Hazards.Cadence != def.Hazards.Cadence {
		t.Errorf("Cadence = %+v, expected %+v", cfg.Hazards.Cadence, def.Hazards.Cadence)
	}
	if cfg.Collision.SettleIterations != 5 {
		t.Errorf("SettleIterations = %d, expected 5", cfg.Collision.SettleIterations)
	}
	if len(cfg.Hazards.WallIgnoreTags) != 2 {
		t.Errorf("WallIgnoreTags = %v, expected [enemy river]", cfg.Hazards.WallIgnoreTags)
	}
	if cfg.Pressure.Scaling != def.Pressure.Scaling {
		t.Errorf("Scaling = %+v, expected %+v", cfg.Pressure.Scaling, def.Pressure.Scaling)
	}
}

func TestLoadSimCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := []byte("hazards:\n  fade_ticks: 20\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSim(path)
	if err != nil {
		t.Fatalf("LoadSim() error = %v", err)
	}
	if cfg.Hazards.FadeTicks != 20 {
		t.Errorf("FadeTicks = %d, expected 20", cfg.Hazards.FadeTicks)
	}
	if cfg.Hazards.SpawnGrace != 5 {
		t.Errorf("SpawnGrace = %d, expected default 5", cfg.Hazards.SpawnGrace)
	}
}

func TestLoadSimErrors(t *testing.T) {
	if _, err := LoadSim(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("hazards: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSim(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultSimConfig().Pressure
	cfg.Progression = ProgressionConfig{Type: "time", MaxAt: 100}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		ticks    int
		expected float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
	}
	for _, tc := range tests {
		if got := d.Level(0, tc.ticks); got != tc.expected {
			t.Errorf("Level(0, %d) = %v, expected %v", tc.ticks, got, tc.expected)
		}
	}

	d.SetEnabled(false)
	if got := d.Level(0, 100); got != 0 {
		t.Errorf("disabled Level() = %v, expected initial level 0", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1, IntervalReduction: 0.5, ExtraRing: 4},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Speed(2, 0, 10); got != 4 {
		t.Errorf("Speed() = %v, expected 4", got)
	}
	if got := d.Interval(20, 0, 10); got != 10 {
		t.Errorf("Interval() = %v, expected 10", got)
	}
	if got := d.Interval(1, 0, 10); got != 1 {
		t.Errorf("Interval() = %v, expected floor of 1", got)
	}
	if got := d.RingCount(8, 0, 10); got != 12 {
		t.Errorf("RingCount() = %v, expected 12", got)
	}
	if got := d.RingCount(1, 0, 10); got != 1 {
		t.Errorf("RingCount() of a single shot = %v, expected 1", got)
	}
}

func TestApplySimPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSimConfig()
			ApplySimPreset(&cfg, tc.preset)
			if cfg.Pressure.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Pressure.Enabled, tc.enabled)
			}
			if tc.enabled && cfg.Pressure.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Pressure.InitialLevel, tc.level)
			}
		})
	}
	if ParsePreset("bogus") != DifficultyNormal {
		t.Error("ParsePreset should fall back to normal")
	}
}
