package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSim loads the simulation configuration.
// Search order: customPath -> ~/.danmaku/configs/sim.yaml -> ./configs/sim.yaml -> embedded default
//
// Files are decoded over DefaultSimConfig, so a partial file only overrides
// the keys it names.
func LoadSim(customPath string) (SimConfig, error) {
	cfg := DefaultSimConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSimConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/sim.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSimConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		return DefaultSimConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".danmaku", "configs", filename)
}

// ApplySimPreset modifies the config based on a difficulty preset.
func ApplySimPreset(cfg *SimConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Pressure.Enabled = false
	} else {
		cfg.Pressure.Enabled = true
		cfg.Pressure.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust ramp steepness based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Pressure.Scaling.SpeedMultiplier = 0.25
		cfg.Pressure.Scaling.ExtraRing = 4
	case DifficultyHard:
		cfg.Pressure.Scaling.SpeedMultiplier = 1.0
		cfg.Pressure.Scaling.IntervalReduction = 0.7
		cfg.Pressure.Scaling.ExtraRing = 12
	}
}
