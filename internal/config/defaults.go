package config

import (
	_ "embed"

	"github.com/vovakirdan/danmaku/internal/world"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the hardcoded simulation configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Hazards: HazardConfig{
			FadeTicks:        10,
			SpawnGrace:       5,
			BaseRadius:       10,
			HitboxFactor:     0.75,
			ProjectileReach:  30,
			GroundedReach:    150,
			WallIgnoreTags:   []string{world.TagEnemy, world.TagRiver},
			MaxSpawnsPerTick: 4096,
			MaxGeneration:    16,
			Cadence: CadenceConfig{
				WarmupTicks:     10,
				NearDistance:    500,
				FarDistance:     2000,
				Near:            1,
				Mid:             3,
				Far:             5,
				Stationary:      30,
				StationarySpeed: 0.5,
			},
		},
		Collision: CollisionConfig{
			SettleIterations: 5,
		},
		View: ViewConfig{
			UnitsPerColumn: 20,
			UnitsPerRow:    40,
		},
		Pressure: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 36000, // 10 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 0.5,
				ExtraRing:         8,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSimYAML
}
