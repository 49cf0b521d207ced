// Package config provides YAML-based simulation tunables and the pressure
// (difficulty) ramp applied to emitters.
package config

// SimConfig contains every tunable of a simulation run.
type SimConfig struct {
	Hazards   HazardConfig     `yaml:"hazards"`
	Collision CollisionConfig  `yaml:"collision"`
	View      ViewConfig       `yaml:"view"`
	Pressure  DifficultyConfig `yaml:"pressure"`
}

// HazardConfig defines hazard sizing, hit testing and lifecycle parameters.
type HazardConfig struct {
	FadeTicks       int      `yaml:"fade_ticks"`       // Ticks a dead hazard stays around for its fade-out
	SpawnGrace      int      `yaml:"spawn_grace"`      // Age before a hazard can hit or be shot
	BaseRadius      float64  `yaml:"base_radius"`      // Visual radius of a size-1 orb
	HitboxFactor    float64  `yaml:"hitbox_factor"`    // Hit radius as a fraction of the visual radius
	ProjectileReach float64  `yaml:"projectile_reach"` // Extra reach of a player projectile
	GroundedReach   float64  `yaml:"grounded_reach"`   // Extra reach of a grounded player projectile
	WallIgnoreTags  []string `yaml:"wall_ignore_tags"` // Geometry hazards pass through

	MaxSpawnsPerTick int `yaml:"max_spawns_per_tick"` // 0 disables the limit
	MaxGeneration    int `yaml:"max_generation"`      // Deepest spawn-from-spawn chain, 0 disables

	Cadence CadenceConfig `yaml:"cadence"`
}

// CadenceConfig throttles wall checks by distance to the player.
type CadenceConfig struct {
	WarmupTicks     int     `yaml:"warmup_ticks"`     // Check every tick while younger than this
	NearDistance    float64 `yaml:"near_distance"`    // Within this range use Near
	FarDistance     float64 `yaml:"far_distance"`     // Within this range use Mid, beyond use Far
	Near            int     `yaml:"near"`             // Check interval near the player
	Mid             int     `yaml:"mid"`              // Check interval at medium range
	Far             int     `yaml:"far"`              // Check interval far from the player
	Stationary      int     `yaml:"stationary"`       // Check interval once nearly stopped
	StationarySpeed float64 `yaml:"stationary_speed"` // Speed at or below which a hazard counts as stopped
}

// CollisionConfig defines resolver parameters.
type CollisionConfig struct {
	SettleIterations int `yaml:"settle_iterations"`
}

// ViewConfig maps world units onto terminal cells.
type ViewConfig struct {
	UnitsPerColumn float64 `yaml:"units_per_column"`
	UnitsPerRow    float64 `yaml:"units_per_row"`
}

// DifficultyConfig defines the pressure progression applied to emitters.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = calm, 1.0 = full pressure
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how pressure increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which full pressure is reached
}

// ScalingConfig defines the magnitude of pressure changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to hazard speed at full pressure
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the emitter interval removed at full pressure
	ExtraRing         int     `yaml:"extra_ring"`         // Extra hazards per ring at full pressure
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown names yield normal.
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return DifficultyNormal
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
