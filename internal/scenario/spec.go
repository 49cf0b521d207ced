// Package scenario loads YAML stage files: static world geometry, enemies,
// a stand-in player, named hazard templates and the emitters that fire them.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Point is an [x, y] pair.
type Point [2]float64

// File is the raw YAML document.
type File struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	World       WorldSpec               `yaml:"world"`
	Enemies     []ShapeSpec             `yaml:"enemies"`
	Player      PlayerSpec              `yaml:"player"`
	Templates   map[string]TemplateSpec `yaml:"templates"`
	Emitters    []EmitterSpec           `yaml:"emitters"`

	// dir resolves script files; empty for embedded scenarios.
	dir string
}

type WorldSpec struct {
	Objects []ObjectSpec `yaml:"objects"`
}

// ShapeSpec lists primitives. Coordinates are relative to the owner's
// position.
type ShapeSpec struct {
	Pos     Point        `yaml:"pos"`
	Circles []CircleSpec `yaml:"circles"`
	Boxes   []BoxSpec    `yaml:"boxes"`
	Tags    []string     `yaml:"tags"`
}

type ObjectSpec struct {
	ShapeSpec `yaml:",inline"`
	AABB      *BoxSpec `yaml:"aabb"`
	Hidden    bool     `yaml:"hidden"`
}

type CircleSpec struct {
	Center Point   `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

type BoxSpec struct {
	Origin Point `yaml:"origin"`
	Size   Point `yaml:"size"`
}

type PlayerSpec struct {
	Pos         Point            `yaml:"pos"`
	Radius      float64          `yaml:"radius"`
	Projectiles []ProjectileSpec `yaml:"projectiles"`
}

type ProjectileSpec struct {
	Pos      Point `yaml:"pos"`
	Grounded bool  `yaml:"grounded"`
}

// TemplateSpec is a hazard template. Unset pointer fields keep the default
// template's value.
type TemplateSpec struct {
	Kind        string           `yaml:"kind"`
	Pos         Point            `yaml:"pos"`
	Dir         float64          `yaml:"dir"`
	Random      bool             `yaml:"random"`
	Speed       *float64         `yaml:"speed"`
	Color       *[3]float64      `yaml:"color"`
	Size        *float64         `yaml:"size"`
	Damage      *float64         `yaml:"damage"`
	Alpha       *float64         `yaml:"alpha"`
	Indicator   bool             `yaml:"indicator"`
	Destroyable *bool            `yaml:"destroyable"`
	IgnoreWalls bool             `yaml:"ignore_walls"`
	Group       string           `yaml:"group"`
	Mods        []map[string]any `yaml:"mods"`
}

// EmitterSpec fires a template from a fixed point on a schedule.
type EmitterSpec struct {
	Template string  `yaml:"template"`
	Pos      *Point  `yaml:"pos"`
	Ring     int     `yaml:"ring"`
	Every    int     `yaml:"every"`
	Start    int     `yaml:"start"`
	Stop     int     `yaml:"stop"`
	Aim      bool    `yaml:"aim"`
	Turn     float64 `yaml:"turn"`
}

// Mod payloads, one per mods[] key.

type AccelSpec struct {
	Delta float64  `yaml:"delta"`
	Cap   *float64 `yaml:"cap"`
	Delay int      `yaml:"delay"`
}

type OrbitSpec struct {
	Omega  float64  `yaml:"omega"`
	Accel  float64  `yaml:"accel"`
	Cap    *float64 `yaml:"cap"`
	Radius float64  `yaml:"radius"`
	Locked bool     `yaml:"locked"`
}

type SpinSpec struct {
	Rate  float64  `yaml:"rate"`
	Start *float64 `yaml:"start"`
}

type ColorCycleSpec struct {
	Step  float64  `yaml:"step"`
	Phase *float64 `yaml:"phase"`
}

type TimerSpec struct {
	Delay int `yaml:"delay"`
}

type SpawnSpec struct {
	Template    string `yaml:"template"`
	Count       int    `yaml:"count"`
	Every       int    `yaml:"every"`
	Delay       int    `yaml:"delay"`
	RelativePos *bool  `yaml:"relative_pos"`
	RelativeDir *bool  `yaml:"relative_dir"`
}

type ScriptSpec struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	File   string `yaml:"file"`
	Every  int    `yaml:"every"`
	Delay  int    `yaml:"delay"`
}

// Parse decodes a scenario document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal: %w", err)
	}
	return &f, nil
}

// ReadFile reads and decodes a scenario from disk. Script files are resolved
// relative to it.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	if f.ID == "" {
		base := filepath.Base(path)
		f.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	return f, nil
}

// DecodeSpec re-decodes a loosely typed YAML value into T.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
