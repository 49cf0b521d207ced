package hazard

import "github.com/vovakirdan/danmaku/internal/geom"

// Entity is one live hazard in a pool.
type Entity struct {
	ID        int
	Pos       geom.Vec
	Dir       float64 // motion heading
	RenderDir float64 // rendered facing
	Speed     float64

	Kind        Kind
	Color       Color
	Size        float64
	Damage      float64
	Alpha       float64
	Indicator   bool
	Destroyable bool
	IgnoreWalls bool
	Group       string

	Age   int
	Fade  int
	Alive bool

	// Generation counts spawn-from-spawn hops; pool-level spawns are 0.
	Generation int

	Mods []Modifier

	initialDir float64
	dealt      bool
	removed    bool
	fading     bool // dead when the current update began
}

func newEntity(t *Template, dir float64) *Entity {
	return &Entity{
		Pos:         t.Pos,
		Dir:         dir,
		RenderDir:   dir,
		Speed:       t.Speed,
		Kind:        t.Kind,
		Color:       t.Color,
		Size:        t.Size,
		Damage:      t.Damage,
		Alpha:       t.Alpha,
		Indicator:   t.Indicator,
		Destroyable: t.Destroyable,
		IgnoreWalls: t.IgnoreWalls,
		Group:       t.Group,
		Alive:       true,
		Mods:        cloneMods(t.Mods),
		initialDir:  dir,
	}
}

// Template returns a template that would spawn a fresh copy of e at its
// current position and heading, with unstarted modifiers.
func (e *Entity) Template() *Template {
	return &Template{
		Pos:         e.Pos,
		Dir:         e.Dir,
		Speed:       e.Speed,
		Kind:        e.Kind,
		Color:       e.Color,
		Size:        e.Size,
		Damage:      e.Damage,
		Alpha:       e.Alpha,
		Indicator:   e.Indicator,
		Destroyable: e.Destroyable,
		IgnoreWalls: e.IgnoreWalls,
		Group:       e.Group,
		Mods:        cloneMods(e.Mods),
	}
}

// InitialDir returns the heading the entity was spawned with.
func (e *Entity) InitialDir() float64 { return e.initialDir }

// Kill marks the entity dead; it fades out and is then removed.
func (e *Entity) Kill() { e.Alive = false }

// AddMods appends modifiers. Modifiers added from a callback start on the
// next tick.
func (e *Entity) AddMods(mods ...Modifier) {
	e.Mods = append(e.Mods, mods...)
}

// Orbit returns the active orbit, the first one in the list.
func (e *Entity) Orbit() *Orbit {
	for _, m := range e.Mods {
		if o, ok := m.(*Orbit); ok {
			return o
		}
	}
	return nil
}

// Radius returns the visual radius for the given base radius.
func (e *Entity) Radius(base float64) float64 {
	return base * e.Kind.HitboxScale() * e.Size
}

// RenderScale returns the draw scale: hazards pop in over their first five
// ticks and shrink while fading.
func (e *Entity) RenderScale(fadeTicks int) float64 {
	if !e.Alive {
		if fadeTicks <= 0 {
			return 0
		}
		s := float64(fadeTicks-e.Fade) / float64(fadeTicks)
		if s < 0 {
			return 0
		}
		return s
	}
	if e.Age < 5 {
		return 1 + float64(5-e.Age)/5*2
	}
	return 1
}
