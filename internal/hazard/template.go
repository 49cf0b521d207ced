package hazard

import "github.com/vovakirdan/danmaku/internal/geom"

// Template describes a hazard to be spawned. Spawning deep-copies it, so
// one template can be fired any number of times.
type Template struct {
	Pos geom.Vec
	Dir float64
	// RandomDir picks a uniformly random heading at spawn time and
	// ignores Dir.
	RandomDir bool

	Speed       float64
	Kind        Kind
	Color       Color
	Size        float64
	Damage      float64
	Alpha       float64
	Indicator   bool
	Destroyable bool
	IgnoreWalls bool
	Group       string

	Mods []Modifier
}

// DefaultTemplate returns a plain white orb.
func DefaultTemplate() *Template {
	return &Template{
		Speed:       5,
		Kind:        KindOrb,
		Color:       White,
		Size:        1,
		Damage:      1,
		Alpha:       1,
		Destroyable: true,
	}
}

// Clone returns a deep copy; modifier runtime state is not shared.
func (t *Template) Clone() *Template {
	c := *t
	c.Mods = cloneMods(t.Mods)
	return &c
}

// With returns a clone with extra modifiers appended.
func (t *Template) With(mods ...Modifier) *Template {
	c := t.Clone()
	c.Mods = append(c.Mods, cloneMods(mods)...)
	return c
}

// At returns a clone placed at pos heading along dir.
func (t *Template) At(pos geom.Vec, dir float64) *Template {
	c := t.Clone()
	c.Pos = pos
	c.Dir = dir
	c.RandomDir = false
	return c
}

// AsIndicator returns a visual-only copy used to telegraph an attack.
func (t *Template) AsIndicator() *Template {
	c := t.Clone()
	c.Indicator = true
	c.Alpha = 0.5
	return c
}

func cloneMods(mods []Modifier) []Modifier {
	if mods == nil {
		return nil
	}
	out := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if m == nil {
			continue
		}
		out = append(out, m.Clone())
	}
	return out
}
