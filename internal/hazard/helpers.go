package hazard

// Relative controls how a child spawned from a parent is placed.
type Relative struct {
	Pos bool // offset the template position by the parent's position
	Dir bool // rotate the template heading by the parent's heading
}

// FromParent places children relative to the parent in both position and
// heading.
var FromParent = Relative{Pos: true, Dir: true}

// Timer kills the entity when it reaches age delay.
func Timer(delay int) *TimedCallback {
	return At(delay, func(_ *Pool, e *Entity, _ int) error {
		e.Kill()
		return nil
	}).Named("timer")
}

// AddModsAt appends copies of mods when the entity reaches age delay.
func AddModsAt(delay int, mods ...Modifier) *TimedCallback {
	return At(delay, func(_ *Pool, e *Entity, _ int) error {
		e.AddMods(cloneMods(mods)...)
		return nil
	}).Named("add-mods")
}

// ModifyAt calls fn on every modifier of type T when the entity reaches age
// delay. Use it to retune a running modifier, e.g. flip an orbit.
func ModifyAt[T Modifier](delay int, fn func(T)) *TimedCallback {
	return At(delay, func(_ *Pool, e *Entity, _ int) error {
		for _, m := range e.Mods {
			if v, ok := m.(T); ok {
				fn(v)
			}
		}
		return nil
	}).Named("modify")
}

// RemoveModsAt drops every modifier of type T when the entity reaches age
// delay.
func RemoveModsAt[T Modifier](delay int) *TimedCallback {
	return At(delay, func(_ *Pool, e *Entity, _ int) error {
		kept := make([]Modifier, 0, len(e.Mods))
		for _, m := range e.Mods {
			if _, ok := m.(T); !ok {
				kept = append(kept, m)
			}
		}
		e.Mods = kept
		return nil
	}).Named("remove-mods")
}

// ReplaceAt spawns n copies of t around the entity at age delay and kills
// the entity.
func ReplaceAt(delay int, t *Template, n int, rel Relative) *TimedCallback {
	return At(delay, func(p *Pool, e *Entity, _ int) error {
		e.Kill()
		_, err := p.SpawnFrom(e, t, n, rel)
		return err
	}).Named("replace")
}

// SpawnEvery spawns n copies of t around the entity every period ticks,
// starting at age delay.
func SpawnEvery(period, delay int, t *Template, n int, rel Relative) *TimedCallback {
	return Every(period, delay, func(p *Pool, e *Entity, _ int) error {
		_, err := p.SpawnFrom(e, t, n, rel)
		return err
	}).Named("spawn")
}
