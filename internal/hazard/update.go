package hazard

import (
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/danmaku/internal/collision"
	"github.com/vovakirdan/danmaku/internal/geom"
)

// advance runs the per-tick pipeline on one alive entity:
// motion, visual modifiers, timed modifiers, then hit tests.
func (p *Pool) advance(e *Entity) {
	e.Age++

	if o := e.Orbit(); o != nil {
		o.step(e)
	} else {
		e.Pos = e.Pos.Add(geom.Polar(e.Dir, e.Speed))
	}

	spun := false
	for _, m := range e.Mods {
		switch v := m.(type) {
		case *Spin:
			v.step(e)
			spun = true
		case *ColorCycle:
			v.step(e, p.rng.Float64)
		}
	}

	p.timed(e)

	if !spun {
		e.RenderDir = e.Dir
	}

	if !e.Indicator && e.Alive {
		p.hitTest(e)
	}
}

// timed fires due accelerations and callbacks in list order. The pass walks
// a copy of the list as it was when the pass began: modifiers a callback
// appends start next tick, modifiers a callback removes are skipped. Callbacks
// may edit e.Mods in place.
func (p *Pool) timed(e *Entity) {
	p.scratch = append(p.scratch[:0], e.Mods...)
	edited := false
	for _, m := range p.scratch {
		if edited && !slices.Contains(e.Mods, m) {
			continue
		}
		switch v := m.(type) {
		case *Accelerate:
			if v.due(e.Age) {
				v.apply(e)
			}
		case *TimedCallback:
			if v.due(e.Age) {
				if err := p.invoke(v, e); err != nil {
					p.fail(e, v.Name, err)
				}
				edited = true
			}
		}
	}
	clear(p.scratch)
}

// invoke runs a callback, turning a panic into an error so one broken
// callback cannot abort the pool update.
func (p *Pool) invoke(t *TimedCallback, e *Entity) (err error) {
	n := t.count
	t.count++
	if t.Fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hazard: callback %q panicked: %v", t.Name, r)
		}
	}()
	if err := t.Fn(p, e, n); err != nil {
		return fmt.Errorf("hazard: callback %q: %w", t.Name, err)
	}
	return nil
}

func (p *Pool) hitTest(e *Entity) {
	r := p.hitRadius(e)

	if e.Destroyable && p.player != nil && e.Age > p.cfg.SpawnGrace {
		for _, pr := range p.player.Projectiles() {
			reach := p.cfg.ProjectileReach
			if pr.Grounded {
				reach = p.cfg.GroundedReach
			}
			if distance(e.Pos, pr.Pos) < r+reach {
				e.Kill()
				p.result.Absorbed++
				break
			}
		}
	}

	if e.Alive && e.Destroyable && !e.IgnoreWalls && p.resolver != nil && e.Age%p.wallInterval(e) == 0 {
		f := collision.Filter{IgnoreTags: p.cfg.WallIgnoreTags}
		if p.player != nil {
			f.IgnoreIDs = []int{p.player.HitID()}
		}
		if p.resolver.ResolveMove(geom.Circle{C: e.Pos, R: r}, e.Pos, f).Collided {
			e.Kill()
			p.result.WallHits++
		}
	}

	if e.Alive && p.player != nil && !e.dealt && e.Age > p.cfg.SpawnGrace {
		if distance(e.Pos, p.player.Position()) < r+p.player.HitRadius() {
			e.dealt = true
			p.player.Damage(e.Damage)
			p.result.PlayerHits++
			p.result.Damage += e.Damage
			if e.Destroyable {
				e.Kill()
			}
		}
	}
}

// wallInterval returns how many ticks apart wall checks run for e. Young
// hazards and hazards near the player are checked every tick; the interval
// grows with distance and jumps once the hazard has nearly stopped.
func (p *Pool) wallInterval(e *Entity) int {
	c := p.cfg.Cadence
	d := math.Inf(1)
	if p.player != nil {
		d = distance(e.Pos, p.player.Position())
	}

	interval := c.Far
	switch {
	case e.Age <= c.WarmupTicks || d < c.NearDistance:
		interval = c.Near
	case d < c.FarDistance:
		interval = c.Mid
	}
	if e.Age > c.WarmupTicks && e.Speed <= c.StationarySpeed {
		interval = c.Stationary
	}
	return max(interval, 1)
}
