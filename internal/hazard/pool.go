package hazard

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/collision"
	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/geom"
)

var (
	// ErrSpawnBudget is returned when a tick has already spawned
	// MaxSpawnsPerTick hazards.
	ErrSpawnBudget = errors.New("hazard: spawn budget exhausted for this tick")
	// ErrGeneration is returned when a spawn chain exceeds MaxGeneration.
	ErrGeneration = errors.New("hazard: spawn generation limit reached")
)

// Projectile is a player-controlled shot that can absorb hazards.
type Projectile struct {
	Pos      geom.Vec
	Grounded bool
}

// Player is the hit target of the simulation.
type Player interface {
	Position() geom.Vec
	HitRadius() float64
	// HitID is the primitive ID of the player's own hit circle, which
	// wall checks ignore.
	HitID() int
	Projectiles() []Projectile
	Damage(amount float64)
}

// Env wires a pool to its collaborators. Any field may be left nil.
type Env struct {
	Resolver *collision.Resolver
	Player   Player
	Logger   *log.Logger
	Seed     int64
}

// StepResult summarizes one Update.
type StepResult struct {
	Tick       int
	Spawned    int
	Removed    int
	Absorbed   int // destroyed by player projectiles
	WallHits   int
	PlayerHits int
	Damage     float64
	Errors     []error
}

// Stats accumulates StepResults over the pool's lifetime.
type Stats struct {
	Ticks      int
	Spawned    int
	Removed    int
	Absorbed   int
	WallHits   int
	PlayerHits int
	Damage     float64
	Errors     int
	Peak       int
}

// Pool owns every hazard of one simulation. A Pool is not safe for
// concurrent use; each simulation owns its own.
type Pool struct {
	cfg      config.HazardConfig
	resolver *collision.Resolver
	player   Player
	logger   *log.Logger
	rng      *rand.Rand

	entities   []*Entity
	nextID     int
	tick       int
	tickSpawns int
	result     StepResult
	stats      Stats
	scratch    []Modifier // timed pass copy of one entity's modifiers
}

// NewPool creates an empty pool.
func NewPool(cfg config.HazardConfig, env Env) *Pool {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pool{
		cfg:      cfg,
		resolver: env.Resolver,
		player:   env.Player,
		logger:   logger,
		rng:      rand.New(rand.NewSource(env.Seed)),
		nextID:   1,
	}
}

// SetResolver swaps the world the pool collides against, e.g. after a
// stage reload.
func (p *Pool) SetResolver(r *collision.Resolver) { p.resolver = r }

// SetPlayer swaps the hit target.
func (p *Pool) SetPlayer(pl Player) { p.player = pl }

// Player returns the current hit target, or nil.
func (p *Pool) Player() Player { return p.player }

// Config returns the pool's tunables.
func (p *Pool) Config() config.HazardConfig { return p.cfg }

// Tick returns the number of completed updates.
func (p *Pool) Tick() int { return p.tick }

// Len returns the number of entities, fading ones included.
func (p *Pool) Len() int { return len(p.entities) }

// Entities returns the live slice in spawn order. Callers must not keep it
// across updates.
func (p *Pool) Entities() []*Entity { return p.entities }

// Stats returns lifetime totals.
func (p *Pool) Stats() Stats { return p.stats }

// Rand returns the pool's deterministic random source.
func (p *Pool) Rand() *rand.Rand { return p.rng }

// Clear removes every entity.
func (p *Pool) Clear() {
	p.entities = nil
}

// Spawn adds one copy of t.
func (p *Pool) Spawn(t *Template) (*Entity, error) {
	if err := p.admit(1); err != nil {
		return nil, err
	}
	return p.add(t, p.heading(t), 0), nil
}

// SpawnRing adds n copies of t with headings spaced 360/n apart, starting
// at t's heading. t itself is not modified.
func (p *Pool) SpawnRing(t *Template, n int) ([]*Entity, error) {
	return p.ring(t, p.heading(t), n, 0)
}

// SpawnFrom adds n copies of t around parent. With rel.Dir the template
// heading is rotated by the parent's; with rel.Pos the template position is
// an offset from the parent's. A random-heading template ignores rel.Dir.
func (p *Pool) SpawnFrom(parent *Entity, t *Template, n int, rel Relative) ([]*Entity, error) {
	gen := parent.Generation + 1
	if p.cfg.MaxGeneration > 0 && gen > p.cfg.MaxGeneration {
		return nil, fmt.Errorf("%w: generation %d", ErrGeneration, gen)
	}
	c := t.Clone()
	dir := p.heading(c)
	if !t.RandomDir && rel.Dir {
		dir += parent.Dir
	}
	if rel.Pos {
		c.Pos = c.Pos.Add(parent.Pos)
	}
	return p.ring(c, dir, n, gen)
}

func (p *Pool) ring(t *Template, dir float64, n, gen int) ([]*Entity, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := p.admit(n); err != nil {
		return nil, err
	}
	out := make([]*Entity, 0, n)
	step := 360 / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, p.add(t, dir, gen))
		dir += step
	}
	return out, nil
}

func (p *Pool) heading(t *Template) float64 {
	if t.RandomDir {
		return p.rng.Float64() * 360
	}
	return t.Dir
}

func (p *Pool) admit(n int) error {
	if p.cfg.MaxSpawnsPerTick > 0 && p.tickSpawns+n > p.cfg.MaxSpawnsPerTick {
		return fmt.Errorf("%w: %d spawned, %d requested", ErrSpawnBudget, p.tickSpawns, n)
	}
	return nil
}

func (p *Pool) add(t *Template, dir float64, gen int) *Entity {
	e := newEntity(t, dir)
	e.ID = p.nextID
	e.Generation = gen
	p.nextID++
	p.tickSpawns++
	p.entities = append(p.entities, e)
	return e
}

// Update advances every entity by one tick. Entities spawned during the
// update are appended and first move on the next tick. An entity killed
// during the update, by itself or by a sibling's callback, starts fading on
// the next one. Spawned counts every
// spawn since the previous Update, so emitters firing between updates are
// included and share the per-tick budget. Callback errors are
// logged and returned in the result; they never stop the update.
func (p *Pool) Update() StepResult {
	p.result = StepResult{}

	n := len(p.entities)
	for _, e := range p.entities {
		e.fading = !e.Alive
	}
	for i := 0; i < n && i < len(p.entities); i++ {
		e := p.entities[i]
		switch {
		case e.removed:
		case e.Alive:
			p.advance(e)
		case e.fading:
			p.fade(e)
		}
	}

	p.result.Removed = p.compact()
	p.tick++
	p.result.Tick = p.tick
	p.result.Spawned = p.tickSpawns
	p.tickSpawns = 0

	p.record(p.result)
	return p.result
}

func (p *Pool) fade(e *Entity) {
	for _, m := range e.Mods {
		if c, ok := m.(*ColorCycle); ok {
			c.step(e, p.rng.Float64)
		}
	}
	e.Fade++
	if e.Fade > p.cfg.FadeTicks {
		e.removed = true
	}
}

// compact drops removed entities in place, keeping order.
func (p *Pool) compact() int {
	kept := p.entities[:0]
	for _, e := range p.entities {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	removed := len(p.entities) - len(kept)
	for i := len(kept); i < len(p.entities); i++ {
		p.entities[i] = nil
	}
	p.entities = kept
	return removed
}

func (p *Pool) record(r StepResult) {
	s := &p.stats
	s.Ticks = r.Tick
	s.Spawned += r.Spawned
	s.Removed += r.Removed
	s.Absorbed += r.Absorbed
	s.WallHits += r.WallHits
	s.PlayerHits += r.PlayerHits
	s.Damage += r.Damage
	s.Errors += len(r.Errors)
	if len(p.entities) > s.Peak {
		s.Peak = len(p.entities)
	}
}

func (p *Pool) fail(e *Entity, name string, err error) {
	p.result.Errors = append(p.result.Errors, err)
	p.logger.Warn("hazard callback failed", "entity", e.ID, "callback", name, "age", e.Age, "error", err)
}

// hitRadius returns the entity's collision radius.
func (p *Pool) hitRadius(e *Entity) float64 {
	return e.Radius(p.cfg.BaseRadius) * p.cfg.HitboxFactor
}

func distance(a, b geom.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
