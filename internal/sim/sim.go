// Package sim drives one hazard simulation: it loads a scenario's world into
// a spatial index and resolver, fires the scenario's emitters under the
// pressure ramp, advances the hazard pool and renders the result.
package sim

import (
	"errors"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/bvh"
	"github.com/vovakirdan/danmaku/internal/collision"
	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/scenario"
)

// ErrNoScenario is returned when a simulation is created without a scenario.
var ErrNoScenario = errors.New("sim: no scenario")

// Options configures a simulation.
type Options struct {
	Config config.SimConfig
	Seed   int64
	Logger *log.Logger
}

// Stats summarizes a run.
type Stats struct {
	Scenario string
	Seed     int64
	hazard.Stats
	Level    float64 // pressure level at the last tick
	Live     int     // hazards alive at the last tick
	Failures int     // emitter fires rejected by the pool
}

type emitter struct {
	scenario.Emitter
	turn   float64
	nextAt int
}

// Sim owns the world, the pool and the emitters of one run. It is not safe
// for concurrent use.
type Sim struct {
	opts     Options
	logger   *log.Logger
	sc       *scenario.Scenario
	index    *bvh.Index
	resolver *collision.Resolver
	player   *Player
	pool     *hazard.Pool
	pressure *config.DifficultyManager
	emitters []*emitter
	failures int
	level    float64
}

// New builds a simulation for sc.
func New(sc *scenario.Scenario, opts Options) (*Sim, error) {
	if sc == nil {
		return nil, ErrNoScenario
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Sim{
		opts:     opts,
		logger:   opts.Logger.With("scenario", sc.ID),
		pressure: config.NewDifficultyManager(opts.Config.Pressure),
	}
	s.load(sc, 0)
	s.pool = hazard.NewPool(opts.Config.Hazards, hazard.Env{
		Resolver: s.resolver,
		Player:   s.player,
		Logger:   s.logger,
		Seed:     opts.Seed,
	})
	s.logger.Debug("world loaded", "objects", len(sc.World.Objects), "enemies", len(sc.World.Enemies), "depth", s.index.Depth())
	return s, nil
}

// load indexes the scenario's world and schedules its emitters from tick.
func (s *Sim) load(sc *scenario.Scenario, tick int) {
	s.sc = sc
	s.index = bvh.Build(sc.World.Objects)
	s.resolver = collision.NewResolver(s.index, sc.World)
	if n := s.opts.Config.Collision.SettleIterations; n > 0 {
		s.resolver.SettleIterations = n
	}

	hit := sc.World.NewPrimitive(geom.Circle{C: sc.Player.Pos, R: sc.Player.Radius}, nil)
	s.player = &Player{
		pos:         sc.Player.Pos,
		radius:      sc.Player.Radius,
		hitID:       hit.ID,
		projectiles: sc.Player.Projectiles,
	}

	s.emitters = s.emitters[:0]
	for _, em := range sc.Emitters {
		s.emitters = append(s.emitters, &emitter{Emitter: em, nextAt: tick + em.Start})
	}
}

// Reload swaps in a new scenario. The world, resolver, player and emitters
// are rebuilt; hazards already in flight keep flying and now collide with
// the new world.
func (s *Sim) Reload(sc *scenario.Scenario) error {
	if sc == nil {
		return ErrNoScenario
	}
	prev := s.player
	s.load(sc, s.pool.Tick())
	s.player.damage, s.player.hits = prev.damage, prev.hits
	s.pool.SetResolver(s.resolver)
	s.pool.SetPlayer(s.player)
	s.logger = s.opts.Logger.With("scenario", sc.ID)
	s.logger.Info("scenario reloaded", "objects", len(sc.World.Objects), "emitters", len(sc.Emitters))
	return nil
}

// Scenario returns the loaded scenario.
func (s *Sim) Scenario() *scenario.Scenario { return s.sc }

// Player returns the stand-in hit target.
func (s *Sim) Player() *Player { return s.player }

// Pool returns the hazard pool.
func (s *Sim) Pool() *hazard.Pool { return s.pool }

// Resolver returns the collision resolver for the loaded world.
func (s *Sim) Resolver() *collision.Resolver { return s.resolver }

// Tick returns the number of completed steps.
func (s *Sim) Tick() int { return s.pool.Tick() }

// Snapshot returns the render view of the pool.
func (s *Sim) Snapshot() hazard.Snapshot { return s.pool.Snapshot() }

// Stats returns the run totals so far.
func (s *Sim) Stats() Stats {
	return Stats{
		Scenario: s.sc.ID,
		Seed:     s.opts.Seed,
		Stats:    s.pool.Stats(),
		Level:    s.level,
		Live:     s.pool.Len(),
		Failures: s.failures,
	}
}

// Run steps the simulation n times and returns the totals.
func (s *Sim) Run(n int) Stats {
	for i := 0; i < n; i++ {
		s.Step()
	}
	return s.Stats()
}

// Step fires due emitters and advances the pool by one tick.
func (s *Sim) Step() hazard.StepResult {
	tick := s.pool.Tick()
	score := s.pool.Stats().Absorbed
	s.level = s.pressure.Level(score, tick)

	for _, em := range s.emitters {
		if tick < em.nextAt {
			continue
		}
		if em.Stop > 0 && tick >= em.Stop {
			continue
		}
		s.fire(em, score, tick)
		if em.Every <= 0 {
			em.nextAt = math.MaxInt
		} else {
			em.nextAt = tick + s.pressure.Interval(em.Every, score, tick)
		}
	}
	return s.pool.Update()
}

func (s *Sim) fire(em *emitter, score, tick int) {
	t := em.Template.Clone()
	if em.HasPos {
		t.Pos = em.Pos
	}
	t.Speed = s.pressure.Speed(t.Speed, score, tick)
	if !t.RandomDir {
		if em.Aim {
			t.Dir = geom.HeadingTo(t.Pos, s.player.pos)
		}
		t.Dir += em.turn
	}
	em.turn += em.Turn

	n := s.pressure.RingCount(em.Ring, score, tick)
	if _, err := s.pool.SpawnRing(t, n); err != nil {
		s.failures++
		s.logger.Warn("emitter fire rejected", "template", em.Name, "tick", tick, "error", err)
	}
}
