package sim

import (
	"github.com/vovakirdan/danmaku/internal/collision"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
)

// Player is a stationary stand-in for the hit target. It records the damage
// it takes.
type Player struct {
	pos         geom.Vec
	radius      float64
	hitID       int
	projectiles []hazard.Projectile
	damage      float64
	hits        int
}

func (p *Player) Position() geom.Vec { return p.pos }
func (p *Player) HitRadius() float64 { return p.radius }
func (p *Player) HitID() int { return p.hitID }
func (p *Player) Projectiles() []hazard.Projectile { return p.projectiles }

// Damage implements hazard.Player.
func (p *Player) Damage(amount float64) {
	p.damage += amount
	p.hits++
}

// Taken returns the total damage and the number of hits taken.
func (p *Player) Taken() (float64, int) { return p.damage, p.hits }

// MoveTo places the player at pos, pushed out of any solid geometry it
// would overlap.
func (s *Sim) MoveTo(pos geom.Vec) geom.Vec {
	res := s.resolver.Settle(geom.Circle{C: s.player.pos, R: s.player.radius}, pos, s.playerFilter())
	s.player.pos = res.Pos
	return res.Pos
}

// Nudge moves the player by d.
func (s *Sim) Nudge(d geom.Vec) geom.Vec {
	return s.MoveTo(s.player.pos.Add(d))
}

func (s *Sim) playerFilter() collision.Filter {
	return collision.Filter{IgnoreIDs: []int{s.player.hitID}}
}
