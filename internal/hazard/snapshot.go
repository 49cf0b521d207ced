package hazard

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/geom"
)

// View is the render-relevant state of one entity.
type View struct {
	ID        int
	Pos       geom.Vec
	RenderDir float64
	Color     Color
	Kind      Kind
	Size      float64
	Radius    float64
	Alpha     float64
	Scale     float64
	Indicator bool
	Alive     bool
}

// Snapshot is an ordered, read-only copy of the pool for renderers.
type Snapshot struct {
	Tick     int
	Entities []View
}

// Snapshot copies the pool in spawn order. Fading entities are included
// with Alive false so renderers can draw the death shrink.
func (p *Pool) Snapshot() Snapshot {
	snap := Snapshot{Tick: p.tick, Entities: make([]View, 0, len(p.entities))}
	for _, e := range p.entities {
		snap.Entities = append(snap.Entities, View{
			ID:        e.ID,
			Pos:       e.Pos,
			RenderDir: e.RenderDir,
			Color:     e.Color,
			Kind:      e.Kind,
			Size:      e.Size,
			Radius:    e.Radius(p.cfg.BaseRadius),
			Alpha:     e.Alpha,
			Scale:     e.RenderScale(p.cfg.FadeTicks),
			Indicator: e.Indicator,
			Alive:     e.Alive,
		})
	}
	return snap
}

// Alive returns only the views of alive entities.
func (s Snapshot) Alive() []View {
	out := make([]View, 0, len(s.Entities))
	for _, v := range s.Entities {
		if v.Alive {
			out = append(out, v)
		}
	}
	return out
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := uint64(s.Tick) //#nosec G115 -- hash computation
	for _, v := range s.Entities {
		h = h*31 + uint64(v.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(v.Pos.X)
		h = h*31 + math.Float64bits(v.Pos.Y)
		h = h*31 + math.Float64bits(v.RenderDir)
		h = h*31 + math.Float64bits(v.Color.R)
		h = h*31 + math.Float64bits(v.Color.G)
		h = h*31 + math.Float64bits(v.Color.B)
		h = h*31 + math.Float64bits(v.Scale)
		if v.Alive {
			h = h*31 + 1
		}
	}
	return h
}
