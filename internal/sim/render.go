package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/world"
)

// Camera returns a camera centered on the world origin for a w x h screen.
func (s *Sim) Camera(w, h int) core.Camera {
	v := s.opts.Config.View
	if v.UnitsPerColumn <= 0 {
		v.UnitsPerColumn = 20
	}
	if v.UnitsPerRow <= 0 {
		v.UnitsPerRow = 40
	}
	return core.Camera{UnitsPerColumn: v.UnitsPerColumn, UnitsPerRow: v.UnitsPerRow, W: w, H: h}
}

// Render draws the world, the player and every hazard into screen, with a
// one-line status bar at the top.
func (s *Sim) Render(screen *core.Screen, cam core.Camera) {
	screen.Clear()

	for _, obj := range s.sc.World.Objects {
		if s.sc.Hidden[obj.ID] {
			continue
		}
		for _, p := range obj.Primitives {
			if !p.Enabled {
				continue
			}
			glyph, color := primitiveStyle(p)
			drawShape(screen, cam, p.Shape, glyph, color)
		}
	}
	for _, p := range s.sc.World.Enemies {
		if p.Enabled {
			drawShape(screen, cam, p.Shape, '▒', core.ColorRed)
		}
	}

	for _, pr := range s.player.projectiles {
		x, y := cam.ToCell(pr.Pos.X, pr.Pos.Y)
		glyph := '|'
		if pr.Grounded {
			glyph = '^'
		}
		screen.SetCell(x, y, glyph, core.ColorBrightCyan)
	}
	px, py := cam.ToCell(s.player.pos.X, s.player.pos.Y)
	screen.SetCell(px, py, '@', core.ColorBrightYellow)

	for _, v := range s.pool.Snapshot().Entities {
		x, y := cam.ToCell(v.Pos.X, v.Pos.Y)
		screen.SetCell(x, y, hazardGlyph(v), hazardColor(v))
	}

	s.drawStatus(screen)
}

func (s *Sim) drawStatus(screen *core.Screen) {
	st := s.pool.Stats()
	damage, hits := s.player.Taken()
	line := fmt.Sprintf(" %s  tick %d  hazards %d  hits %d (%.0f)  absorbed %d  walls %d  pressure %.2f ",
		s.sc.Name, s.pool.Tick(), s.pool.Len(), hits, damage, st.Absorbed, st.WallHits, s.level)
	screen.DrawTextColor(0, 0, line, core.ColorGray)
}

func primitiveStyle(p *world.Primitive) (rune, core.Color) {
	switch {
	case p.Tags.Has(world.TagRiver):
		return '≈', core.ColorBlue
	case p.Tags.Has(world.TagEnemy):
		return '▒', core.ColorRed
	default:
		return '█', core.ColorWhite
	}
}

// drawShape fills every cell whose center lies inside shape. Shapes thinner
// than a cell still mark the cell under their center.
func drawShape(screen *core.Screen, cam core.Camera, shape geom.Shape, glyph rune, color core.Color) {
	bb := shape.Bounds()
	r := cam.Span(bb.L, bb.B, bb.R, bb.T)
	drawn := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			wx, wy := cam.CellCenter(x, y)
			if inside(shape, geom.V(wx, wy)) {
				screen.SetCell(x, y, glyph, color)
				drawn = true
			}
		}
	}
	if !drawn {
		c := shape.Center()
		x, y := cam.ToCell(c.X, c.Y)
		screen.SetCell(x, y, glyph, color)
	}
}

func inside(shape geom.Shape, p geom.Vec) bool {
	switch s := shape.(type) {
	case geom.Circle:
		return p.Distance(s.C) <= s.R
	case geom.Box:
		lo, hi := s.Min(), s.Max()
		return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
	}
	return false
}

func hazardGlyph(v hazard.View) rune {
	switch {
	case !v.Alive:
		return '·'
	case v.Kind == hazard.KindArrow:
		return arrowGlyph(v.RenderDir)
	default:
		return v.Kind.Glyph()
	}
}

// arrowGlyph picks the closest of eight directions for heading deg.
func arrowGlyph(deg float64) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	i := int(math.Round(geom.NormalizeDeg(deg)/45)) % len(arrows)
	return arrows[i]
}

func hazardColor(v hazard.View) core.Color {
	if v.Indicator {
		return core.ColorGray
	}
	return core.Dim(core.RGB(v.Color.R, v.Color.G, v.Color.B), v.Alpha)
}
