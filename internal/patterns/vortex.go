package patterns

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/scenario"
)

// vortex fires rings of tidal-locked stars that spiral out, reverse their
// spin and finally break away in straight lines.
type vortex struct{}

func (vortex) ID() string    { return "vortex" }
func (vortex) Title() string { return "Vortex" }

func (v vortex) Build(_ *log.Logger) (*scenario.Scenario, error) {
	sc := scenario.New(v.ID(), v.Title())
	sc.Description = "Tidal-locked stars spiral out, reverse and break away."
	sc.AddArena(1400, 840, 40)
	sc.Player.Pos = geom.V(0, 300)

	arm := hazard.DefaultTemplate()
	arm.Kind = hazard.KindStar
	arm.Speed = 1.5
	arm.Mods = []hazard.Modifier{
		hazard.NewOrbit(3).Accel(-0.02).Until(1).From(20).Locked(),
		hazard.NewColorCycle(0.05),
		hazard.ModifyAt(120, func(o *hazard.Orbit) { o.SetOmega(-o.Omega()) }),
		hazard.RemoveModsAt[*hazard.Orbit](200),
		hazard.AddModsAt(200, hazard.Accel(0.1).Until(6)),
		hazard.Timer(480),
	}
	sc.Templates["arm"] = arm

	sc.Emitters = []scenario.Emitter{
		{Name: "arm", Template: arm, Ring: 6, Every: 40, Turn: 7},
	}
	return sc, nil
}
