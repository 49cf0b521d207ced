package patterns

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/scenario"
)

// fireworks launches telegraphed rockets that burst into colored sparks.
type fireworks struct{}

func (fireworks) ID() string    { return "fireworks" }
func (fireworks) Title() string { return "Fireworks" }

func (f fireworks) Build(_ *log.Logger) (*scenario.Scenario, error) {
	sc := scenario.New(f.ID(), f.Title())
	sc.Description = "Rockets slow to a stop and burst into sparks."
	sc.AddArena(1400, 840, 40)
	sc.Player.Pos = geom.V(0, 320)

	spark := hazard.DefaultTemplate()
	spark.Kind = hazard.KindRice
	spark.Speed = 1
	spark.Mods = []hazard.Modifier{
		hazard.NewColorCycle(0.2).From(0),
		hazard.AddModsAt(20, hazard.Accel(0.08).Until(5)),
		hazard.Timer(160),
	}

	rocket := hazard.DefaultTemplate()
	rocket.Kind = hazard.KindBall
	rocket.Pos = geom.V(0, 380)
	rocket.Dir = 270
	rocket.Speed = 9
	rocket.Color = hazard.RGB(255, 200, 80)
	rocket.Destroyable = false
	rocket.Mods = []hazard.Modifier{
		hazard.Accel(-0.15).Until(0),
		hazard.ReplaceAt(60, spark, 16, hazard.Relative{Pos: true}),
	}

	flare := rocket.AsIndicator()
	flare.Mods = []hazard.Modifier{hazard.Accel(-0.15).Until(0), hazard.Timer(30)}

	sc.Templates["spark"] = spark
	sc.Templates["rocket"] = rocket
	sc.Templates["flare"] = flare

	sc.Emitters = []scenario.Emitter{
		{Name: "flare", Template: flare, Ring: 1, Every: 45},
		{Name: "rocket", Template: rocket, Ring: 1, Every: 45, Start: 20},
	}
	return sc, nil
}
