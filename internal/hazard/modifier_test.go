package hazard

import (
	"testing"

	"github.com/vovakirdan/danmaku/internal/geom"
)

func TestOrbitTidalLock(t *testing.T) {
	p := newTestPool(Env{})
	tmpl := DefaultTemplate().With(NewOrbit(3).Accel(0.5).Until(10).From(20).Locked())
	tmpl.Speed = 2
	e := mustSpawn(t, p, tmpl)
	o := e.Orbit()

	for i := 1; i <= 30; i++ {
		p.Update()
		if !near(e.Dir, o.Heading()) {
			t.Fatalf("tick %d: Dir = %v, expected orbit heading %v", i, e.Dir, o.Heading())
		}
		if !near(e.RenderDir, o.Heading()) {
			t.Fatalf("tick %d: RenderDir = %v, expected orbit heading %v", i, e.RenderDir, o.Heading())
		}
		if want := 20 + 2*float64(i); !near(o.Radius(), want) {
			t.Fatalf("tick %d: Radius() = %v, expected %v", i, o.Radius(), want)
		}
		if !near(distance(e.Pos, o.Center()), o.Radius()) {
			t.Fatalf("tick %d: entity off the orbit circle", i)
		}
	}
	if o.Omega() != 10 {
		t.Errorf("Omega() = %v, expected the cap 10", o.Omega())
	}
}

func TestOrbitFacesAlongPath(t *testing.T) {
	p := newTestPool(Env{})
	e := mustSpawn(t, p, DefaultTemplate().With(NewOrbit(5)))

	for i := 0; i < 10; i++ {
		prev := e.Pos
		p.Update()
		if want := geom.HeadingTo(prev, e.Pos); !near(e.Dir, want) {
			t.Errorf("tick %d: Dir = %v, expected path heading %v", i+1, e.Dir, want)
		}
	}
}

func TestFirstOrbitWins(t *testing.T) {
	p := newTestPool(Env{})
	e := mustSpawn(t, p, DefaultTemplate().With(NewOrbit(5), NewOrbit(-90)))
	p.Update()
	if got := e.Orbit().Heading(); got != 5 {
		t.Errorf("Heading() = %v, expected 5", got)
	}
	if second := e.Mods[1].(*Orbit); second.Heading() != 0 {
		t.Error("second orbit should never step")
	}
}

func TestSpin(t *testing.T) {
	tests := []struct {
		name     string
		spin     *Spin
		expected []float64
	}{
		{"from spawn heading", NewSpin(10), []float64{45, 55, 65}},
		{"explicit start", NewSpin(-20).From(0), []float64{0, -20, -40}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPool(Env{})
			e := mustSpawn(t, p, DefaultTemplate().At(geom.V(0, 0), 45).With(tc.spin))
			for i, want := range tc.expected {
				p.Update()
				if !near(e.RenderDir, want) {
					t.Errorf("tick %d: RenderDir = %v, expected %v", i+1, e.RenderDir, want)
				}
				if e.Dir != 45 {
					t.Errorf("tick %d: spin changed the motion heading to %v", i+1, e.Dir)
				}
			}
		})
	}
}

func TestAccelerateClonesAreIndependent(t *testing.T) {
	p := newTestPool(Env{})
	accel := Accel(0.5).Until(8)
	tmpl := DefaultTemplate().With(accel)
	tmpl.Speed = 1

	a := mustSpawn(t, p, tmpl)
	b := mustSpawn(t, p, tmpl)
	a.Speed = 4

	for i := 0; i < 3; i++ {
		p.Update()
	}
	if !near(a.Speed, 5.5) || !near(b.Speed, 2.5) {
		t.Errorf("speeds = %v, %v, expected 5.5, 2.5", a.Speed, b.Speed)
	}

	for i := 0; i < 20; i++ {
		p.Update()
	}
	if a.Speed != 8 || b.Speed != 8 {
		t.Errorf("speeds = %v, %v, expected both capped at 8", a.Speed, b.Speed)
	}
	if accel.Count() != 0 || tmpl.Mods[0].(*Accelerate).Count() != 0 {
		t.Error("template acceleration picked up runtime state")
	}
}

func TestAccelerate(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		accel    *Accelerate
		ticks    int
		expected float64
	}{
		{"uncapped", 0, Accel(1), 12, 12},
		{"capped", 0, Accel(1).Until(5), 12, 5},
		{"decelerate to cap", 5, Accel(-1).Until(2), 10, 2},
		{"delayed", 0, Accel(1).After(3), 5, 3},
		{"delay not reached", 0, Accel(1).After(3), 2, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPool(Env{})
			tmpl := DefaultTemplate().With(tc.accel)
			tmpl.Speed = tc.speed
			e := mustSpawn(t, p, tmpl)
			for i := 0; i < tc.ticks; i++ {
				p.Update()
			}
			if !near(e.Speed, tc.expected) {
				t.Errorf("Speed = %v, expected %v", e.Speed, tc.expected)
			}
		})
	}
}

func TestModifyAt(t *testing.T) {
	p := newTestPool(Env{})
	e := mustSpawn(t, p, DefaultTemplate().With(NewSpin(5), ModifyAt(2, func(s *Spin) {
		s.Rate = -5
	})))

	expected := []float64{0, 5, 10, 5, 0}
	for i, want := range expected {
		p.Update()
		if !near(e.RenderDir, want) {
			t.Errorf("tick %d: RenderDir = %v, expected %v", i+1, e.RenderDir, want)
		}
	}
}

func TestRemoveModsAt(t *testing.T) {
	p := newTestPool(Env{})
	e := mustSpawn(t, p, DefaultTemplate().At(geom.V(0, 0), 30).With(NewSpin(10), RemoveModsAt[*Spin](2)))

	p.Update()
	p.Update()
	if !near(e.RenderDir, 40) {
		t.Errorf("RenderDir before removal = %v, expected 40", e.RenderDir)
	}
	p.Update()
	if e.RenderDir != 30 {
		t.Errorf("RenderDir after removal = %v, expected the heading 30", e.RenderDir)
	}
	if len(e.Mods) != 1 {
		t.Errorf("len(Mods) = %d, expected 1", len(e.Mods))
	}
}

func TestTimedPassOrdering(t *testing.T) {
	tests := []struct {
		name     string
		mods     []Modifier
		ticks    int
		expected float64
	}{
		{"removed later in the pass is skipped", []Modifier{RemoveModsAt[*Accelerate](1), Accel(1)}, 1, 0},
		{"removed after it ran", []Modifier{Accel(1), RemoveModsAt[*Accelerate](1)}, 1, 1},
		{"added starts next tick", []Modifier{AddModsAt(1, Accel(1))}, 1, 0},
		{"added runs afterwards", []Modifier{AddModsAt(1, Accel(1))}, 3, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPool(Env{})
			tmpl := still().With(tc.mods...)
			e := mustSpawn(t, p, tmpl)
			for i := 0; i < tc.ticks; i++ {
				p.Update()
			}
			if !near(e.Speed, tc.expected) {
				t.Errorf("Speed = %v, expected %v", e.Speed, tc.expected)
			}
		})
	}
}

func TestTimer(t *testing.T) {
	p := newTestPool(Env{})
	e := mustSpawn(t, p, DefaultTemplate().With(Timer(5)))
	for i := 0; i < 4; i++ {
		p.Update()
	}
	if !e.Alive {
		t.Fatal("timer fired early")
	}
	p.Update()
	if e.Alive {
		t.Error("timer did not kill the entity at age 5")
	}
}

func TestColorCycleRunsWhileFading(t *testing.T) {
	p := newTestPool(Env{})
	e := mustSpawn(t, p, DefaultTemplate().With(NewColorCycle(0.1).From(0)))

	p.Update()
	if e.Color != Cycle(0) {
		t.Errorf("Color = %v, expected %v", e.Color, Cycle(0))
	}
	e.Kill()
	p.Update()
	if e.Color != Cycle(0.1) {
		t.Errorf("fading Color = %v, expected %v", e.Color, Cycle(0.1))
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
	}{
		{"orb", 1},
		{"rice", 0.75},
		{"ball", 1.5},
		{"bubble", 2},
		{"star", 1},
		{"arrow", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ok := ParseKind(tc.name)
			if !ok {
				t.Fatalf("ParseKind(%q) failed", tc.name)
			}
			if k.String() != tc.name {
				t.Errorf("String() = %q, expected %q", k.String(), tc.name)
			}
			if k.HitboxScale() != tc.scale {
				t.Errorf("HitboxScale() = %v, expected %v", k.HitboxScale(), tc.scale)
			}
		})
	}
	if _, ok := ParseKind("laser"); ok {
		t.Error("ParseKind(laser) should fail")
	}
}
