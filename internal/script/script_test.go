package script

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
)

type stubPlayer struct{ pos geom.Vec }

func (s stubPlayer) Position() geom.Vec { return s.pos }
func (s stubPlayer) HitRadius() float64 { return 0 }
func (s stubPlayer) HitID() int { return 0 }
func (s stubPlayer) Projectiles() []hazard.Projectile { return nil }
func (s stubPlayer) Damage(float64) {}

func newPool(env hazard.Env) *hazard.Pool {
	return hazard.NewPool(config.DefaultSimConfig().Hazards, env)
}

func spawnWith(t *testing.T, p *hazard.Pool, mods ...hazard.Modifier) *hazard.Entity {
	t.Helper()
	e, err := p.Spawn(hazard.DefaultTemplate().With(mods...))
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	return e
}

func TestScriptDrivesEntity(t *testing.T) {
	prog, err := Compile("zigzag", `
fire := func(h, n) {
	h.turn(90)
	h.set_speed(h.speed * 2)
	if n == 1 {
		h.kill()
	}
}
`, nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p := newPool(hazard.Env{})
	e := spawnWith(t, p, prog.Modifier(1, 1))

	p.Update()
	if e.Dir != 90 || e.Speed != 10 {
		t.Errorf("after first fire: dir=%v speed=%v, expected 90 and 10", e.Dir, e.Speed)
	}
	p.Update()
	if e.Dir != 180 || e.Speed != 20 {
		t.Errorf("after second fire: dir=%v speed=%v, expected 180 and 20", e.Dir, e.Speed)
	}
	if e.Alive {
		t.Error("script should have killed the entity on its second fire")
	}
}

func TestScriptSpawn(t *testing.T) {
	shard := hazard.DefaultTemplate()
	shard.Speed = 0
	lookup := func(name string) (*hazard.Template, bool) {
		if name == "shard" {
			return shard, true
		}
		return nil, false
	}

	tests := []struct {
		name    string
		src     string
		wantLen int
		wantErr string
	}{
		{"known template", `fire := func(h, n) { h.spawn("shard", 3) }`, 4, ""},
		{"default count", `fire := func(h, n) { h.spawn("shard") }`, 2, ""},
		{"unknown template", `fire := func(h, n) { h.spawn("laser", 3) }`, 1, "unknown template"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := Compile(tc.name, tc.src, lookup)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			p := newPool(hazard.Env{})
			spawnWith(t, p, prog.Modifier(0, 2))

			p.Update()
			res := p.Update()
			if p.Len() != tc.wantLen {
				t.Errorf("Len() = %d, expected %d", p.Len(), tc.wantLen)
			}
			if tc.wantErr == "" && len(res.Errors) != 0 {
				t.Errorf("unexpected errors %v", res.Errors)
			}
			if tc.wantErr != "" && (len(res.Errors) != 1 || !strings.Contains(res.Errors[0].Error(), tc.wantErr)) {
				t.Errorf("Errors = %v, expected one containing %q", res.Errors, tc.wantErr)
			}
		})
	}
}

func TestScriptAim(t *testing.T) {
	prog, err := Compile("aim", `fire := func(h, n) { h.aim() }`, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := newPool(hazard.Env{Player: stubPlayer{pos: geom.V(0, 1000)}})
	tmpl := hazard.DefaultTemplate().With(prog.Modifier(0, 1))
	tmpl.Speed = 0
	e, err := p.Spawn(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	p.Update()
	if math.Abs(e.Dir-90) > 1e-9 {
		t.Errorf("Dir = %v, expected 90", e.Dir)
	}
}

func TestScriptStdlib(t *testing.T) {
	prog, err := Compile("stdlib", `
math := import("math")
fire := func(h, n) { h.set_dir(math.pi) }
`, nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	p := newPool(hazard.Env{})
	e := spawnWith(t, p)
	if err := prog.Run(p, e, 0); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if e.Dir != math.Pi {
		t.Errorf("Dir = %v, expected pi", e.Dir)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		noFir bool
	}{
		{"missing fire", `a := 1`, true},
		{"syntax error", `fire := func(h, n) { h.kill( }`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.name, tc.src, nil)
			if err == nil {
				t.Fatal("Compile() expected error")
			}
			if tc.noFir && !errors.Is(err, ErrNoFire) {
				t.Errorf("Compile() error = %v, expected ErrNoFire", err)
			}
		})
	}
}

func TestScriptRuntimeErrorIsIsolated(t *testing.T) {
	prog, err := Compile("broken", `fire := func(h, n) { h.set_speed("fast") }`, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := newPool(hazard.Env{})
	e := spawnWith(t, p, prog.Modifier(0, 1))
	other := spawnWith(t, p)

	res := p.Update()
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, expected 1", res.Errors)
	}
	if !e.Alive || other.Age != 1 {
		t.Error("a failing script must not disturb the update")
	}
}
