// Package script runs tengo programs as hazard callbacks.
//
// A script defines a fire function that receives the engine map and the
// number of previous fires:
//
//	fire := func(h, n) {
//		if n == 2 { h.kill() }
//		h.turn(15)
//		h.spawn("shard", 4)
//	}
package script

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
)

// ErrNoFire is returned when a script does not define a fire function.
var ErrNoFire = errors.New("script: fire function not defined")

// Lookup resolves a template name used by spawn().
type Lookup func(name string) (*hazard.Template, bool)

const dispatch = `
__result := fire(__engine, __count)
`

// Program is a compiled script. One Program may back the callbacks of many
// entities; runs are serialized.
type Program struct {
	name     string
	lookup   Lookup
	mu       sync.Mutex
	compiled *tengo.Compiled
}

// Compile compiles src. lookup may be nil, in which case spawn() fails.
func Compile(name, src string, lookup Lookup) (*Program, error) {
	if !strings.Contains(src, "fire") {
		return nil, fmt.Errorf("%w: %s", ErrNoFire, name)
	}
	s := tengo.NewScript([]byte(src + "\n" + dispatch))
	if err := s.Add("__engine", map[string]any{}); err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := s.Add("__count", 0); err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Program{name: name, lookup: lookup, compiled: compiled}, nil
}

// Name returns the script name.
func (p *Program) Name() string { return p.name }

// Callback returns a hazard callback that runs the script.
func (p *Program) Callback() hazard.Callback {
	return func(pool *hazard.Pool, e *hazard.Entity, n int) error {
		return p.Run(pool, e, n)
	}
}

// Modifier wraps the script in a timed callback.
func (p *Program) Modifier(period, delay int) *hazard.TimedCallback {
	return hazard.Every(period, delay, p.Callback()).Named("script:" + p.name)
}

// Run fires the script once for e.
func (p *Program) Run(pool *hazard.Pool, e *hazard.Entity, n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	engine := p.engine(pool, e, n)
	if err := p.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := p.compiled.Set("__count", n); err != nil {
		return err
	}
	if err := p.compiled.Run(); err != nil {
		return fmt.Errorf("script %s: %w", p.name, err)
	}
	return nil
}

func (p *Program) engine(pool *hazard.Pool, e *hazard.Entity, n int) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"age":   &tengo.Int{Value: int64(e.Age)},
		"count": &tengo.Int{Value: int64(n)},
		"x":     &tengo.Float{Value: e.Pos.X},
		"y":     &tengo.Float{Value: e.Pos.Y},
		"dir":   &tengo.Float{Value: e.Dir},
		"speed": &tengo.Float{Value: e.Speed},
		"tick":  &tengo.Int{Value: int64(pool.Tick())},
	}

	values["kill"] = &tengo.UserFunction{Name: "kill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e.Kill()
		return tengo.TrueValue, nil
	}}

	values["set_speed"] = &tengo.UserFunction{Name: "set_speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := argFloat(args, 0)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		e.Speed = v
		return tengo.TrueValue, nil
	}}

	values["set_dir"] = &tengo.UserFunction{Name: "set_dir", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := argFloat(args, 0)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		e.Dir = v
		return tengo.TrueValue, nil
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := argFloat(args, 0)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		e.Dir += v
		return tengo.TrueValue, nil
	}}

	values["set_color"] = &tengo.UserFunction{Name: "set_color", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r, ok1 := argFloat(args, 0)
		g, ok2 := argFloat(args, 1)
		b, ok3 := argFloat(args, 2)
		if !ok1 || !ok2 || !ok3 {
			return nil, tengo.ErrWrongNumArguments
		}
		e.Color = hazard.RGB(r, g, b)
		return tengo.TrueValue, nil
	}}

	// aim turns the hazard toward the player and returns the new heading.
	values["aim"] = &tengo.UserFunction{Name: "aim", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pl := pool.Player()
		if pl == nil {
			return &tengo.Float{Value: e.Dir}, nil
		}
		e.Dir = geom.HeadingTo(e.Pos, pl.Position())
		return &tengo.Float{Value: e.Dir}, nil
	}}

	values["rand"] = &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: pool.Rand().Float64()}, nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		count := 1
		if v, ok := argFloat(args, 1); ok {
			count = int(v)
		}
		if p.lookup == nil {
			return nil, fmt.Errorf("spawn %q: no templates available", name)
		}
		t, ok := p.lookup(name)
		if !ok {
			return nil, fmt.Errorf("spawn %q: unknown template", name)
		}
		spawned, err := pool.SpawnFrom(e, t, count, hazard.FromParent)
		if err != nil {
			return nil, err
		}
		return &tengo.Int{Value: int64(len(spawned))}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func argFloat(args []tengo.Object, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch v := args[i].(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
