package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/script"
	"github.com/vovakirdan/danmaku/internal/world"
)

// ErrUnknownTemplate is returned when an emitter or mod names a template
// the scenario does not define.
var ErrUnknownTemplate = errors.New("scenario: unknown template")

// Player is the stand-in hit target of a scenario.
type Player struct {
	Pos         geom.Vec
	Radius      float64
	Projectiles []hazard.Projectile
}

// Emitter fires Template every Every ticks between Start and Stop (0 means
// forever). Ring > 1 fires a ring. Aim points the first hazard at the
// player; Turn rotates the heading after every fire.
type Emitter struct {
	Name     string
	Template *hazard.Template
	Pos      geom.Vec
	HasPos   bool
	Ring     int
	Every    int
	Start    int
	Stop     int
	Aim      bool
	Turn     float64
}

// Scenario is a loaded, ready-to-simulate stage.
type Scenario struct {
	ID          string
	Name        string
	Description string
	World       *world.World
	Hidden      map[int]bool // object IDs that are not drawn
	Player      Player
	Templates   map[string]*hazard.Template
	Emitters    []Emitter
}

// New creates an empty scenario with a default player.
func New(id, name string) *Scenario {
	return &Scenario{
		ID:        id,
		Name:      name,
		World:     world.New(),
		Hidden:    map[int]bool{},
		Player:    Player{Radius: 25},
		Templates: map[string]*hazard.Template{},
	}
}

// Template returns a named template.
func (s *Scenario) Template(name string) (*hazard.Template, bool) {
	t, ok := s.Templates[name]
	return t, ok
}

// TemplateNames returns the template names in sorted order.
func (s *Scenario) TemplateNames() []string {
	names := make([]string, 0, len(s.Templates))
	for name := range s.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddArena walls in a width x height rectangle centered on the origin.
func (s *Scenario) AddArena(width, height, thickness float64) {
	hw, hh := width/2, height/2
	walls := []geom.Box{
		geom.NewBox(-hw-thickness, -hh-thickness, width+2*thickness, thickness),
		geom.NewBox(-hw-thickness, hh, width+2*thickness, thickness),
		geom.NewBox(-hw-thickness, -hh, thickness, height),
		geom.NewBox(hw, -hh, thickness, height),
	}
	for _, b := range walls {
		s.World.AddObject(b.Center(), world.Tags{world.TagWall}, b)
	}
}

// Load reads and builds a scenario file.
func Load(path string, logger *log.Logger) (*Scenario, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build(logger)
}

// Build turns the document into a scenario. Unknown mod keys are logged and
// skipped; unknown template references are errors.
func (f *File) Build(logger *log.Logger) (*Scenario, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := New(f.ID, f.Name)
	s.Description = f.Description
	if s.Name == "" {
		s.Name = s.ID
	}

	for _, o := range f.World.Objects {
		pos := vec(o.Pos)
		obj := s.World.AddObject(pos, world.Tags(o.Tags), shapes(o.ShapeSpec, pos)...)
		if o.AABB != nil {
			lo := pos.Add(vec(o.AABB.Origin))
			obj.AABB = cp.BB{L: lo.X, B: lo.Y, R: lo.X + o.AABB.Size[0], T: lo.Y + o.AABB.Size[1]}
		}
		if o.Hidden {
			s.Hidden[obj.ID] = true
		}
	}
	for _, e := range f.Enemies {
		for _, sh := range shapes(e, vec(e.Pos)) {
			s.World.AddEnemy(sh, world.Tags(e.Tags))
		}
	}

	s.Player.Pos = vec(f.Player.Pos)
	if f.Player.Radius > 0 {
		s.Player.Radius = f.Player.Radius
	}
	for _, p := range f.Player.Projectiles {
		s.Player.Projectiles = append(s.Player.Projectiles, hazard.Projectile{Pos: vec(p.Pos), Grounded: p.Grounded})
	}

	// Templates are allocated up front so mods can reference any of them,
	// including their own template.
	names := make([]string, 0, len(f.Templates))
	for name := range f.Templates {
		names = append(names, name)
		s.Templates[name] = hazard.DefaultTemplate()
	}
	sort.Strings(names)
	for _, name := range names {
		if err := f.fill(s, name, f.Templates[name], logger); err != nil {
			return nil, err
		}
	}

	for i, es := range f.Emitters {
		t, ok := s.Templates[es.Template]
		if !ok {
			return nil, fmt.Errorf("%w: emitter %d references %q", ErrUnknownTemplate, i, es.Template)
		}
		em := Emitter{
			Name:     es.Template,
			Template: t,
			Ring:     max(es.Ring, 1),
			Every:    es.Every,
			Start:    es.Start,
			Stop:     es.Stop,
			Aim:      es.Aim,
			Turn:     es.Turn,
		}
		if es.Pos != nil {
			em.Pos, em.HasPos = vec(*es.Pos), true
		}
		s.Emitters = append(s.Emitters, em)
	}
	return s, nil
}

func (f *File) fill(s *Scenario, name string, spec TemplateSpec, logger *log.Logger) error {
	t := s.Templates[name]
	if spec.Kind != "" {
		k, ok := hazard.ParseKind(spec.Kind)
		if !ok {
			logger.Warn("unknown hazard kind, using orb", "template", name, "kind", spec.Kind)
		}
		t.Kind = k
	}
	t.Pos = vec(spec.Pos)
	t.Dir = spec.Dir
	t.RandomDir = spec.Random
	if spec.Speed != nil {
		t.Speed = *spec.Speed
	}
	if spec.Color != nil {
		t.Color = hazard.RGB(spec.Color[0], spec.Color[1], spec.Color[2])
	}
	if spec.Size != nil {
		t.Size = *spec.Size
	}
	if spec.Damage != nil {
		t.Damage = *spec.Damage
	}
	if spec.Alpha != nil {
		t.Alpha = *spec.Alpha
	}
	if spec.Destroyable != nil {
		t.Destroyable = *spec.Destroyable
	}
	t.Indicator = spec.Indicator
	if t.Indicator && spec.Alpha == nil {
		t.Alpha = 0.5
	}
	t.IgnoreWalls = spec.IgnoreWalls
	t.Group = spec.Group

	for i, entry := range spec.Mods {
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			m, err := f.mod(s, key, entry[key])
			if err != nil {
				return fmt.Errorf("scenario: template %q mod %d (%s): %w", name, i, key, err)
			}
			if m == nil {
				logger.Warn("unknown mod, skipped", "template", name, "mod", key)
				continue
			}
			t.Mods = append(t.Mods, m)
		}
	}
	return nil
}

// mod builds one modifier. A nil modifier with a nil error means the key is
// unknown.
func (f *File) mod(s *Scenario, key string, raw any) (hazard.Modifier, error) {
	switch key {
	case "accel":
		spec, err := DecodeSpec[AccelSpec](raw)
		if err != nil {
			return nil, err
		}
		a := hazard.Accel(spec.Delta).After(spec.Delay)
		if spec.Cap != nil {
			a.Until(*spec.Cap)
		}
		return a, nil

	case "orbit":
		spec, err := DecodeSpec[OrbitSpec](raw)
		if err != nil {
			return nil, err
		}
		o := hazard.NewOrbit(spec.Omega).Accel(spec.Accel).From(spec.Radius)
		if spec.Cap != nil {
			o.Until(*spec.Cap)
		}
		if spec.Locked {
			o.Locked()
		}
		return o, nil

	case "spin":
		spec, err := DecodeSpec[SpinSpec](raw)
		if err != nil {
			return nil, err
		}
		sp := hazard.NewSpin(spec.Rate)
		if spec.Start != nil {
			sp.From(*spec.Start)
		}
		return sp, nil

	case "color_cycle":
		spec, err := DecodeSpec[ColorCycleSpec](raw)
		if err != nil {
			return nil, err
		}
		c := hazard.NewColorCycle(spec.Step)
		if spec.Phase != nil {
			c.From(*spec.Phase)
		}
		return c, nil

	case "timer":
		switch v := raw.(type) {
		case int:
			return hazard.Timer(v), nil
		case float64:
			return hazard.Timer(int(v)), nil
		}
		spec, err := DecodeSpec[TimerSpec](raw)
		if err != nil {
			return nil, err
		}
		return hazard.Timer(spec.Delay), nil

	case "spawn", "replace":
		spec, err := DecodeSpec[SpawnSpec](raw)
		if err != nil {
			return nil, err
		}
		t, ok := s.Templates[spec.Template]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, spec.Template)
		}
		rel := hazard.FromParent
		if spec.RelativePos != nil {
			rel.Pos = *spec.RelativePos
		}
		if spec.RelativeDir != nil {
			rel.Dir = *spec.RelativeDir
		}
		count := max(spec.Count, 1)
		if key == "replace" {
			return hazard.ReplaceAt(spec.Delay, t, count, rel), nil
		}
		return hazard.SpawnEvery(spec.Every, spec.Delay, t, count, rel), nil

	case "script":
		spec, err := DecodeSpec[ScriptSpec](raw)
		if err != nil {
			return nil, err
		}
		src := spec.Source
		if spec.File != "" {
			if f.dir == "" {
				return nil, fmt.Errorf("script file %q needs a scenario on disk", spec.File)
			}
			data, err := os.ReadFile(filepath.Join(f.dir, spec.File))
			if err != nil {
				return nil, err
			}
			src = string(data)
		}
		name := spec.Name
		if name == "" {
			name = spec.File
		}
		prog, err := script.Compile(name, src, s.Template)
		if err != nil {
			return nil, err
		}
		return prog.Modifier(spec.Every, spec.Delay), nil
	}
	return nil, nil
}

func vec(p Point) geom.Vec {
	return geom.V(p[0], p[1])
}

func shapes(spec ShapeSpec, pos geom.Vec) []geom.Shape {
	out := make([]geom.Shape, 0, len(spec.Circles)+len(spec.Boxes))
	for _, c := range spec.Circles {
		out = append(out, geom.Circle{C: pos.Add(vec(c.Center)), R: c.Radius})
	}
	for _, b := range spec.Boxes {
		out = append(out, geom.Box{Origin: pos.Add(vec(b.Origin)), Extent: vec(b.Size)})
	}
	return out
}
