package hazard

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/geom"
)

// Modifier is a behavior record attached to a hazard. The set is closed:
// *Accelerate, *Orbit, *Spin, *TimedCallback and *ColorCycle.
//
// Exported fields are configuration and are never written by the pipeline.
// Unexported fields are the runtime state of one entity's instance; Clone
// copies the configuration and resets that state.
type Modifier interface {
	Clone() Modifier
	modifier()
}

// Callback is the user code run by a TimedCallback. n is the number of times
// the callback has fired before this call.
type Callback func(p *Pool, e *Entity, n int) error

// Accelerate changes speed by Delta every tick once the entity is Delay
// ticks old, stopping at Cap when Capped.
type Accelerate struct {
	Delta  float64
	Cap    float64
	Capped bool
	Delay  int

	count int
}

// Accel creates an uncapped acceleration.
func Accel(delta float64) *Accelerate {
	return &Accelerate{Delta: delta}
}

// Until caps the speed reached in the direction of Delta.
func (a *Accelerate) Until(limit float64) *Accelerate {
	a.Cap, a.Capped = limit, true
	return a
}

// After delays the first step until the entity reaches age delay.
func (a *Accelerate) After(delay int) *Accelerate {
	a.Delay = delay
	return a
}

// Count returns how many times the acceleration has been applied.
func (a *Accelerate) Count() int { return a.count }

// Clone implements Modifier.
func (a *Accelerate) Clone() Modifier {
	c := *a
	c.count = 0
	return &c
}

func (*Accelerate) modifier() {}

func (a *Accelerate) due(age int) bool {
	return age >= a.count+a.Delay
}

func (a *Accelerate) apply(e *Entity) {
	e.Speed += a.Delta
	if a.Capped {
		s := sign(a.Delta)
		if s*e.Speed > s*a.Cap {
			e.Speed = a.Cap
		}
	}
	a.count++
}

// Orbit moves the entity on a spiral around the point where the orbit
// started. The orbit heading advances by the angular velocity each tick and
// the radius grows by the entity's speed.
type Orbit struct {
	AngularVelocity float64 // degrees per tick
	AngularAccel    float64 // degrees per tick per tick
	Cap             float64 // angular velocity limit in the direction of AngularAccel
	Capped          bool
	StartRadius     float64
	TidalLock       bool // face along the orbit heading instead of the path

	started bool
	center  geom.Vec
	heading float64
	omega   float64
	radius  float64
}

// NewOrbit creates an orbit turning omega degrees per tick.
func NewOrbit(omega float64) *Orbit {
	return &Orbit{AngularVelocity: omega}
}

// Accel sets the angular acceleration.
func (o *Orbit) Accel(alpha float64) *Orbit {
	o.AngularAccel = alpha
	return o
}

// Until caps the angular velocity.
func (o *Orbit) Until(limit float64) *Orbit {
	o.Cap, o.Capped = limit, true
	return o
}

// From sets the starting radius.
func (o *Orbit) From(radius float64) *Orbit {
	o.StartRadius = radius
	return o
}

// Locked enables tidal lock.
func (o *Orbit) Locked() *Orbit {
	o.TidalLock = true
	return o
}

// Heading returns the current orbit heading in degrees.
func (o *Orbit) Heading() float64 { return o.heading }

// Radius returns the accumulated radius.
func (o *Orbit) Radius() float64 { return o.radius }

// Omega returns the current angular velocity.
func (o *Orbit) Omega() float64 { return o.omega }

// SetOmega replaces the current angular velocity.
func (o *Orbit) SetOmega(w float64) {
	if !o.started {
		o.AngularVelocity = w
	}
	o.omega = w
}

// Center returns the orbit origin.
func (o *Orbit) Center() geom.Vec { return o.center }

// Clone implements Modifier.
func (o *Orbit) Clone() Modifier {
	c := *o
	c.started = false
	c.center = geom.Vec{}
	c.heading, c.omega, c.radius = 0, 0, 0
	return &c
}

func (*Orbit) modifier() {}

func (o *Orbit) step(e *Entity) {
	if !o.started {
		o.started = true
		o.center = e.Pos
		o.heading = e.Dir
		o.omega = o.AngularVelocity
		o.radius = o.StartRadius
	}

	o.heading += o.omega
	o.omega += o.AngularAccel
	if o.Capped {
		s := sign(o.AngularAccel)
		if s*o.omega > s*o.Cap {
			o.omega = o.Cap
		}
	}

	o.radius += e.Speed
	prev := e.Pos
	e.Pos = o.center.Add(geom.Polar(o.heading, o.radius))
	if o.TidalLock {
		e.Dir = o.heading
	} else if e.Pos != prev {
		e.Dir = geom.HeadingTo(prev, e.Pos)
	}
}

// Spin rotates the rendered facing by Rate degrees per tick without
// touching the motion heading.
type Spin struct {
	Rate     float64
	Start    float64
	HasStart bool

	started bool
	angle   float64
}

// NewSpin creates a spin starting at the entity's spawn heading.
func NewSpin(rate float64) *Spin {
	return &Spin{Rate: rate}
}

// From sets an explicit starting angle.
func (s *Spin) From(angle float64) *Spin {
	s.Start, s.HasStart = angle, true
	return s
}

// Angle returns the angle that will be rendered next.
func (s *Spin) Angle() float64 { return s.angle }

// Clone implements Modifier.
func (s *Spin) Clone() Modifier {
	c := *s
	c.started, c.angle = false, 0
	return &c
}

func (*Spin) modifier() {}

func (s *Spin) step(e *Entity) {
	if !s.started {
		s.started = true
		s.angle = e.initialDir
		if s.HasStart {
			s.angle = s.Start
		}
	}
	e.RenderDir = s.angle
	s.angle += s.Rate
}

// TimedCallback runs Fn when the entity's age reaches Period*count + Delay.
// A Period of zero or less fires exactly once, at Delay.
type TimedCallback struct {
	Period int
	Delay  int
	Name   string
	Fn     Callback

	count int
}

// Every creates a repeating callback.
func Every(period, delay int, fn Callback) *TimedCallback {
	return &TimedCallback{Period: period, Delay: delay, Fn: fn}
}

// At creates a one-shot callback.
func At(delay int, fn Callback) *TimedCallback {
	return &TimedCallback{Delay: delay, Fn: fn}
}

// Named labels the callback in logs.
func (t *TimedCallback) Named(name string) *TimedCallback {
	t.Name = name
	return t
}

// Count returns how many times the callback has fired.
func (t *TimedCallback) Count() int { return t.count }

// Clone implements Modifier.
func (t *TimedCallback) Clone() Modifier {
	c := *t
	c.count = 0
	return &c
}

func (*TimedCallback) modifier() {}

func (t *TimedCallback) due(age int) bool {
	if t.Period <= 0 {
		return t.count == 0 && age >= t.Delay
	}
	return age >= t.Period*t.count+t.Delay
}

// ColorCycle overrides the color with a rainbow advancing Step radians per
// tick. It keeps running while the entity fades out.
type ColorCycle struct {
	Step     float64
	Phase    float64
	HasPhase bool

	started bool
	phase   float64
}

// NewColorCycle creates a cycle with a random starting phase.
func NewColorCycle(step float64) *ColorCycle {
	return &ColorCycle{Step: step}
}

// From sets the starting phase.
func (c *ColorCycle) From(phase float64) *ColorCycle {
	c.Phase, c.HasPhase = phase, true
	return c
}

// Clone implements Modifier.
func (c *ColorCycle) Clone() Modifier {
	n := *c
	n.started, n.phase = false, 0
	return &n
}

func (*ColorCycle) modifier() {}

func (c *ColorCycle) step(e *Entity, random func() float64) {
	if !c.started {
		c.started = true
		c.phase = c.Phase
		if !c.HasPhase {
			c.phase = random() * 2 * math.Pi
		}
	}
	e.Color = Cycle(c.phase)
	c.phase += c.Step
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
