// Package hazard owns the bullet-hell hazards: templates, the behavior
// modifiers attached to them, and the pool that advances them each tick.
package hazard

import "math"

// Kind is the visual/hitbox family of a hazard.
type Kind uint8

const (
	KindOrb Kind = iota
	KindRice
	KindBall
	KindBubble
	KindStar
	KindArrow
)

var kindNames = map[Kind]string{
	KindOrb:    "orb",
	KindRice:   "rice",
	KindBall:   "ball",
	KindBubble: "bubble",
	KindStar:   "star",
	KindArrow:  "arrow",
}

// String returns the kind's name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "orb"
}

// ParseKind maps a name to a Kind. Unknown names yield KindOrb.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindOrb, false
}

// HitboxScale is the radius multiplier of the kind.
func (k Kind) HitboxScale() float64 {
	switch k {
	case KindRice:
		return 0.75
	case KindBall:
		return 1.5
	case KindBubble:
		return 2
	default:
		return 1
	}
}

// Glyph is the rune used by terminal renderers.
func (k Kind) Glyph() rune {
	switch k {
	case KindRice:
		return '•'
	case KindBall:
		return 'o'
	case KindBubble:
		return 'O'
	case KindStar:
		return '*'
	case KindArrow:
		return '^'
	default:
		return '∘'
	}
}

// Color is an RGB color with 0-255 channels.
type Color struct {
	R, G, B float64
}

// RGB creates a color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// White is the default hazard color.
var White = RGB(255, 255, 255)

// Cycle returns the rainbow color at phase (radians).
func Cycle(phase float64) Color {
	return Color{
		R: math.Sin(phase)*127 + 128,
		G: math.Sin(phase+math.Pi*2/3)*127 + 128,
		B: math.Sin(phase+math.Pi*4/3)*127 + 128,
	}
}
