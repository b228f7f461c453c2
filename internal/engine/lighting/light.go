// Package lighting provides the scene light sources.
package lighting

import (
	gomath "math"
	"strings"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Type is the kind of light source.
type Type int

// Light types. The values are the u_light_type uniform.
const (
	Directional Type = iota
	Point
	Spotlight
)

// Types lists every light type in uniform order.
var Types = []Type{Directional, Point, Spotlight}

func (t Type) String() string {
	switch t {
	case Directional:
		return "Directional"
	case Point:
		return "Point"
	case Spotlight:
		return "Spotlight"
	default:
		return "Unknown"
	}
}

// ParseType returns the type named by s, ignoring case.
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if strings.EqualFold(s, t.String()) {
			return t, true
		}
	}
	return Directional, false
}

// Light is a directional, point or spot light.
type Light struct {
	Type    Type
	Enabled bool
	Grabbed bool // follows the active camera

	Position    math.Vec3
	Attenuation math.Vec3 // constant, linear, quadratic

	AmbientColor  math.Vec3
	DiffuseColor  math.Vec3
	SpecularColor math.Vec3
	AmbientLevel  float32
	DiffuseLevel  float32
	SpecularLevel float32
	Shininess     float32

	direction math.Vec3 // from the lit surface towards the light
	cutoff    math.Vec2 // inner and outer spotlight angles, radians
}

// New creates an enabled white light of the given type, at (0, 0, 2)
// shining down -Z.
func New(kind Type) *Light {
	return &Light{
		Enabled:       true,
		Type:          kind,
		Position:      math.Vec3{Z: 2},
		Attenuation:   math.Vec3{X: 1, Y: 0.14, Z: 0.007},
		AmbientColor:  math.Splat(1),
		DiffuseColor:  math.Splat(1),
		SpecularColor: math.Splat(1),
		AmbientLevel:  1,
		DiffuseLevel:  1,
		SpecularLevel: 1,
		Shininess:     1,
		direction:     math.Vec3{Z: 1},
		cutoff:        math.Vec2{X: math.Radians(5), Y: math.Radians(7.5)},
	}
}

// Direction returns the direction the light shines in.
func (l *Light) Direction() math.Vec3 {
	return l.direction.Negate()
}

// SetDirection sets the direction the light shines in. A zero vector is
// ignored.
func (l *Light) SetDirection(dir math.Vec3) {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) {
		return
	}
	l.direction = dir.Negate()
}

// Cutoff returns the inner and outer spotlight angles in degrees.
func (l *Light) Cutoff() math.Vec2 {
	return math.Vec2{X: math.Degrees(l.cutoff.X), Y: math.Degrees(l.cutoff.Y)}
}

// SetCutoff sets the inner and outer spotlight angles in degrees.
func (l *Light) SetCutoff(deg math.Vec2) {
	l.cutoff = math.Vec2{X: math.Radians(deg.X), Y: math.Radians(deg.Y)}
}

// Follow places a grabbed light at the camera. Other lights are unchanged.
func (l *Light) Follow(position, direction math.Vec3) {
	if !l.Grabbed {
		return
	}
	l.Position = position
	l.SetDirection(direction)
}

// Uniforms are the shader inputs of one light.
type Uniforms struct {
	Type Type

	// Direction is set for directional lights and spotlights.
	Direction    math.Vec3
	HasDirection bool

	// Position and Attenuation are set for point lights and spotlights.
	Position    math.Vec3
	Attenuation math.Vec3
	HasPosition bool

	// Cutoff holds the cosines of the spotlight angles.
	Cutoff    math.Vec2
	HasCutoff bool

	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Shininess float32
}

// Uniforms returns the values bound to the u_light_* uniforms. A disabled
// light binds as a black directional light.
func (l *Light) Uniforms() Uniforms {
	if !l.Enabled {
		return Uniforms{
			Type:         Directional,
			Direction:    l.direction,
			HasDirection: true,
			Shininess:    l.Shininess,
		}
	}

	u := Uniforms{
		Type:      l.Type,
		Ambient:   l.AmbientColor.Scale(l.AmbientLevel),
		Diffuse:   l.DiffuseColor.Scale(l.DiffuseLevel),
		Specular:  l.SpecularColor.Scale(l.SpecularLevel),
		Shininess: l.Shininess,
	}
	if l.Type != Point {
		u.Direction = l.direction
		u.HasDirection = true
	}
	if l.Type != Directional {
		u.Position = l.Position
		u.Attenuation = l.Attenuation
		u.HasPosition = true
	}
	if l.Type == Spotlight {
		u.Cutoff = math.Vec2{
			X: float32(gomath.Cos(float64(l.cutoff.X))),
			Y: float32(gomath.Cos(float64(l.cutoff.Y))),
		}
		u.HasCutoff = true
	}
	return u
}
