package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/objviewer/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func nearVec3(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestNew_Defaults(t *testing.T) {
	l := New(Spotlight)

	if !l.Enabled || l.Grabbed {
		t.Errorf("enabled=%v grabbed=%v", l.Enabled, l.Grabbed)
	}
	if !nearVec3(l.Direction(), math.Vec3{Z: -1}) {
		t.Errorf("direction = %v", l.Direction())
	}
	if l.Position != (math.Vec3{Z: 2}) {
		t.Errorf("position = %v", l.Position)
	}
	if l.Attenuation != (math.Vec3{X: 1, Y: 0.14, Z: 0.007}) {
		t.Errorf("attenuation = %v", l.Attenuation)
	}
	if c := l.Cutoff(); !near(c.X, 5) || !near(c.Y, 7.5) {
		t.Errorf("cutoff = %v", c)
	}
}

func TestSetDirection_Negated(t *testing.T) {
	l := New(Directional)
	l.SetDirection(math.Vec3{Y: -3})

	if !nearVec3(l.Direction(), math.Vec3{Y: -1}) {
		t.Errorf("Direction() = %v, want (0, -1, 0)", l.Direction())
	}
	// The shader receives the vector towards the light.
	if u := l.Uniforms(); !nearVec3(u.Direction, math.Vec3{Y: 1}) {
		t.Errorf("uniform direction = %v, want (0, 1, 0)", u.Direction)
	}

	l.SetDirection(math.Vec3{})
	if !nearVec3(l.Direction(), math.Vec3{Y: -1}) {
		t.Error("zero direction must be ignored")
	}
}

func TestUniforms_PerType(t *testing.T) {
	tests := []struct {
		kind         Type
		hasDirection bool
		hasPosition  bool
		hasCutoff    bool
	}{
		{Directional, true, false, false},
		{Point, false, true, false},
		{Spotlight, true, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			l := New(tc.kind)
			l.DiffuseLevel = 0.5
			u := l.Uniforms()

			if u.Type != tc.kind {
				t.Errorf("type = %v", u.Type)
			}
			if u.HasDirection != tc.hasDirection || u.HasPosition != tc.hasPosition || u.HasCutoff != tc.hasCutoff {
				t.Errorf("flags = %v %v %v", u.HasDirection, u.HasPosition, u.HasCutoff)
			}
			if u.Diffuse != math.Splat(0.5) {
				t.Errorf("diffuse = %v, want level * color", u.Diffuse)
			}
			if tc.hasCutoff {
				want := float32(gomath.Cos(5 * gomath.Pi / 180))
				if !near(u.Cutoff.X, want) {
					t.Errorf("cutoff cosine = %v, want %v", u.Cutoff.X, want)
				}
			}
		})
	}
}

func TestUniforms_Disabled(t *testing.T) {
	l := New(Point)
	l.Enabled = false
	u := l.Uniforms()

	if u.Type != Directional {
		t.Errorf("disabled light binds as %v, want Directional", u.Type)
	}
	zero := math.Vec3{}
	if u.Ambient != zero || u.Diffuse != zero || u.Specular != zero {
		t.Errorf("disabled light colors = %v %v %v", u.Ambient, u.Diffuse, u.Specular)
	}
}

func TestFollow(t *testing.T) {
	l := New(Spotlight)
	l.Follow(math.Vec3{X: 4}, math.Vec3{X: -1})
	if l.Position != (math.Vec3{Z: 2}) {
		t.Error("light that is not grabbed must not move")
	}

	l.Grabbed = true
	l.Follow(math.Vec3{X: 4}, math.Vec3{X: -1})
	if l.Position != (math.Vec3{X: 4}) || !nearVec3(l.Direction(), math.Vec3{X: -1}) {
		t.Errorf("grabbed light at %v facing %v", l.Position, l.Direction())
	}
}

func TestDirectionFromAngles(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		want               math.Vec3
	}{
		{0, 0, math.Vec3{Z: 1}},
		{90, 0, math.Vec3{X: 1}},
		{0, 90, math.Vec3{Y: 1}},
		{180, -90, math.Vec3{Y: -1}},
	}
	for _, tc := range tests {
		got := DirectionFromAngles(tc.azimuth, tc.elevation)
		if !nearVec3(got, tc.want) {
			t.Errorf("DirectionFromAngles(%v, %v) = %v, want %v", tc.azimuth, tc.elevation, got, tc.want)
		}
	}

	az, el := AnglesFromDirection(DirectionFromAngles(-120, 35))
	if gomath.Abs(float64(az+120)) > 1e-2 || gomath.Abs(float64(el-35)) > 1e-2 {
		t.Errorf("round trip = (%v, %v), want (-120, 35)", az, el)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
		ok   bool
	}{
		{"directional", Directional, true},
		{"Point", Point, true},
		{"SPOTLIGHT", Spotlight, true},
		{"none", Directional, false},
		{"", Directional, false},
	}
	for _, tc := range tests {
		got, ok := ParseType(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseType(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
