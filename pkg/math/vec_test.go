package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if got != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y = %v, want Z", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		in   Vec3
		want Vec3
	}{
		{Vec3{3, 0, 4}, Vec3{0.6, 0, 0.8}},
		{Vec3{0, -2, 0}, Vec3{0, -1, 0}},
		{Vec3{}, Vec3{}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); !approxVec3(got, tt.want) {
			t.Errorf("%v.Normalize() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{2, -1, 0}
	if got := a.Min(b); got != (Vec3{1, -1, -3}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{2, 5, 0}) {
		t.Errorf("Max = %v", got)
	}
	if got := a.MaxComponent(); got != 5 {
		t.Errorf("MaxComponent = %v, want 5", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())
	tests := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{1, 2, 3}, true},
		{Vec3{inf, 0, 0}, false},
		{Vec3{0, nan, 0}, false},
		{Vec3{0, 0, -inf}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAngles(t *testing.T) {
	if got := Radians(180); !approx(got, math.Pi) {
		t.Errorf("Radians(180) = %v", got)
	}
	if got := Degrees(math.Pi / 2); !approx(got, 90) {
		t.Errorf("Degrees(pi/2) = %v", got)
	}
	if got := Clamp(100, -89, 89); got != 89 {
		t.Errorf("Clamp = %v, want 89", got)
	}
}

func TestVec2Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); got != 5 {
		t.Errorf("Vec2{3,4}.Length() = %v, want 5", got)
	}
}

func TestVec3_ArrayRoundTrip(t *testing.T) {
	v := Vec3{1, -2, 3.5}
	if got := Vec3FromArray(v.Array()); got != v {
		t.Errorf("Vec3FromArray(Array()) = %v, want %v", got, v)
	}
}
