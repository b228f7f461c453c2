package math

import (
	"math"
	"testing"
)

func TestQuatIdentityMatrix(t *testing.T) {
	if got := QuatIdentity().Mat4(); !approxMat4(got, Identity()) {
		t.Errorf("identity quaternion matrix = %v", got)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))

	got := q.Rotate(Vec3{1, 0, 0})
	if !approxVec3(got, Vec3{0, 0, -1}) {
		t.Errorf("Rotate((1,0,0)) = %v, want (0, 0, -1)", got)
	}

	// The matrix form must agree with direct rotation.
	if m := q.Mat4().TransformPoint(Vec3{1, 0, 0}); !approxVec3(m, got) {
		t.Errorf("Mat4 rotation = %v, want %v", m, got)
	}
}

func TestQuatEulerRoundTrip(t *testing.T) {
	tests := []Vec3{
		{},
		{0.5, 0, 0},
		{0, 0.5, 0},
		{0, 0, 0.5},
		{0.3, -0.4, 1.2},
		{-1.0, 1.2, -2.5},
	}
	for _, angles := range tests {
		got := QuatFromEuler(angles).Euler()
		if !approxVec3(got, angles) {
			t.Errorf("Euler(QuatFromEuler(%v)) = %v", angles, got)
		}
	}
}

func TestQuatMulOrder(t *testing.T) {
	rx := QuatFromAxisAngle(Vec3{1, 0, 0}, float32(math.Pi/2))
	ry := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))

	// ry * rx applies rx first.
	got := ry.Mul(rx).Rotate(Vec3{0, 1, 0})
	want := ry.Rotate(rx.Rotate(Vec3{0, 1, 0}))
	if !approxVec3(got, want) {
		t.Errorf("(ry*rx) v = %v, want %v", got, want)
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("Normalize(zero) = %v, want identity", got)
	}
}
