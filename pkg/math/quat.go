package math

import "math"

// Quat represents a rotation quaternion. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the quaternion with no rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a rotation of angle radians around a normalized axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s := sin(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: cos(angle / 2)}
}

// QuatFromEuler creates a rotation from pitch (X), yaw (Y) and roll (Z)
// angles in radians, applied in Z, Y, X order.
func QuatFromEuler(angles Vec3) Quat {
	cx, sx := cos(angles.X/2), sin(angles.X/2)
	cy, sy := cos(angles.Y/2), sin(angles.Y/2)
	cz, sz := cos(angles.Z/2), sin(angles.Z/2)

	return Quat{
		W: cx*cy*cz + sx*sy*sz,
		X: sx*cy*cz - cx*sy*sz,
		Y: cx*sy*cz + sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
	}
}

// Euler returns the pitch, yaw and roll angles in radians. It is the inverse
// of QuatFromEuler for yaw within (-90°, 90°).
func (q Quat) Euler() Vec3 {
	py := 2 * (q.Y*q.Z + q.W*q.X)
	px := q.W*q.W - q.X*q.X - q.Y*q.Y + q.Z*q.Z
	var pitch float32
	if py == 0 && px == 0 {
		pitch = 2 * float32(math.Atan2(float64(q.X), float64(q.W)))
	} else {
		pitch = float32(math.Atan2(float64(py), float64(px)))
	}

	yaw := float32(math.Asin(float64(Clamp(-2*(q.X*q.Z-q.W*q.Y), -1, 1))))
	roll := float32(math.Atan2(float64(2*(q.X*q.Y+q.W*q.Z)), float64(q.W*q.W+q.X*q.X-q.Y*q.Y-q.Z*q.Z)))

	return Vec3{pitch, yaw, roll}
}

// Normalize returns a unit quaternion, or the identity for a degenerate one.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if l < 1e-6 {
		return QuatIdentity()
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Mul composes two rotations: the result applies other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 converts the quaternion to a rotation matrix.
func (q Quat) Mat4() Mat4 {
	q = q.Normalize()
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}
