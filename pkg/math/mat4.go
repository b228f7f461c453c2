package math

import "math"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed perspective projection with a
// [-1, 1] depth range. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Ortho returns an orthographic projection for the given view volume.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// LookAt returns a view matrix placing the eye at eye, looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(t Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Scale returns a scale matrix.
func Scale(s Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = s.X, s.Y, s.Z
	return m
}

// Mul returns m * other, so other is applied first when transforming points.
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[row*4+col] = m[col*4+row]
		}
	}
	return r
}

// Inverse returns the inverse of m, or the identity if m is singular.
func (m Mat4) Inverse() Mat4 {
	// The array is read as a row-major matrix. Inverting the transpose and
	// writing it back the same way yields the inverse of the original.
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	s0 := a00*a11 - a10*a01
	s1 := a00*a12 - a10*a02
	s2 := a00*a13 - a10*a03
	s3 := a01*a12 - a11*a02
	s4 := a01*a13 - a11*a03
	s5 := a02*a13 - a12*a03

	c5 := a22*a33 - a32*a23
	c4 := a21*a33 - a31*a23
	c3 := a21*a32 - a31*a22
	c2 := a20*a33 - a30*a23
	c1 := a20*a32 - a30*a22
	c0 := a20*a31 - a30*a21

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		(a11*c5 - a12*c4 + a13*c3) * inv,
		(-a01*c5 + a02*c4 - a03*c3) * inv,
		(a31*s5 - a32*s4 + a33*s3) * inv,
		(-a21*s5 + a22*s4 - a23*s3) * inv,

		(-a10*c5 + a12*c2 - a13*c1) * inv,
		(a00*c5 - a02*c2 + a03*c1) * inv,
		(-a30*s5 + a32*s2 - a33*s1) * inv,
		(a20*s5 - a22*s2 + a23*s1) * inv,

		(a10*c4 - a11*c2 + a13*c0) * inv,
		(-a00*c4 + a01*c2 - a03*c0) * inv,
		(a30*s4 - a31*s2 + a33*s0) * inv,
		(-a20*s4 + a21*s2 - a23*s0) * inv,

		(-a10*c3 + a11*c1 - a12*c0) * inv,
		(a00*c3 - a01*c1 + a02*c0) * inv,
		(-a30*s3 + a31*s1 - a32*s0) * inv,
		(a20*s3 - a21*s1 + a22*s0) * inv,
	}
}

// MulVec4 multiplies the matrix by a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var r Vec4
	for row := 0; row < 4; row++ {
		r[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return r
}

// TransformPoint transforms a point (w=1), dividing by w when needed.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if r[3] != 0 && r[3] != 1 {
		return Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return Vec3{r[0], r[1], r[2]}
}

// TransformDirection transforms a direction (w=0), ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	r := m.MulVec4(Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{r[0], r[1], r[2]}
}

// Ptr returns a pointer to the first element for OpenGL uniform calls.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
