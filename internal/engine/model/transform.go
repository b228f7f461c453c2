package model

import (
	"github.com/Faultbox/objviewer/pkg/math"
)

// Position returns the model translation.
func (m *Model) Position() math.Vec3 { return m.position }

// Rotation returns the model rotation.
func (m *Model) Rotation() math.Quat { return m.rotation }

// RotationAngles returns the rotation as pitch, yaw and roll in degrees.
func (m *Model) RotationAngles() math.Vec3 { return m.rotation.Euler().Degrees() }

// Scale returns the per-axis scale.
func (m *Model) Scale() math.Vec3 { return m.scale }

// ModelMatrix returns T·R·S.
func (m *Model) ModelMatrix() math.Mat4 { return m.modelMat }

// OriginMatrix returns the matrix fitting the mesh into a unit cube.
func (m *Model) OriginMatrix() math.Mat4 {
	if m.data == nil {
		return math.Identity()
	}
	return m.data.OriginMat
}

// ModelOriginMatrix returns ModelMatrix·OriginMatrix, the matrix bound
// as model_mat.
func (m *Model) ModelOriginMatrix() math.Mat4 { return m.modelOriginMat }

// NormalMatrix returns inverse(transpose(T·R)).
func (m *Model) NormalMatrix() math.Mat4 { return m.normalMat }

// SetPosition moves the model to p.
func (m *Model) SetPosition(p math.Vec3) {
	m.position = p
	m.updateMatrices()
}

// SetRotation sets the rotation from Euler angles in degrees.
func (m *Model) SetRotation(deg math.Vec3) {
	m.rotation = math.QuatFromEuler(deg.Radians())
	m.updateMatrices()
}

// SetRotationQuat sets the rotation.
func (m *Model) SetRotationQuat(q math.Quat) {
	m.rotation = q.Normalize()
	m.updateMatrices()
}

// SetScale sets the per-axis scale. Zero or non-finite components become
// 0.001.
func (m *Model) SetScale(s math.Vec3) {
	m.scale = guardScale(s)
	m.updateMatrices()
}

// Translate moves the model by delta.
func (m *Model) Translate(delta math.Vec3) {
	m.SetPosition(m.position.Add(delta))
}

// Rotate applies an additional rotation given as Euler angles in degrees.
func (m *Model) Rotate(deg math.Vec3) {
	m.RotateQuat(math.QuatFromEuler(deg.Radians()))
}

// RotateQuat applies an additional rotation after the current one.
func (m *Model) RotateQuat(q math.Quat) {
	m.rotation = q.Mul(m.rotation).Normalize()
	m.updateMatrices()
}

// ScaleBy multiplies the scale per axis.
func (m *Model) ScaleBy(factor math.Vec3) {
	m.SetScale(m.scale.Mul(factor))
}

// ResetGeometry restores the identity transform.
func (m *Model) ResetGeometry() {
	m.position = math.Vec3{}
	m.rotation = math.QuatIdentity()
	m.scale = math.Splat(1)
	m.updateMatrices()
}

func (m *Model) updateMatrices() {
	tr := math.Translate(m.position).Mul(m.rotation.Mat4())
	m.modelMat = tr.Mul(math.Scale(m.scale))
	m.modelOriginMat = m.modelMat.Mul(m.OriginMatrix())
	m.normalMat = tr.Transpose().Inverse()
}

func guardScale(s math.Vec3) math.Vec3 {
	fix := func(f float32) float32 {
		if f == 0 || !math.IsFinite(f) {
			return minScale
		}
		return f
	}
	return math.Vec3{X: fix(s.X), Y: fix(s.Y), Z: fix(s.Z)}
}

// WorldBounds returns the axis-aligned box enclosing the model's bounding
// box corners after ModelOriginMatrix.
func (m *Model) WorldBounds() (lo, hi math.Vec3) {
	bmin, bmax := m.Bounds()
	corners := [8]math.Vec3{
		{X: bmin.X, Y: bmin.Y, Z: bmin.Z},
		{X: bmax.X, Y: bmin.Y, Z: bmin.Z},
		{X: bmin.X, Y: bmax.Y, Z: bmin.Z},
		{X: bmax.X, Y: bmax.Y, Z: bmin.Z},
		{X: bmin.X, Y: bmin.Y, Z: bmax.Z},
		{X: bmax.X, Y: bmin.Y, Z: bmax.Z},
		{X: bmin.X, Y: bmax.Y, Z: bmax.Z},
		{X: bmax.X, Y: bmax.Y, Z: bmax.Z},
	}
	for i, c := range corners {
		p := m.modelOriginMat.TransformPoint(c)
		if i == 0 {
			lo, hi = p, p
			continue
		}
		lo, hi = lo.Min(p), hi.Max(p)
	}
	return lo, hi
}
