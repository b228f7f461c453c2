// Package camera provides the free-flying viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Direction is a travel direction relative to the camera.
type Direction int

// Travel directions.
const (
	Front Direction = iota
	Back
	Left
	Right
	Up
	Down
)

// Camera defaults.
const (
	DefaultFOV  = 30    // degrees
	DefaultNear = 0.01  // near clipping plane
	DefaultFar  = 10.0  // far clipping plane
	DefaultYaw  = -90.0 // degrees, looking down -Z
	maxPitch    = 89.0
	minFOV      = 0.1
	maxFOV      = 179.0
)

// Controls holds the movement settings shared by every camera.
type Controls struct {
	Speed        float32 // units per second
	BoostedSpeed float32 // units per second while boosted
	Sensitivity  float32 // degrees per unit of mouse delta
	ZoomFactor   float32 // FOV divisor per zoom step
	Boosted      bool
}

// DefaultControls returns the default control settings.
func DefaultControls() *Controls {
	return &Controls{
		Speed:        0.5,
		BoostedSpeed: 1,
		Sensitivity:  15,
		ZoomFactor:   1.0625,
	}
}

// Camera is a perspective or orthographic camera steered by yaw and pitch.
type Camera struct {
	position math.Vec3
	front    math.Vec3
	right    math.Vec3
	up       math.Vec3

	yaw   float32 // degrees
	pitch float32 // degrees
	fov   float32 // radians
	near  float32
	far   float32

	width, height int
	orthographic  bool
	controls      *Controls

	view       math.Mat4
	projection math.Mat4
}

// New creates a camera at (0, 0, 2) looking down -Z. A nil controls uses
// DefaultControls.
func New(controls *Controls, orthographic bool) *Camera {
	if controls == nil {
		controls = DefaultControls()
	}
	c := &Camera{
		width:        1,
		height:       1,
		orthographic: orthographic,
		controls:     controls,
	}
	c.Reset()
	return c
}

// Reset restores the default position, orientation and clipping.
func (c *Camera) Reset() {
	c.position = math.Vec3{Z: 2}
	c.front = math.Vec3{Z: -1}
	c.right = math.Vec3{X: 1}
	c.up = math.Vec3{Y: 1}
	c.yaw = DefaultYaw
	c.pitch = 0
	c.fov = math.Radians(DefaultFOV)
	c.near = DefaultNear
	c.far = DefaultFar
	c.update()
}

// Controls returns the shared control settings.
func (c *Camera) Controls() *Controls { return c.controls }

// Position returns the camera position.
func (c *Camera) Position() math.Vec3 { return c.position }

// Direction returns the unit view direction.
func (c *Camera) Direction() math.Vec3 { return c.front }

// RightVector returns the unit right vector.
func (c *Camera) RightVector() math.Vec3 { return c.right }

// UpVector returns the up vector used to derive the right vector.
func (c *Camera) UpVector() math.Vec3 { return c.up }

// View returns the view matrix.
func (c *Camera) View() math.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() math.Mat4 { return c.projection }

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 { return c.projection.Mul(c.view) }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return math.Degrees(c.fov) }

// Clipping returns the near and far plane distances.
func (c *Camera) Clipping() (near, far float32) { return c.near, c.far }

// Resolution returns the viewport size in pixels.
func (c *Camera) Resolution() (width, height int) { return c.width, c.height }

// Orthographic reports whether the camera uses an orthographic projection.
func (c *Camera) Orthographic() bool { return c.orthographic }

// SetOrthographic switches the projection type.
func (c *Camera) SetOrthographic(ortho bool) {
	c.orthographic = ortho
	c.update()
}

// SetPosition moves the camera to p.
func (c *Camera) SetPosition(p math.Vec3) {
	c.position = p
	c.update()
}

// Translate moves the camera by delta in world space.
func (c *Camera) Translate(delta math.Vec3) {
	c.SetPosition(c.position.Add(delta))
}

// SetResolution sets the viewport size. A zero height is treated as 1.
func (c *Camera) SetResolution(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	c.width, c.height = width, height
	c.update()
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(deg float32) {
	c.fov = math.Radians(math.Clamp(deg, minFOV, maxFOV))
	c.update()
}

// SetClipping sets the near and far plane distances.
func (c *Camera) SetClipping(near, far float32) {
	c.near, c.far = near, far
	c.update()
}

// SetDirection points the camera along dir.
func (c *Camera) SetDirection(dir math.Vec3) {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) {
		return
	}
	c.front = dir
	c.pitch = math.Degrees(asin(dir.Y))
	c.yaw = math.Degrees(atan2(dir.Z, dir.X))
	c.right = c.front.Cross(c.up).Normalize()
	c.update()
}

// SetUp sets the up vector the right vector is derived from.
func (c *Camera) SetUp(up math.Vec3) {
	up = up.Normalize()
	if up == (math.Vec3{}) {
		return
	}
	c.up = up
	c.right = c.front.Cross(c.up).Normalize()
	c.update()
}

// Rotation returns yaw, pitch and roll in degrees.
func (c *Camera) Rotation() math.Vec3 {
	return math.Vec3{
		X: math.Degrees(atan2(c.front.Z, c.front.X)),
		Y: math.Degrees(asin(c.front.Y)),
		Z: math.Degrees(asin(c.up.X)),
	}
}

// SetRotation sets yaw (X), pitch (Y) and roll (Z) in degrees. Pitch is
// clamped to ±89°.
func (c *Camera) SetRotation(angles math.Vec3) {
	c.yaw = angles.X
	c.pitch = math.Clamp(angles.Y, -maxPitch, maxPitch)
	roll := math.Radians(angles.Z)
	c.up = math.Vec3{X: sin(roll), Y: cos(roll)}
	c.orient()
}

// Rotate turns the camera by a mouse delta. X turns yaw and Y turns pitch,
// scaled by the control sensitivity.
func (c *Camera) Rotate(delta math.Vec2) {
	if !math.IsFinite(delta.X) || !math.IsFinite(delta.Y) {
		return
	}
	c.yaw += delta.X * c.controls.Sensitivity
	c.pitch = math.Clamp(c.pitch+delta.Y*c.controls.Sensitivity, -maxPitch, maxPitch)
	c.orient()
}

// Zoom narrows the field of view for a positive direction and widens it
// otherwise.
func (c *Camera) Zoom(direction float32) {
	fov := c.FOV()
	if direction > 0 {
		fov /= c.controls.ZoomFactor
	} else {
		fov *= c.controls.ZoomFactor
	}
	c.SetFOV(fov)
}

// Travel moves the camera for dt seconds. Front and back stay in the plane
// spanned by the right vector and its normal around up.
func (c *Camera) Travel(dir Direction, dt float32) {
	speed := c.controls.Speed
	if c.controls.Boosted {
		speed = c.controls.BoostedSpeed
	}
	step := speed * dt
	forward := c.up.Cross(c.right).Normalize()

	switch dir {
	case Front:
		c.position = c.position.Add(forward.Scale(step))
	case Back:
		c.position = c.position.Sub(forward.Scale(step))
	case Left:
		c.position = c.position.Sub(c.right.Scale(step))
	case Right:
		c.position = c.position.Add(c.right.Scale(step))
	case Up:
		c.position = c.position.Add(c.up.Scale(step))
	case Down:
		c.position = c.position.Sub(c.up.Scale(step))
	default:
		return
	}
	c.update()
}

// orient recomputes front and right from yaw and pitch.
func (c *Camera) orient() {
	yaw, pitch := math.Radians(c.yaw), math.Radians(c.pitch)
	c.front = math.Vec3{
		X: cos(yaw) * cos(pitch),
		Y: sin(pitch),
		Z: sin(yaw) * cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(c.up).Normalize()
	c.update()
}

func (c *Camera) update() {
	up := c.right.Cross(c.front)
	c.view = math.LookAt(c.position, c.position.Add(c.front), up)

	aspect := float32(c.width) / float32(c.height)
	if c.orthographic {
		y := atan(c.fov/2) * c.position.Length()
		x := y * aspect
		c.projection = math.Ortho(-x, x, -y, y, c.near, c.far)
		return
	}
	c.projection = math.Perspective(c.fov, aspect, c.near, c.far)
}

// Uniforms are the shader inputs derived from a camera.
type Uniforms struct {
	Up         math.Vec3
	Direction  math.Vec3
	Position   math.Vec3
	View       math.Mat4
	Projection math.Mat4
}

// Uniforms returns the values bound to up_dir, view_dir, view_pos,
// view_mat and projection_mat.
func (c *Camera) Uniforms() Uniforms {
	return Uniforms{
		Up:         c.up,
		Direction:  c.front,
		Position:   c.position,
		View:       c.view,
		Projection: c.projection,
	}
}

func sin(x float32) float32      { return float32(gomath.Sin(float64(x))) }
func cos(x float32) float32      { return float32(gomath.Cos(float64(x))) }
func atan(x float32) float32     { return float32(gomath.Atan(float64(x))) }
func atan2(y, x float32) float32 { return float32(gomath.Atan2(float64(y), float64(x))) }
func asin(x float32) float32     { return float32(gomath.Asin(float64(math.Clamp(x, -1, 1)))) }
