package lighting

import (
	gomath "math"

	"github.com/Faultbox/objviewer/pkg/math"
)

// DirectionFromAngles converts an azimuth around Y and an elevation above
// the XZ plane, both in degrees, to a unit direction. Azimuth 0 points
// along +Z.
func DirectionFromAngles(azimuth, elevation float32) math.Vec3 {
	az := float64(math.Radians(azimuth))
	el := float64(math.Radians(elevation))

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// AnglesFromDirection is the inverse of DirectionFromAngles. It returns
// azimuth and elevation in degrees.
func AnglesFromDirection(dir math.Vec3) (azimuth, elevation float32) {
	dir = dir.Normalize()
	azimuth = math.Degrees(float32(gomath.Atan2(float64(dir.X), float64(dir.Z))))
	elevation = math.Degrees(float32(gomath.Asin(float64(math.Clamp(dir.Y, -1, 1)))))
	return azimuth, elevation
}
