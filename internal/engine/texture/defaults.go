package texture

import (
	"image/color"

	"github.com/Faultbox/objviewer/pkg/formats"
)

var (
	white      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black      = color.RGBA{A: 255}
	flatNormal = color.RGBA{R: 128, G: 128, B: 255, A: 255}
)

// DefaultColor is the 1×1 texture bound to a slot with no enabled image.
// Multiplicative slots are white, normals point straight out of the
// surface and displacement is flat.
func DefaultColor(slot formats.TextureSlot) color.RGBA {
	switch slot {
	case formats.TextureNormal:
		return flatNormal
	case formats.TextureDisplacement:
		return black
	default:
		return white
	}
}

// DefaultCubeColor is the color of every face of the default cube map.
func DefaultCubeColor() color.RGBA { return white }
