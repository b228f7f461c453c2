// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/objviewer/internal/engine/picking"
	"github.com/Faultbox/objviewer/pkg/math"
)

// BoxLineVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxLineVertexCount = 24

// DefaultBoxPadding is the default padding for selection boxes.
const DefaultBoxPadding = 0.01

// BoxLines returns line list vertices for the edges of box, [x, y, z] per
// vertex.
func BoxLines(box picking.AABB) []float32 {
	corners := box.Corners()
	out := make([]float32, 0, BoxLineVertexCount*3)
	// Corner index bits select the max side of X, Y and Z. An edge joins
	// two corners that differ in exactly one bit.
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit != 0 {
				continue
			}
			a, b := corners[i], corners[i|bit]
			out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}
	return out
}

// Pad grows box by padding on all sides.
func Pad(box picking.AABB, padding float32) picking.AABB {
	p := math.Splat(padding)
	return picking.AABB{Min: box.Min.Sub(p), Max: box.Max.Add(p)}
}
