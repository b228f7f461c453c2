package formats

import "github.com/Faultbox/objviewer/pkg/math"

// Vertex is one entry of the interleaved vertex buffer.
type Vertex struct {
	Position math.Vec3
	UV       math.Vec2
	Normal   math.Vec3
	Tangent  math.Vec3
}

// Vertex buffer layout: position(3) uv(2) normal(3) tangent(3) float32s.
const (
	VertexFloats = 11
	VertexStride = VertexFloats * 4

	PositionOffset = 0
	UVOffset       = 3 * 4
	NormalOffset   = 5 * 4
	TangentOffset  = 8 * 4

	// IndexSize is the size in bytes of one index buffer entry.
	IndexSize = 4
)

// NoMaterial marks an Object whose usemtl name matched nothing.
const NoMaterial = -1

// Object is a contiguous index buffer range drawn with one material.
type Object struct {
	// Count is the number of indices in the range.
	Count uint32
	// Offset is the first index of the range.
	Offset uint32
	// Material indexes the model's material stock, or is NoMaterial.
	Material int
}

// ByteOffset returns the range start in bytes, as glDrawElements expects.
func (o Object) ByteOffset() int {
	return int(o.Offset) * IndexSize
}

// Stats summarizes a parsed model.
type Stats struct {
	// Vertices is the number of positions declared with "v".
	Vertices int
	// Elements is the number of unique vertices after deduplication.
	Elements int
	// Triangles is the number of triangles after fan triangulation.
	Triangles int
	// Textures is the number of texture references in the material library.
	Textures int
}

// ModelData is the CPU-side result of loading a model file.
type ModelData struct {
	ModelPath    string
	MaterialPath string

	Materials []Material
	Objects   []Object
	Vertices  []Vertex
	Indices   []uint32

	// Min and Max are the bounding box corners of the raw positions.
	Min, Max math.Vec3
	// OriginMat centers the model at the origin and fits its longest
	// axis to unit length.
	OriginMat math.Mat4

	Stats Stats

	ModelOpen    bool
	MaterialOpen bool
}

// VertexBuffer returns the vertices in the interleaved GPU layout.
func (d *ModelData) VertexBuffer() []float32 {
	buf := make([]float32, 0, len(d.Vertices)*VertexFloats)
	for _, v := range d.Vertices {
		buf = append(buf,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.UV.X, v.UV.Y,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
		)
	}
	return buf
}

// Material returns the material of an object, or nil when the object has
// none.
func (d *ModelData) Material(o Object) *Material {
	if o.Material < 0 || o.Material >= len(d.Materials) {
		return nil
	}
	return &d.Materials[o.Material]
}

// Extent returns max - min of the bounding box.
func (d *ModelData) Extent() math.Vec3 {
	return d.Max.Sub(d.Min)
}

// originMatrix fits the box [lo, hi] into a unit cube centered on the
// origin. A box with no extent keeps its scale.
func originMatrix(lo, hi math.Vec3) math.Mat4 {
	size := hi.Sub(lo).MaxComponent()
	if size <= 0 || !math.IsFinite(size) {
		size = 1
	}
	center := lo.Add(hi).Scale(-0.5)
	return math.Scale(math.Splat(1 / size)).Mul(math.Translate(center))
}
