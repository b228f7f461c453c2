package formats

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Loader errors.
var (
	ErrOpen              = errors.New("cannot open file")
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// LoadOBJ parses the Wavefront OBJ file at path together with the material
// libraries it references. A missing library is not an error: the model
// then gets a single default material.
func LoadOBJ(path string, opts ...Option) (*ModelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer f.Close()

	data, err := ParseOBJ(f, filepath.Dir(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	data.ModelPath = path
	return data, nil
}

// ParseOBJ parses OBJ data from r. dir is the directory mtllib references
// are resolved against.
func ParseOBJ(r io.Reader, dir string, opts ...Option) (*ModelData, error) {
	o := buildOptions(opts)
	p := &objParser{
		dir:   dir,
		opts:  opts,
		log:   o.log,
		table: newVertexTable(),
		data: &ModelData{
			Min: math.Splat(float32(gomath.Inf(1))),
			Max: math.Splat(float32(gomath.Inf(-1))),
		},
	}

	lr := newLineReader(r)
	for lr.next() {
		p.directive(lr)
	}
	if err := lr.err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lr.line, err)
	}

	p.finish()
	return p.data, nil
}

type objParser struct {
	dir  string
	opts []Option
	log  *zap.Logger
	data *ModelData

	pools attributePools
	table *vertexTable
	face  []uint32
}

func (p *objParser) directive(lr *lineReader) {
	switch lr.directive {
	case "v":
		var xyz [3]float32
		parseFloats(lr.fields(), xyz[:])
		pos := math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		p.pools.positions = append(p.pools.positions, pos)
		p.data.Min = p.data.Min.Min(pos)
		p.data.Max = p.data.Max.Max(pos)
	case "vn":
		var xyz [3]float32
		parseFloats(lr.fields(), xyz[:])
		p.pools.normals = append(p.pools.normals, math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	case "vt":
		var uv [2]float32
		parseFloats(lr.fields(), uv[:])
		p.pools.uvs = append(p.pools.uvs, math.Vec2{X: uv[0], Y: uv[1]})
	case "f":
		p.addFace(lr.fields(), lr.line)
	case "usemtl":
		p.useMaterial(lr.rest)
	case "mtllib":
		p.loadLibrary(lr.rest)
	}
}

// addFace fan-triangulates a polygon around its first vertex.
func (p *objParser) addFace(keys []string, line int) {
	if len(keys) < 3 {
		p.log.Debug("face with fewer than 3 vertices", zap.Int("line", line))
		return
	}
	p.face = p.face[:0]
	for _, key := range keys {
		p.face = append(p.face, p.table.resolve(key, &p.pools))
	}
	for i := 2; i < len(p.face); i++ {
		a, b, c := p.face[0], p.face[i-1], p.face[i]
		p.data.Indices = append(p.data.Indices, a, b, c)
		p.accumulateTangent(a, b, c)
	}
}

// accumulateTangent adds the UV-gradient tangent of triangle (a, b, c) to
// all three vertices. Triangles with a degenerate UV mapping add nothing.
func (p *objParser) accumulateTangent(a, b, c uint32) {
	v := p.table.vertices
	e1 := v[b].Position.Sub(v[a].Position)
	e2 := v[c].Position.Sub(v[a].Position)
	d1 := v[b].UV.Sub(v[a].UV)
	d2 := v[c].UV.Sub(v[a].UV)

	det := d1.X*d2.Y - d2.X*d1.Y
	if det == 0 || !math.IsFinite(det) {
		return
	}
	t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(1 / det)
	if !t.IsFinite() {
		return
	}
	v[a].Tangent = v[a].Tangent.Add(t)
	v[b].Tangent = v[b].Tangent.Add(t)
	v[c].Tangent = v[c].Tangent.Add(t)
}

// useMaterial closes the current object and opens a new one. It only has
// an effect once a material library has been read.
func (p *objParser) useMaterial(name string) {
	if !p.data.MaterialOpen {
		return
	}
	n := uint32(len(p.data.Indices))
	if len(p.data.Objects) == 0 && n > 0 {
		// Faces before the first usemtl keep their own unmaterialed range.
		p.data.Objects = append(p.data.Objects, Object{Offset: 0, Material: NoMaterial})
	}
	p.closeObject()

	mat := lookupMaterial(p.data.Materials, name)
	if mat == NoMaterial {
		p.log.Debug("usemtl references unknown material", zap.String("material", name))
	}
	p.data.Objects = append(p.data.Objects, Object{Offset: n, Material: mat})
}

func (p *objParser) closeObject() {
	if len(p.data.Objects) == 0 {
		return
	}
	last := &p.data.Objects[len(p.data.Objects)-1]
	last.Count = uint32(len(p.data.Indices)) - last.Offset
}

func (p *objParser) loadLibrary(ref string) {
	path := resolvePath(p.dir, ref)
	p.data.MaterialPath = path

	lib, err := LoadMTL(path, p.opts...)
	if err != nil {
		p.log.Warn("material library not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	p.data.Materials = append(p.data.Materials, lib.Materials...)
	p.data.Stats.Textures += lib.Textures
	p.data.MaterialOpen = true
}

func (p *objParser) finish() {
	d := p.data
	switch {
	case !d.MaterialOpen:
		d.Materials = append(d.Materials[:0], NewMaterial(DefaultMaterialName))
		d.Objects = []Object{{Count: uint32(len(d.Indices)), Material: 0}}
	case len(d.Objects) == 0:
		d.Objects = []Object{{Count: uint32(len(d.Indices)), Material: NoMaterial}}
	default:
		p.closeObject()
	}

	d.Vertices = p.table.vertices
	for i := range d.Vertices {
		d.Vertices[i].Tangent = orthogonalTangent(d.Vertices[i].Tangent, d.Vertices[i].Normal)
	}

	if len(p.pools.positions) == 0 {
		d.Min, d.Max = math.Vec3{}, math.Vec3{}
	}
	d.OriginMat = originMatrix(d.Min, d.Max)

	d.Stats.Vertices = len(p.pools.positions)
	d.Stats.Elements = len(d.Vertices)
	d.Stats.Triangles = len(d.Indices) / 3

	p.pools = attributePools{}
	p.table = nil
	d.ModelOpen = true
}

// orthogonalTangent removes the normal component from an accumulated
// tangent and normalizes it. Vertices without a usable tangent get an
// arbitrary unit vector perpendicular to the normal.
func orthogonalTangent(t, n math.Vec3) math.Vec3 {
	n = n.Normalize()
	t = t.Sub(n.Scale(n.Dot(t))).Normalize()
	if t.IsFinite() && t != (math.Vec3{}) {
		return t
	}

	if n == (math.Vec3{}) {
		return math.Vec3{X: 1}
	}
	axis := math.Vec3{X: 1}
	if abs(n.X) > 0.9 {
		axis = math.Vec3{Y: 1}
	}
	return axis.Sub(n.Scale(n.Dot(axis))).Normalize()
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
