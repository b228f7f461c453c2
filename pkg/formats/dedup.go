package formats

import (
	"strconv"
	"strings"

	"github.com/Faultbox/objviewer/pkg/math"
)

// attributePools holds the raw v/vt/vn lists of an OBJ file.
type attributePools struct {
	positions []math.Vec3
	uvs       []math.Vec2
	normals   []math.Vec3
}

// vertexTable deduplicates face vertex keys ("p/t/n"). The first time a key
// is seen it gets the next vertex index; later occurrences reuse it.
type vertexTable struct {
	index    map[string]uint32
	vertices []Vertex
}

func newVertexTable() *vertexTable {
	return &vertexTable{index: make(map[string]uint32)}
}

// resolve returns the output index for key, creating the vertex from the
// attribute pools on first sight.
func (t *vertexTable) resolve(key string, pools *attributePools) uint32 {
	if idx, ok := t.index[key]; ok {
		return idx
	}
	idx := uint32(len(t.vertices))
	t.index[key] = idx
	t.vertices = append(t.vertices, pools.vertex(key))
	return idx
}

// vertex builds a Vertex from a "p", "p/t", "p//n" or "p/t/n" key. Blank,
// zero or out-of-range references leave the attribute at zero.
func (p *attributePools) vertex(key string) Vertex {
	var v Vertex
	parts := strings.SplitN(key, "/", 3)
	if i, ok := poolIndex(parts, 0, len(p.positions)); ok {
		v.Position = p.positions[i]
	}
	if i, ok := poolIndex(parts, 1, len(p.uvs)); ok {
		v.UV = p.uvs[i]
	}
	if i, ok := poolIndex(parts, 2, len(p.normals)); ok {
		v.Normal = p.normals[i]
	}
	return v
}

// poolIndex converts the 1-based (or negative, end-relative) reference in
// parts[n] to a 0-based index into a pool of the given size.
func poolIndex(parts []string, n, size int) (int, bool) {
	if n >= len(parts) || parts[n] == "" {
		return 0, false
	}
	ref, err := strconv.Atoi(parts[n])
	if err != nil || ref == 0 {
		return 0, false
	}
	if ref < 0 {
		ref += size
	} else {
		ref--
	}
	if ref < 0 || ref >= size {
		return 0, false
	}
	return ref, true
}
