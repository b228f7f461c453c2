package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objviewer/internal/engine/texture"
	"github.com/Faultbox/objviewer/pkg/formats"
)

// Mesh holds the GPU buffers of one model. It implements model.Resources.
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	objects []formats.Object

	// Cube maps by material index, rebuilt when the model's texture
	// revision changes.
	cubes    []uint32
	revision uint64
}

// UploadMesh creates the vertex and index buffers for data.
func UploadMesh(data *formats.ModelData) *Mesh {
	m := &Mesh{objects: data.Objects}
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return m
	}
	vertices := data.VertexBuffer()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, formats.VertexStride, formats.PositionOffset)
	gl.EnableVertexAttribArray(0)
	// TexCoord
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, formats.VertexStride, formats.UVOffset)
	gl.EnableVertexAttribArray(1)
	// Normal
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, formats.VertexStride, formats.NormalOffset)
	gl.EnableVertexAttribArray(2)
	// Tangent
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, formats.VertexStride, formats.TangentOffset)
	gl.EnableVertexAttribArray(3)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*formats.IndexSize, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool { return m.vao == 0 }

// Objects returns the draw ranges of the mesh.
func (m *Mesh) Objects() []formats.Object { return m.objects }

// Bind binds the vertex array.
func (m *Mesh) Bind() { gl.BindVertexArray(m.vao) }

// DrawObject issues the indexed draw of one range.
func (m *Mesh) DrawObject(o formats.Object) {
	if o.Count == 0 {
		return
	}
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(o.Count), gl.UNSIGNED_INT, uintptr(o.ByteOffset()))
}

func (m *Mesh) releaseCubes() {
	texture.Delete(m.cubes...)
	m.cubes = nil
}

// Release deletes the buffers and cube maps.
func (m *Mesh) Release() {
	m.releaseCubes()
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
