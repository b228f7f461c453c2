package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/pkg/formats"
)

// Material uniform names.
var (
	colorUniforms = [formats.ColorAttrCount]string{
		formats.ColorAmbient:      "ambient_color",
		formats.ColorDiffuse:      "diffuse_color",
		formats.ColorSpecular:     "specular_color",
		formats.ColorTransparency: "transparency_color",
	}
	valueUniforms = [formats.ValueAttrCount]string{
		formats.ValueShininess:       "shininess",
		formats.ValueRoughness:       "roughness",
		formats.ValueMetalness:       "metalness",
		formats.ValueTransparency:    "transparency",
		formats.ValueDisplacement:    "displacement",
		formats.ValueRefractiveIndex: "refractive_index",
	}
	textureUniforms = [formats.TextureSlotCount]string{
		formats.TextureAmbient:      "ambient_tex",
		formats.TextureDiffuse:      "diffuse_tex",
		formats.TextureSpecular:     "specular_tex",
		formats.TextureShininess:    "shininess_tex",
		formats.TextureNormal:       "normal_tex",
		formats.TextureDisplacement: "displacement_tex",
	}
)

// cubeUnit follows the 2D texture units.
const cubeUnit = uint32(formats.TextureSlotCount)

// bindSamplers points the material samplers at their texture units.
func bindSamplers(p *shader.Program) {
	for slot, name := range textureUniforms {
		p.SetInt(name, int32(slot))
	}
	p.SetInt("cube_map_tex", int32(cubeUnit))
}

// bindMaterial sets the uniforms and textures of material i of m. Objects
// without a material use the model's global material.
func (r *Renderer) bindMaterial(p *shader.Program, m *model.Model, mesh *Mesh, i int) {
	mat, ok := m.Material(i)
	if !ok {
		global := m.GlobalMaterial()
		mat = &global
	}

	for attr, name := range colorUniforms {
		p.SetVec3(name, mat.Colors[attr])
	}
	for attr, name := range valueUniforms {
		p.SetFloat(name, mat.Values[attr])
	}

	for slot, tex := range mat.Textures {
		id := r.defaults.Slots[slot]
		if tex.Enabled {
			if loaded, ok := r.textures.Get(tex.Path); ok {
				id = loaded
			}
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
		gl.BindTexture(gl.TEXTURE_2D, id)
	}

	cube, enabled := r.cubeMap(m, mesh, i)
	gl.ActiveTexture(gl.TEXTURE0 + cubeUnit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cube)
	p.SetBool("cube_map_enabled", enabled)
}

// cubeMap returns the environment map of material i, loading the cube maps
// of the mesh again after a texture change.
func (r *Renderer) cubeMap(m *model.Model, mesh *Mesh, i int) (uint32, bool) {
	if mesh.cubes == nil || mesh.revision != m.TextureRevision() {
		mesh.releaseCubes()
		mesh.cubes = make([]uint32, m.MaterialCount())
		for k := range mesh.cubes {
			mat, _ := m.Material(k)
			if !mat.CubeMap.Enabled {
				continue
			}
			if id, ok := r.textures.GetCube(mat.CubeMap.Paths); ok {
				mesh.cubes[k] = id
			}
		}
		mesh.revision = m.TextureRevision()
	}
	if i < 0 || i >= len(mesh.cubes) || mesh.cubes[i] == 0 {
		return r.defaults.Cube, false
	}
	return mesh.cubes[i], true
}
