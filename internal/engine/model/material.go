package model

import (
	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
)

// MaterialCount returns the number of materials in the model's stock.
func (m *Model) MaterialCount() int {
	if m.data == nil {
		return 0
	}
	return len(m.data.Materials)
}

// Material returns material i of the stock for in-place editing.
// Texture paths must be changed through SetTexturePath.
func (m *Model) Material(i int) (*formats.Material, bool) {
	if m.data == nil || i < 0 || i >= len(m.data.Materials) {
		return nil, false
	}
	return &m.data.Materials[i], true
}

// GlobalMaterial returns the proxy whose edits the SetGlobal methods
// apply to every material.
func (m *Model) GlobalMaterial() formats.Material { return m.global }

// SetGlobalColor sets a color on the proxy and on every material.
func (m *Model) SetGlobalColor(attr formats.ColorAttr, c math.Vec3) {
	m.global.Colors[attr] = c
	m.eachMaterial(func(mat *formats.Material) { mat.Colors[attr] = c })
}

// SetGlobalValue sets a scalar attribute on the proxy and on every
// material.
func (m *Model) SetGlobalValue(attr formats.ValueAttr, v float32) {
	m.global.Values[attr] = v
	m.eachMaterial(func(mat *formats.Material) { mat.Values[attr] = v })
}

// SetGlobalTexture assigns a texture to a slot of every material.
func (m *Model) SetGlobalTexture(slot formats.TextureSlot, path string) {
	m.global.SetTexture(slot, path)
	m.eachMaterial(func(mat *formats.Material) { mat.SetTexture(slot, path) })
	m.revision++
}

// SetTexturePath assigns a texture to one slot of material i. It reports
// false when the material does not exist.
func (m *Model) SetTexturePath(i int, slot formats.TextureSlot, path string) bool {
	mat, ok := m.Material(i)
	if !ok || slot < 0 || slot >= formats.TextureSlotCount {
		return false
	}
	mat.SetTexture(slot, path)
	m.revision++
	return true
}

// SetTextureEnabled toggles a texture slot of material i without changing
// its path.
func (m *Model) SetTextureEnabled(i int, slot formats.TextureSlot, enabled bool) bool {
	mat, ok := m.Material(i)
	if !ok || slot < 0 || slot >= formats.TextureSlotCount {
		return false
	}
	mat.Textures[slot].Enabled = enabled && mat.Textures[slot].Path != ""
	return true
}

// TextureRevision changes whenever a texture path changes or the model is
// reloaded. The renderer re-uploads textures when it sees a new value.
func (m *Model) TextureRevision() uint64 { return m.revision }

func (m *Model) eachMaterial(fn func(*formats.Material)) {
	if m.data == nil {
		return
	}
	for i := range m.data.Materials {
		fn(&m.data.Materials[i])
	}
}
