package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/pkg/formats"
)

func (a *App) drawModels() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Models", imgui.TreeNodeFlagsNone) {
		return
	}

	selected, _ := a.ctrl.Selected()
	var remove scene.ID
	for _, id := range a.reg.ModelIDs() {
		m, _ := a.reg.Model(id)
		title := fmt.Sprintf("Model %d: %s", id, m.Name())
		if id == selected {
			title += " (selected)"
		}
		if imgui.TreeNodeExStrV(fmt.Sprintf("%s###model%d", title, id), imgui.TreeNodeFlagsNone) {
			if !a.modelWidget(id, m) {
				remove = id
			}
			imgui.TreePop()
		}
	}
	if remove != scene.NoID {
		if err := a.reg.RemoveModel(remove); err != nil {
			a.notify(err.Error())
		}
	}

	imgui.Spacing()
	if wideButton("Add model") {
		a.openDialog("Add model", modelFilters, a.addModel)
	}
	imgui.Spacing()
}

// modelWidget edits one model. It returns false when the model should be
// removed.
func (a *App) modelWidget(id scene.ID, m *model.Model) bool {
	imgui.PushIDInt(int32(id))
	defer imgui.PopID()

	keep := true
	imgui.Checkbox("Enabled", &m.Enabled)
	imgui.SameLine()
	if imgui.Button("Select") {
		a.ctrl.Select(id)
	}
	imgui.SameLine()
	if imgui.Button("Reload model") {
		a.reloadModel(id)
	}
	imgui.SameLine()
	if imgui.Button("Reload textures") {
		a.renderer.ForgetTextures()
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		keep = false
	}

	a.pathInput("Path", "model.obj", m.Path(), modelFilters, func(p string) { a.setModelPath(m, p) })
	if err := m.Err(); err != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), err.Error())
	} else if mp := m.MaterialPath(); mp != "" {
		imgui.TextDisabled("Materials: " + mp)
	}

	a.programCombo(id)

	if imgui.TreeNodeExStrV("Geometry", imgui.TreeNodeFlagsDefaultOpen) {
		if p, ok := dragVec3("Position", m.Position(), 0.01); ok {
			m.SetPosition(p)
		}
		if r, ok := dragVec3("Rotation", m.RotationAngles(), 0.5); ok {
			m.SetRotation(r)
		}
		if s, ok := dragVec3("Scale", m.Scale(), 0.01); ok {
			m.SetScale(s)
		}
		if imgui.Button("Reset geometry") {
			m.ResetGeometry()
		}
		imgui.TreePop()
	}

	if m.Open() {
		st := m.Stats()
		imgui.Text(fmt.Sprintf("Vertices: %d  Elements: %d  Triangles: %d", st.Vertices, st.Elements, st.Triangles))
		a.drawMaterials(m)
	}
	return keep
}

func (a *App) reloadModel(id scene.ID) {
	if err := a.reg.ReloadModel(id); err != nil {
		a.notify("Reload failed: " + err.Error())
		return
	}
	a.notify("Model reloaded")
}

func (a *App) setModelPath(m *model.Model, path string) {
	if err := m.SetPath(path); err != nil {
		a.notify(fmt.Sprintf("Cannot open %s: %v", path, err))
		return
	}
	a.notify("Opened " + m.Name())
}

func (a *App) programCombo(modelID scene.ID) {
	current, _ := a.reg.ModelProgram(modelID)
	if !imgui.BeginCombo("GLSL program", a.programTitle(current)) {
		return
	}
	for _, id := range a.reg.ProgramIDs() {
		if imgui.SelectableBoolV(a.programTitle(id), id == current, 0, imgui.NewVec2(0, 0)) {
			a.reg.SetProgramToModel(id, modelID)
		}
	}
	imgui.EndCombo()
}

func (a *App) drawMaterials(m *model.Model) {
	if imgui.TreeNodeExStrV("Global material", imgui.TreeNodeFlagsNone) {
		helpMarker("Edits here apply to every material of the model.")
		g := m.GlobalMaterial()
		for attr := formats.ColorAttr(0); attr < formats.ColorAttrCount; attr++ {
			if c, ok := colorVec3(attr.String(), g.Colors[attr]); ok {
				m.SetGlobalColor(attr, c)
			}
		}
		for attr := formats.ValueAttr(0); attr < formats.ValueAttrCount; attr++ {
			v := g.Values[attr]
			if imgui.DragFloatV(attr.String(), &v, 0.01, 0, 0, "%.4f", imgui.SliderFlagsNone) {
				m.SetGlobalValue(attr, v)
			}
		}
		for slot := formats.TextureSlot(0); slot < formats.TextureSlotCount; slot++ {
			a.pathInput(slot.String()+" texture", "none", g.Textures[slot].Path, imageFilters, func(p string) {
				m.SetGlobalTexture(slot, p)
			})
		}
		imgui.TreePop()
	}

	for i := 0; i < m.MaterialCount(); i++ {
		mat, _ := m.Material(i)
		if !imgui.TreeNodeExStrV(fmt.Sprintf("Material %d: %s###material%d", i, mat.Name, i), imgui.TreeNodeFlagsNone) {
			continue
		}
		a.materialWidget(m, i, mat)
		imgui.TreePop()
	}
}

func (a *App) materialWidget(m *model.Model, i int, mat *formats.Material) {
	imgui.PushIDInt(int32(i))
	defer imgui.PopID()

	for attr := formats.ColorAttr(0); attr < formats.ColorAttrCount; attr++ {
		if c, ok := colorVec3(attr.String(), mat.Colors[attr]); ok {
			mat.Colors[attr] = c
		}
	}
	for attr := formats.ValueAttr(0); attr < formats.ValueAttrCount; attr++ {
		imgui.DragFloatV(attr.String(), &mat.Values[attr], 0.01, 0, 0, "%.4f", imgui.SliderFlagsNone)
	}

	for slot := formats.TextureSlot(0); slot < formats.TextureSlotCount; slot++ {
		imgui.PushIDInt(int32(slot))
		enabled := mat.Textures[slot].Enabled
		if imgui.Checkbox("##enabled", &enabled) {
			m.SetTextureEnabled(i, slot, enabled)
		}
		imgui.SameLine()
		a.pathInput(slot.String(), "none", mat.Textures[slot].Path, imageFilters, func(p string) {
			m.SetTexturePath(i, slot, p)
		})
		imgui.PopID()
	}

	if mat.CubeMap.Paths[formats.CubeRight] != "" {
		imgui.Checkbox("Cube map", &mat.CubeMap.Enabled)
		for f := formats.CubeFace(0); f < formats.CubeFaceCount; f++ {
			imgui.BulletText(f.String() + ": " + mat.CubeMap.Paths[f])
		}
	}
}
